package skim_db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skim/domain"
)

var feedRowColumns = []string{
	"id", "owner_id", "url", "source_kind", "title", "description", "icon_url",
	"category", "is_active", "last_fetched_at", "last_updated_at", "created_at", "deleted_at",
}

func addFeedRow(rows *pgxmock.Rows, id, ownerID uuid.UUID, lastFetchedAt *time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, ownerID, "https://blog.example.com/feed", "rss", "Example Blog", "", "",
		"tech", true, lastFetchedAt, (*time.Time)(nil), time.Now(), (*time.Time)(nil),
	)
}

func TestGetFeed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	feedID := uuid.New()
	ownerID := uuid.New()
	rows := addFeedRow(pgxmock.NewRows(feedRowColumns), feedID, ownerID, nil)
	mock.ExpectQuery("SELECT (.+) FROM feeds WHERE id").
		WithArgs(feedID).
		WillReturnRows(rows)

	repo := NewSkimDBRepository(mock)
	feed, err := repo.GetFeed(context.Background(), feedID)
	require.NoError(t, err)

	assert.Equal(t, feedID, feed.ID)
	assert.Equal(t, ownerID, feed.OwnerID)
	assert.Equal(t, domain.SourceKindRSS, feed.SourceKind)
	assert.True(t, feed.IsActive)
	assert.Nil(t, feed.LastFetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFeed_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	feedID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM feeds WHERE id").
		WithArgs(feedID).
		WillReturnError(pgx.ErrNoRows)

	repo := NewSkimDBRepository(mock)
	_, err = repo.GetFeed(context.Background(), feedID)
	assert.ErrorIs(t, err, domain.ErrFeedNotFound)
}

func TestListDueFeeds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	stale := time.Now().Add(-45 * time.Minute)
	rows := pgxmock.NewRows(feedRowColumns)
	addFeedRow(rows, uuid.New(), uuid.New(), nil)
	addFeedRow(rows, uuid.New(), uuid.New(), &stale)

	mock.ExpectQuery("SELECT (.+) FROM feeds").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(rows)

	repo := NewSkimDBRepository(mock)
	feeds, err := repo.ListDueFeeds(context.Background(), nil, 30*time.Minute, 0)
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Nil(t, feeds[0].LastFetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDueFeeds_OwnerScoped(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ownerID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM feeds").
		WithArgs(pgxmock.AnyArg(), ownerID).
		WillReturnRows(pgxmock.NewRows(feedRowColumns))

	repo := NewSkimDBRepository(mock)
	feeds, err := repo.ListDueFeeds(context.Background(), &ownerID, 30*time.Minute, 10)
	require.NoError(t, err)
	assert.Empty(t, feeds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchFeedFetchTimestamp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	feedID := uuid.New()
	mock.ExpectExec("UPDATE feeds SET last_fetched_at").
		WithArgs(feedID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewSkimDBRepository(mock)
	require.NoError(t, repo.TouchFeedFetchTimestamp(context.Background(), feedID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFeedUpdated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	feedID := uuid.New()
	mock.ExpectExec("UPDATE feeds SET last_updated_at").
		WithArgs(feedID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewSkimDBRepository(mock)
	require.NoError(t, repo.MarkFeedUpdated(context.Background(), feedID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeedMetadata(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	feedID := uuid.New()
	mock.ExpectExec("UPDATE feeds SET").
		WithArgs(feedID, "New Title", "", "https://example.com/icon.png").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewSkimDBRepository(mock)
	err = repo.UpdateFeedMetadata(context.Background(), feedID, "New Title", "", "https://example.com/icon.png")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveFeeds_StorageUnavailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM feeds").
		WillReturnError(errors.New("dial error"))

	repo := NewSkimDBRepository(mock)
	_, err = repo.ListActiveFeeds(context.Background(), 100)
	require.Error(t, err)

	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, domain.StorageUnavailable, storageErr.Kind)
}
