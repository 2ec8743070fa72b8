package di

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"skim/config"
	"skim/driver/feed_fetch_driver"
	"skim/driver/robots_txt_driver"
	"skim/driver/skim_db"
	"skim/gateway/feed_store_gateway"
	"skim/gateway/fetch_source_gateway"
	"skim/gateway/interaction_gateway"
	"skim/gateway/item_store_gateway"
	"skim/usecase/interaction_usecase"
	"skim/usecase/sync_feed_usecase"
	"skim/utils/rate_limiter"
)

type ApplicationComponents struct {
	SyncFeedUsecase    *sync_feed_usecase.SyncFeedUsecase
	InteractionUsecase *interaction_usecase.InteractionUsecase
	SkimDBRepository   *skim_db.SkimDBRepository
}

func NewApplicationComponents(pool *pgxpool.Pool, cfg *config.Config) *ApplicationComponents {
	fetchDriver := feed_fetch_driver.NewFeedFetchDriver(cfg.HTTP)
	hostRateLimiter := rate_limiter.NewHostRateLimiter(cfg.RateLimit.HostInterval)
	robotsDriver := robots_txt_driver.NewRobotsTxtDriver(
		&http.Client{Timeout: cfg.HTTP.FetchTimeout}, cfg.HTTP.UserAgent)

	fetchSourceGatewayImpl := fetch_source_gateway.NewFetchSourceGateway(fetchDriver, hostRateLimiter, robotsDriver)
	feedStoreGatewayImpl := feed_store_gateway.NewFeedStoreGateway(pool)
	itemStoreGatewayImpl := item_store_gateway.NewItemStoreGateway(pool)
	interactionGatewayImpl := interaction_gateway.NewInteractionGateway(pool)

	syncFeedUsecase := sync_feed_usecase.NewSyncFeedUsecase(
		feedStoreGatewayImpl, itemStoreGatewayImpl, fetchSourceGatewayImpl, cfg.Sync)
	interactionUsecase := interaction_usecase.NewInteractionUsecase(interactionGatewayImpl)

	return &ApplicationComponents{
		SyncFeedUsecase:    syncFeedUsecase,
		InteractionUsecase: interactionUsecase,
		SkimDBRepository:   skim_db.NewSkimDBRepository(pool),
	}
}
