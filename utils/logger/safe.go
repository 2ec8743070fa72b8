package logger

import "log/slog"

// Safe logging helpers that tolerate an uninitialized global logger. Drivers
// and gateways call these so unit tests do not have to call InitLogger.

func SafeInfo(msg string, args ...any) {
	if Logger == nil {
		slog.Info(msg, args...)
		return
	}
	Logger.Info(msg, args...)
}

func SafeWarn(msg string, args ...any) {
	if Logger == nil {
		slog.Warn(msg, args...)
		return
	}
	Logger.Warn(msg, args...)
}

func SafeError(msg string, args ...any) {
	if Logger == nil {
		slog.Error(msg, args...)
		return
	}
	Logger.Error(msg, args...)
}
