package main

import (
	"context"
	"log/slog"
)

type disconnecter interface {
	Disconnect(ctx context.Context) error
}

// disconnect closes the Mongo client on a fresh context so it still runs after ctx cancellation
func disconnect(client disconnecter, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect failed", "err", err)
	}
}
