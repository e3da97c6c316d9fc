package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/config"
	"github.com/morzdz/todo-app/internal/storage"
	"github.com/morzdz/todo-app/internal/storage/mongo"
	"github.com/morzdz/todo-app/internal/storage/postgres"
	"github.com/morzdz/todo-app/internal/storage/sqlite"
)

var globalCollection storage.Collection

func MustConnectStore() {
	cfg := config.Global().Store

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout+cfg.PingTimeout)
	defer cancel()

	collection, err := openCollection(ctx, globalLogger, cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("store", redactURL(cfg.URL)).
			Msg("failed to connect to store")
		panic(err)
	}
	globalCollection = collection
}

func DisconnectStore() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Global().Store.ConnectTimeout)
	defer cancel()

	err := globalCollection.Close(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from store")
		return
	}
	globalLogger.Info().Msg("disconnected from store")
}

// openCollection picks the backend from the connection string scheme.
func openCollection(ctx context.Context, logger zerolog.Logger, cfg config.StoreConfig) (storage.Collection, error) {
	switch {
	case strings.HasPrefix(cfg.URL, "mongodb://"), strings.HasPrefix(cfg.URL, "mongodb+srv://"):
		return mongo.Open(ctx, logger, mongo.Options{
			URL:            cfg.URL,
			Database:       cfg.Database,
			Collection:     cfg.Collection,
			ConnectTimeout: cfg.ConnectTimeout,
			PingTimeout:    cfg.PingTimeout,
		})
	case strings.HasPrefix(cfg.URL, "postgres://"), strings.HasPrefix(cfg.URL, "postgresql://"):
		return postgres.Open(ctx, logger, postgres.Options{
			URL:            cfg.URL,
			Table:          cfg.Collection,
			ConnectTimeout: cfg.ConnectTimeout,
			PingTimeout:    cfg.PingTimeout,
		})
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		return sqlite.Open(ctx, logger, sqlite.Options{
			Path:  strings.TrimPrefix(cfg.URL, "sqlite://"),
			Table: cfg.Collection,
		})
	case strings.HasPrefix(cfg.URL, "file:"):
		return sqlite.Open(ctx, logger, sqlite.Options{
			Path:  cfg.URL,
			Table: cfg.Collection,
		})
	}
	return nil, fmt.Errorf("unsupported store url scheme: %s", redactURL(cfg.URL))
}

// redactURL hides the password of a connection string for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
