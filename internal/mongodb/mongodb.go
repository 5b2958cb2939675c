package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/buchetul-simonei/order-service/internal/config"
	"github.com/buchetul-simonei/order-service/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store wraps the orders collection together with a liveness flag. A Store is
// always usable: when the connection probe failed, Connected reports false and
// callers are expected to short-circuit instead of touching the collection.
type Store struct {
	client    *mongo.Client
	coll      *mongo.Collection
	connected bool
}

// Connect establishes the client and verifies connectivity with a ping probe.
// An empty URI or a failed probe is not fatal: the returned Store is simply
// disconnected, mirroring how the shop backend keeps serving without Atlas.
func Connect(ctx context.Context, cfg config.Mongo) (*Store, error) {
	if cfg.URI == "" {
		return &Store{}, nil
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return &Store{}, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary())
	}

	retryCfg := utils.RetryConfig{
		InitialDelay: 500 * time.Millisecond,
		MaxAttempts:  cfg.PingAttempts,
		Multiplier:   2,
	}

	if err := utils.Retry(retryCfg, ping); err != nil {
		_ = client.Disconnect(context.Background())
		return &Store{}, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{
		client:    client,
		coll:      client.Database(cfg.Database).Collection(cfg.Collection),
		connected: true,
	}, nil
}

func (s *Store) Connected() bool {
	return s != nil && s.connected
}

func (s *Store) Orders() *mongo.Collection {
	return s.coll
}

func (s *Store) Close(ctx context.Context) error {
	if !s.Connected() {
		return nil
	}
	return s.client.Disconnect(ctx)
}
