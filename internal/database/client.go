package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rickgao/bazaar-data/internal/config"
)

// Store holds the MongoDB client and the collections used by the gatherer.
type Store struct {
	Client *mongo.Client

	// Records receives one document per projected product.
	Records *mongo.Collection

	// Config holds the freshness counter document.
	Config *mongo.Collection
}

// Connect creates a client, verifies connectivity, and resolves collections.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(BuildURI(cfg)).
		SetAppName(cfg.AppName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewStore(client, cfg), nil
}

// NewStore wraps an existing client.
func NewStore(client *mongo.Client, cfg config.DatabaseConfig) *Store {
	db := client.Database(cfg.Name)
	return &Store{
		Client:  client,
		Records: db.Collection(cfg.RecordsCollection),
		Config:  db.Collection(cfg.ConfigCollection),
	}
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// Ping verifies the connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}
