package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const defaultTimeout = 5 * time.Second

// MongoConfig holds the connection settings for MongoDB.
type MongoConfig struct {
	URI      string        `env:"URI"`
	Database string        `env:"DATABASE" envDefault:"course_catalog"`
	Timeout  time.Duration `env:"TIMEOUT"  envDefault:"5s"`
}

// Mongo owns the client handle for the lifetime of the process.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zerolog.Logger
}

// ConnectMongo opens a client and pings the primary. Every operation on the
// returned database is bounded by cfg.Timeout unless the caller's context is shorter.
func ConnectMongo(ctx context.Context, logger *zerolog.Logger, cfg MongoConfig) (*Mongo, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("connected to MongoDB")

	return &Mongo{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Database returns the configured database handle.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}

	m.logger.Info().Msg("disconnected from MongoDB")

	return nil
}
