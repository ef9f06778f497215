package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoPool struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectMongo dials uri and pings the primary before returning.
func ConnectMongo(ctx context.Context, uri, database string, maxPoolSize int) (*MongoPool, error) {
	if uri == "" {
		return nil, errors.New("mongo URI is required")
	}
	if database == "" {
		return nil, errors.New("mongo database name is required")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)
	if maxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(maxPoolSize))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoPool{Client: client, Database: client.Database(database)}, nil
}

// Health pings the primary within ctx.
func (p *MongoPool) Health(ctx context.Context) error {
	if p.Client == nil {
		return errors.New("mongo client not initialized")
	}
	return p.Client.Ping(ctx, readpref.Primary())
}

func (p *MongoPool) Close() error {
	if p.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.Client.Disconnect(ctx)
}
