package mongodb

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/marucat/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Conn holds the client and the collections the service works with.
type Conn struct {
	Client   *mongo.Client
	Articles *mongo.Collection
	Settings *mongo.Collection
}

// Connect dials MongoDB and waits for the primary to answer a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URI, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("ping %s: %w", cfg.URI, err)
	}

	db := client.Database(cfg.Schema)

	return &Conn{
		Client:   client,
		Articles: db.Collection(cfg.ArticlesCollection),
		Settings: db.Collection(cfg.SettingsCollection),
	}, nil
}

func (c *Conn) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
