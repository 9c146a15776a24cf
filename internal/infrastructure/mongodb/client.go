package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/farm-stand/pkg/config"
)

// Client conexión compartida al almacén. Se abre en el arranque y se cierra en el apagado;
// los repositorios reciben colecciones derivadas de ella.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect crea el cliente MongoDB con la configuración de la app y verifica el primario con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig, appName string) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(30 * time.Minute)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("parse URI: %w", err)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &Client{client: client, db: client.Database(cfg.Database)}, nil
}

// Collection devuelve la colección indicada de la base configurada.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Close desconecta el cliente y libera el pool.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("desconectar MongoDB: %w", err)
	}
	return nil
}
