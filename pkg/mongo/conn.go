package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
)

const (
	productsCollection    = "products"
	usersCollection       = "users"
	siteContentCollection = "site_content"
)

// Gateway is the MongoDB implementation of the remote data store
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect creates the client, verifies the connection and returns a gateway for the database
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Gateway, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	pingCtx, cancel := global.GetTimerFrom(ctx)
	defer cancel()

	// Ping the database to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	g := &Gateway{
		client: client,
		db:     client.Database(database),
		logger: logging.OrNop(logger).Named("mongo"),
	}
	g.logger.Info("connected to MongoDB", zap.String("database", database))
	return g, nil
}

func (g *Gateway) collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// Ping verifies the connection is alive
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, nil)
}

// Close disconnects the client
func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}
