package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Email uniqueness is enforced here, not by the store manager
	{
		CollectionName: usersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},
	{
		CollectionName: usersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "is_approved", Value: 1}},
			Options: options.Index().SetName("idx_user_is_approved"),
		},
	},
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_product_sku_unique"),
		},
	},
	// Catalog filtering by category
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
}

// EnsureIndexes creates the indexes the gateway relies on. Existing indexes are left alone.
func (g *Gateway) EnsureIndexes(ctx context.Context) error {
	for _, idx := range requiredIndexes {
		name, err := g.collection(idx.CollectionName).Indexes().CreateOne(ctx, idx.IndexModel)
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.CollectionName, err)
		}
		g.logger.Debug("index ensured", zap.String("collection", idx.CollectionName), zap.String("index", name))
	}
	return nil
}
