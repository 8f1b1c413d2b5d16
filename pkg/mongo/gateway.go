package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/models"
)

var _ gateway.Gateway = (*Gateway)(nil)

// FetchAll loads the three collections concurrently. A collection that fails to
// load is left nil in the snapshot and logged; FetchAll itself never fails.
func (g *Gateway) FetchAll(ctx context.Context) gateway.Snapshot {
	var snap gateway.Snapshot
	var eg errgroup.Group

	eg.Go(func() error {
		records, err := findAll[gateway.ProductRecord](ctx, g.collection(productsCollection))
		if err != nil {
			g.logger.Warn("failed to fetch products", zap.Error(err))
			return err
		}
		snap.Products = make([]models.Product, len(records))
		for i, rec := range records {
			snap.Products[i] = gateway.FromProductRecord(rec)
		}
		return nil
	})

	eg.Go(func() error {
		records, err := findAll[gateway.UserRecord](ctx, g.collection(usersCollection))
		if err != nil {
			g.logger.Warn("failed to fetch users", zap.Error(err))
			return err
		}
		snap.Users = make([]models.User, len(records))
		for i, rec := range records {
			snap.Users[i] = gateway.FromUserRecord(rec)
		}
		return nil
	})

	eg.Go(func() error {
		var rec gateway.SiteContentRecord
		err := g.collection(siteContentCollection).FindOne(ctx, bson.M{"_id": models.SiteContentID}).Decode(&rec)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		if err != nil {
			g.logger.Warn("failed to fetch site content", zap.Error(err))
			return err
		}
		content := gateway.FromSiteContentRecord(rec)
		snap.SiteContent = &content
		return nil
	})

	if err := eg.Wait(); err != nil {
		g.logger.Debug("partial fetch", zap.Error(err))
	}
	return snap
}

func findAll[T any](ctx context.Context, collection *mongo.Collection) ([]T, error) {
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *Gateway) UpsertProduct(ctx context.Context, product models.Product) error {
	rec := gateway.ToProductRecord(product)
	_, err := g.collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	return translateUpsertError(rec.ID, err)
}

// translateUpsertError maps a unique index violation on sku to ErrDuplicateSKU
func translateUpsertError(id string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("product %s: %w", id, gateway.ErrDuplicateSKU)
	}
	return fmt.Errorf("failed to upsert product %s: %w", id, err)
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	result, err := g.collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id, gateway.ErrNotFound)
	}
	return nil
}

func (g *Gateway) InsertUser(ctx context.Context, user models.User) error {
	_, err := g.collection(usersCollection).InsertOne(ctx, gateway.ToUserRecord(user))
	return translateInsertError(err)
}

// translateInsertError maps a unique index violation on email to gateway.ErrDuplicateEmail
func translateInsertError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return gateway.ErrDuplicateEmail
	}
	return fmt.Errorf("failed to insert user: %w", err)
}

func (g *Gateway) UpdateUser(ctx context.Context, id string, patch gateway.UserPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	result, err := g.collection(usersCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id, gateway.ErrNotFound)
	}
	return nil
}

func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	result, err := g.collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id, gateway.ErrNotFound)
	}
	return nil
}

func (g *Gateway) UpsertSiteContent(ctx context.Context, content models.SiteContent) error {
	rec := gateway.ToSiteContentRecord(content)
	_, err := g.collection(siteContentCollection).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert site content: %w", err)
	}
	return nil
}

// Subscribe opens a change stream on the resource's collection and calls onChange
// for every event. Change streams need a replica set; on a standalone server
// Subscribe returns an error and the caller runs without realtime refresh.
func (g *Gateway) Subscribe(ctx context.Context, resource gateway.Resource, onChange func()) (func(), error) {
	name, err := collectionFor(resource)
	if err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stream, err := g.collection(name).Watch(watchCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch %s: %w", name, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stream.Close(context.Background())

		for stream.Next(watchCtx) {
			onChange()
		}
		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn("change stream stopped", zap.String("collection", name), zap.Error(err))
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func collectionFor(resource gateway.Resource) (string, error) {
	switch resource {
	case gateway.ResourceProducts:
		return productsCollection, nil
	case gateway.ResourceUsers:
		return usersCollection, nil
	case gateway.ResourceSiteContent:
		return siteContentCollection, nil
	default:
		return "", fmt.Errorf("unknown resource %q", resource)
	}
}
