package cart

import (
	"context"

	"zwmart/db"
	"zwmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mirror is the best-effort remote copy of a user's cart, kept for
// cross-device continuity. It is written fire-and-forget and read back only
// on cold start, so it is eventually consistent at best and never
// authoritative while a local snapshot exists.
type Mirror interface {
	Upsert(ctx context.Context, item models.CartItem) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
}

// MongoMirror mirrors cart rows into the shared cart collection, keyed by
// (userId, productId). Writes are targeted upserts and deletes rather than
// delete-all-then-reinsert, so two rapid mutations cannot leave the remote
// copy holding rows the local cart never had.
type MongoMirror struct{}

func (MongoMirror) Upsert(ctx context.Context, item models.CartItem) error {
	filter := bson.M{"userId": item.UserID, "productId": item.ProductID}
	update := bson.M{"$set": item}
	opts := options.Update().SetUpsert(true)
	_, err := db.CartCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (MongoMirror) Remove(ctx context.Context, userID, productID string) error {
	_, err := db.CartCollection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	return err
}

func (MongoMirror) Clear(ctx context.Context, userID string) error {
	_, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

func (MongoMirror) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
