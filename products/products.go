package products

import (
	"context"
	"errors"
	"log"
	"time"

	"zwmart/db"
	"zwmart/models"
	"zwmart/rdx"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrNotFound = errors.New("product not found")

const cacheTTL = 10 * time.Minute

func cacheKey(id string) string { return "product:" + id }

// GetByID fetches a catalog entry, read-through cached in Redis. A Redis
// hiccup degrades to a direct MongoDB read.
func GetByID(ctx context.Context, id string) (models.Product, error) {
	var product models.Product

	if rdx.Conn != nil {
		err := rdx.GetJSON(ctx, cacheKey(id), &product)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Println("products: cache read error:", err)
		}
	}

	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&product)
	if err != nil {
		return models.Product{}, ErrNotFound
	}

	if rdx.Conn != nil {
		if err := rdx.SetJSON(ctx, cacheKey(id), product, cacheTTL); err != nil {
			log.Println("products: cache write error:", err)
		}
	}
	return product, nil
}

func invalidate(ctx context.Context, id string) {
	if rdx.Conn == nil {
		return
	}
	if err := rdx.Conn.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Println("products: cache invalidate error:", err)
	}
}
