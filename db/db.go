package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	CartCollection    *mongo.Collection
	OrderCollection   *mongo.Collection
	ProductCollection *mongo.Collection
	Client            *mongo.Client
)

// Init connects to MongoDB and wires the shared collections. Call once from
// main before serving; handlers assume the collections are non-nil.
func Init() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	database := client.Database("zwmdb")
	CartCollection = database.Collection("cart")
	OrderCollection = database.Collection("orders")
	ProductCollection = database.Collection("products")
	return nil
}

// Close releases the MongoDB client. Used during graceful shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
