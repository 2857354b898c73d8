package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase   = "deptower"
	mongoCollection = "cache"
)

// Mongo is a MongoDB-backed cache for deployments where a document store
// already exists. Entries carry their expiration and are checked on read,
// so no server-side TTL index is required.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongo creates a MongoDB cache from a mongodb:// or mongodb+srv:// URL.
func NewMongo(ctx context.Context, url string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Get retrieves a value. Expired entries are removed and reported as misses.
func (c *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongodb get: %w", err)
	}

	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_, _ = c.coll.DeleteOne(ctx, bson.M{"_id": key})
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value, replacing any existing entry for the key.
func (c *Mongo) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, opts); err != nil {
		return fmt.Errorf("mongodb set: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongodb delete: %w", err)
	}
	return nil
}

// Close disconnects from the server.
func (c *Mongo) Close() error {
	return c.client.Disconnect(context.Background())
}

var _ Cache = (*Mongo)(nil)
