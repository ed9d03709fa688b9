package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocStore is a thin document store over MongoDB. Documents are arbitrary
// maps; collections are created on first write.
type DocStore struct {
	db *mongo.Database
}

// NewDocStore connects to MongoDB and returns a store for the given database
func NewDocStore(uri, database string) (*DocStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	return &DocStore{db: client.Database(database)}, nil
}

// Close disconnects the underlying client
func (s *DocStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// Ping checks connectivity
func (s *DocStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// Put writes doc under the given id, replacing any existing document with
// that id. Writing the same id twice overwrites in place, which is what
// makes redelivered webhooks harmless.
func (s *DocStore) Put(ctx context.Context, collection, id string, doc map[string]interface{}) error {
	replacement := bson.M{}
	for k, v := range doc {
		replacement[k] = v
	}
	replacement["_id"] = id

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, replacement, opts)
	if err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add appends doc as a new document with a generated id and returns the id
func (s *DocStore) Add(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	id := uuid.New().String()

	insert := bson.M{}
	for k, v := range doc {
		insert[k] = v
	}
	insert["_id"] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, insert); err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return id, nil
}
