package mongodb

import (
	"context"
	"errors"
	"time"

	"listingdesk/cmd/internal/domain/docstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the MongoDB-backed document store. One listing maps to one
// document; ids are object-id hex strings so the rest of the app never sees
// driver types.
type Store struct {
	db *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

// Connect dials, pings and wraps the given database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		return nil, err
	}
	return &Store{db: client.Database(database)}, nil
}

func (s *Store) Create(ctx context.Context, collection string, doc any, stamps ...string) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	now := time.Now().UTC().UnixMilli()
	fields["_id"] = id
	fields["createdAt"] = now
	fields["updatedAt"] = now
	for _, stamp := range stamps {
		fields[stamp] = now
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNotFound
	}
	return err
}

func (s *Store) Find(ctx context.Context, collection string, filter map[string]any, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M(filter))
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	set := bson.M{}
	now := time.Now().UTC().UnixMilli()
	for k, v := range fields {
		if docstore.IsServerTimestamp(v) {
			// Resolved here, at write time, with the store's clock.
			set[k] = now
			continue
		}
		set[k] = v
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// Increment delegates to $inc so concurrent bumps are applied server-side
// instead of read-modify-write on this side.
func (s *Store) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
