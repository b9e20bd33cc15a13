package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "fsm_transition_log"

// MongoStorage persists transition entries in a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a storage over the given database. Panics on a
// nil database, mirroring the fail-fast construction of the engine itself.
func NewMongoStorage(db *mongo.Database, collection string) *MongoStorage {
	if db == nil {
		panic("history: mongo database cannot be nil")
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStorage{coll: db.Collection(collection)}
}

// mongoEntry is the document shape. The UUID travels as its string form so
// the documents stay readable in shell queries.
type mongoEntry struct {
	ID         string    `bson:"_id"`
	Entity     string    `bson:"entity"`
	EntityID   string    `bson:"entity_id"`
	Field      string    `bson:"field"`
	From       *string   `bson:"from"`
	To         *string   `bson:"to"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (s *MongoStorage) Append(ctx context.Context, entry Entry) error {
	doc := mongoEntry{
		ID:         entry.ID.String(),
		Entity:     entry.Entity,
		EntityID:   entry.EntityID,
		Field:      entry.Field,
		From:       entry.From,
		To:         entry.To,
		OccurredAt: entry.OccurredAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	return nil
}

func (s *MongoStorage) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := bson.M{}
	if filter.Entity != "" {
		query["entity"] = filter.Entity
	}
	if filter.EntityID != "" {
		query["entity_id"] = filter.EntityID
	}
	if filter.Field != "" {
		query["field"] = filter.Field
	}

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		entries = append(entries, Entry{
			ID:         id,
			Entity:     d.Entity,
			EntityID:   d.EntityID,
			Field:      d.Field,
			From:       d.From,
			To:         d.To,
			OccurredAt: d.OccurredAt,
		})
	}
	return entries, nil
}
