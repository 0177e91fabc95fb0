package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

// MongoStore maps each collection name onto a MongoDB collection.
// Documents keep the driver-assigned ObjectID under IDKey.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *slog.Logger
}

func NewMongoStore(ctx context.Context, uri, name string, logger *slog.Logger) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: mongo backend requires DATABASE_URL", ErrUnavailable)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: mongo backend requires DATABASE_NAME", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrUnavailable, err)
	}

	m := &MongoStore{
		client: client,
		db:     client.Database(name),
		log:    logger,
	}

	// The driver reconnects on its own, so an unreachable server only degrades
	// requests until it comes back.
	if err := m.Ping(ctx); err != nil {
		logger.Warn("mongo is not reachable yet", "database", name, "error", err)
		return m, nil
	}

	logger.Info("connected to mongo", "database", name)

	return m, nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *MongoStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, bson.M(fields))
	if err != nil {
		m.log.Error("failed to insert document", "error", err, "collection", collection)
		return "", mongoError(ErrWriteFailed, fmt.Errorf("insert into %s: %w", collection, err))
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// Find returns documents in the collection's natural order.
func (m *MongoStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	if limit < 1 {
		return emptyResult(), nil
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cur, err := m.db.Collection(collection).Find(ctx, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, mongoError(ErrReadFailed, fmt.Errorf("find in %s: %w", collection, err))
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, mongoError(ErrReadFailed, fmt.Errorf("decode %s: %w", collection, err))
	}

	docs := make([]Document, len(raw))
	for i := range raw {
		docs[i] = Document(normalizeBSON(raw[i]).(bson.M))
	}

	return docs, nil
}

func (m *MongoStore) Collections(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, mongoError(ErrReadFailed, fmt.Errorf("list collections: %w", err))
	}
	return names, nil
}

func mongoError(kind, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return classify(kind, err)
}

// normalizeBSON turns driver-specific values into plain Go values so that
// documents encode to JSON the same way for every backend.
func normalizeBSON(v any) any {
	switch val := v.(type) {
	case bson.M:
		for k, item := range val {
			val[k] = normalizeBSON(item)
		}
		return val
	case bson.D:
		out := bson.M{}
		for _, e := range val {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i := range val {
			out[i] = normalizeBSON(val[i])
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}
