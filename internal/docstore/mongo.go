package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sequencesCollection = "counters"

// Mongo stores each collection as a MongoDB collection and keeps sequences
// in a shared counters collection.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo wraps an already connected client.
func NewMongo(client *mongo.Client, database string) *Mongo {
	return &Mongo{
		client: client,
		db:     client.Database(database),
	}
}

func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{
		coll:     m.db.Collection(name),
		counters: m.db.Collection(sequencesCollection),
	}
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

type counterDoc struct {
	Seq int `bson:"seq"`
}

func (c *mongoCollection) Name() string {
	return c.coll.Name()
}

func (c *mongoCollection) NextID(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var counter counterDoc
	err := c.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": c.coll.Name()},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (c *mongoCollection) SyncSequence(ctx context.Context) error {
	opts := options.FindOne().
		SetSort(bson.D{{Key: IDField, Value: -1}}).
		SetProjection(bson.M{IDField: 1})
	var top struct {
		ID int `bson:"id"`
	}
	err := c.coll.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = c.counters.UpdateOne(ctx,
		bson.M{"_id": c.coll.Name()},
		bson.M{"$max": bson.M{"seq": top.ID}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (c *mongoCollection) EnsureUnique(ctx context.Context, field string) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (c *mongoCollection) Insert(ctx context.Context, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	err := c.coll.FindOne(ctx, bson.M(filter)).Decode(out)
	return mapMongoError(err)
}

func (c *mongoCollection) Find(ctx context.Context, q Query, out any) error {
	direction := 1
	if q.Descending {
		direction = -1
	}
	sort := bson.D{{Key: q.sortField(), Value: direction}}
	if q.sortField() != IDField {
		sort = append(sort, bson.E{Key: IDField, Value: direction})
	}
	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := c.coll.Find(ctx, mongoFilter(q), opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	// Start from an empty slice so zero matches decode to [] rather than nil.
	if err := decodeAll(nil, out, decodeBSON); err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (c *mongoCollection) Replace(ctx context.Context, id int, doc any) error {
	result, err := c.coll.ReplaceOne(ctx, bson.M{IDField: id}, doc)
	if err != nil {
		return mapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (c *mongoCollection) Count(ctx context.Context) (int64, error) {
	return c.coll.CountDocuments(ctx, bson.M{})
}

func mongoFilter(q Query) bson.M {
	filter := bson.M{}
	for key, value := range q.Filter {
		filter[key] = value
	}
	for key, value := range q.Exclude {
		if existing, ok := filter[key]; ok {
			filter[key] = bson.M{"$eq": existing, "$ne": value}
			continue
		}
		filter[key] = bson.M{"$ne": value}
	}
	return filter
}

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNoDocument
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
