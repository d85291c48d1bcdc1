package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portal-import/internal/importer/model"
)

const mongoConnectTimeout = 10 * time.Second

type mongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func openMongo(ctx context.Context, uri string, opts Options) (Store, error) {
	cctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &mongoStore{
		client: client,
		col:    client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Upsert is updateOne({_id}, {$set: rec}, {upsert: true}); absent metrics are
// omitted from $set and keep their stored value.
func (s *mongoStore) Upsert(ctx context.Context, rec model.Portal) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": rec.ID},
		bson.M{"$set": rec},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
