package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores each section as one document in a single collection
// with _id equal to the section name.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Get(ctx context.Context, section string) (map[string]interface{}, error) {
	var doc bson.M
	if err := r.col.FindOne(ctx, bson.M{"_id": section}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	delete(doc, "_id")
	return map[string]interface{}(doc), nil
}

func (r *MongoRepository) Set(ctx context.Context, section string, doc map[string]interface{}) error {
	repl := bson.M{}
	for k, v := range doc {
		repl[k] = v
	}
	repl["_id"] = section
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": section}, repl, opts)
	return err
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
