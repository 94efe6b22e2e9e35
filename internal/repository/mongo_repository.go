package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-service/internal/models"
)

const (
	mongoQueryTimeout = 10 * time.Second
	mongoWriteTimeout = 5 * time.Second
)

// MongoRepository stores products in a single unpartitioned collection.
// Products are addressed by their numeric "id" field, never by Mongo's own
// "_id"; reads project "_id" out so callers only ever see application fields.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{
		collection: collection,
	}
}

func (r *MongoRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoQueryTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *MongoRepository) GetOne(ctx context.Context, id int) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoQueryTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"id": id}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &product, nil
}

func (r *MongoRepository) Add(ctx context.Context, product models.Product) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	// Highest-id-first lookup; the id is assigned before the insert lands, so
	// two concurrent adds can draw the same id.
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var last models.Product
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		product.ID = 1
	case err != nil:
		return nil, fmt.Errorf("find max id: %w", err)
	default:
		product.ID = last.ID + 1
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &product, nil
}

func (r *MongoRepository) Update(ctx context.Context, product models.Product) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return nil, fmt.Errorf("replace product %d: %w", product.ID, err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoQueryTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *MongoRepository) SeedMany(ctx context.Context, products []models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
