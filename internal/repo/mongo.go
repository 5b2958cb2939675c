package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/buchetul-simonei/order-service/internal/entities"
	"github.com/buchetul-simonei/order-service/internal/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ordersRepo reads and writes raw order documents. Every method gates on the
// store's liveness flag first: a backend booted without a reachable store keeps
// serving and answers with entities.ErrStoreUnavailable here.
type ordersRepo struct {
	store *mongodb.Store
}

func NewOrdersRepo(store *mongodb.Store) *ordersRepo {
	return &ordersRepo{store: store}
}

func (r *ordersRepo) FindAll(ctx context.Context) ([]bson.M, error) {
	if !r.store.Connected() {
		return nil, entities.ErrStoreUnavailable
	}

	cursor, err := r.store.Orders().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return docs, nil
}

func (r *ordersRepo) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	if !r.store.Connected() {
		return nil, entities.ErrStoreUnavailable
	}

	var doc bson.M
	err := r.store.Orders().FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return doc, nil
}

func (r *ordersRepo) Insert(ctx context.Context, doc bson.M) error {
	if !r.store.Connected() {
		return entities.ErrStoreUnavailable
	}

	if _, err := r.store.Orders().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *ordersRepo) Update(ctx context.Context, filter, fields bson.M) (int64, error) {
	if !r.store.Connected() {
		return 0, entities.ErrStoreUnavailable
	}

	res, err := r.store.Orders().UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update order: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *ordersRepo) Delete(ctx context.Context, filter bson.M) (int64, error) {
	if !r.store.Connected() {
		return 0, entities.ErrStoreUnavailable
	}

	res, err := r.store.Orders().DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}
	return res.DeletedCount, nil
}
