package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/buchetul-simonei/order-service/internal/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// lookupStrategy is one interpretation of an opaque order identifier. The
// filter func reports false when the identifier cannot be read that way, which
// silently skips the strategy.
type lookupStrategy struct {
	describe func(id string) string
	filter   func(id string) (bson.M, bool)
}

// Strategy order is load-bearing: client-facing custom ids must win over
// incidental numeric collisions with the store's native identifier.
var lookupStrategies = []lookupStrategy{
	{
		describe: func(id string) string { return "id=" + id },
		filter: func(id string) (bson.M, bool) {
			return bson.M{"id": id}, true
		},
	},
	{
		describe: func(id string) string { return "_id=" + id },
		filter: func(id string) (bson.M, bool) {
			return bson.M{"_id": id}, true
		},
	},
	{
		describe: func(id string) string { return fmt.Sprintf("_id=ObjectId(%q)", id) },
		filter: func(id string) (bson.M, bool) {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				return nil, false
			}
			return bson.M{"_id": oid}, true
		},
	},
	{
		describe: func(id string) string { return "orderNumber=" + id },
		filter: func(id string) (bson.M, bool) {
			n, err := strconv.Atoi(id)
			if err != nil {
				return nil, false
			}
			return bson.M{"orderNumber": n}, true
		},
	},
}

// resolveOrder tries each identifier interpretation in order and returns the
// first match. Store failures abort immediately; per-strategy misses continue.
func (s *orderService) resolveOrder(ctx context.Context, orderID string) (bson.M, error) {
	tried := make([]string, 0, len(lookupStrategies))

	for _, strategy := range lookupStrategies {
		filter, ok := strategy.filter(orderID)
		if !ok {
			continue
		}
		tried = append(tried, strategy.describe(orderID))

		doc, err := s.repo.FindOne(ctx, filter)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, entities.ErrOrderNotFound) {
			return nil, err
		}
	}

	return nil, &entities.NotFoundError{Tried: tried}
}
