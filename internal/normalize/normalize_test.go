package normalize_test

import (
	"testing"
	"time"

	"github.com/buchetul-simonei/order-service/internal/entities"
	"github.com/buchetul-simonei/order-service/internal/normalize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func validDoc(t time.Time) bson.M {
	return bson.M{
		"id":            "ord-1",
		"userId":        "user-1",
		"orderNumber":   57,
		"clientName":    "Ana",
		"clientEmail":   "ana@example.com",
		"clientPhone":   "0700000000",
		"clientAddress": "Str. Unirii 1",
		"orderDate":     primitive.NewDateTimeFromTime(t),
		"status":        "Pending",
		"totalPrice":    30.0,
		"paymentMethod": "card",
		"products": bson.A{
			bson.M{"id": "p1", "title": "Rose", "price": 10.0, "category": "flowers", "quantity": 3},
		},
	}
}

func TestNormalize_AllColumnsAlwaysPresent(t *testing.T) {
	testCases := []struct {
		name string
		doc  bson.M
	}{
		{name: "empty document", doc: bson.M{}},
		{name: "only native id", doc: bson.M{"_id": primitive.NewObjectID()}},
		{name: "wrong typed fields", doc: bson.M{"orderNumber": bson.M{"nested": true}, "products": "oops"}},
		{name: "complete document", doc: validDoc(time.Now())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := normalize.Normalize(tc.doc, nil)

			assert.Len(t, row, len(normalize.Columns))
			for _, col := range normalize.Columns {
				_, ok := row[col]
				assert.True(t, ok, "missing column %q", col)
			}
		})
	}
}

func TestNormalize_StrictRoundTrip(t *testing.T) {
	orderDate := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	doc := validDoc(orderDate)

	validator := normalize.NewValidator()
	order, err := validator.ParseStrict(doc)
	require.NoError(t, err)

	row := normalize.Normalize(doc, &order)

	assert.Equal(t, "ord-1", row["id"])
	assert.Equal(t, "user-1", row["userId"])
	assert.Equal(t, "57", row["orderNumber"])
	assert.Equal(t, "Ana", row["clientName"])
	assert.Equal(t, "ana@example.com", row["clientEmail"])
	assert.Equal(t, "0700000000", row["clientPhone"])
	assert.Equal(t, "Str. Unirii 1", row["clientAddress"])
	assert.Equal(t, "2025-03-14T10:30:00Z", row["orderDate"])
	assert.Equal(t, "", row["deliveryDate"])
	assert.Equal(t, "", row["info"])
	assert.Equal(t, "Pending", row["status"])
	assert.Equal(t, "30", row["totalPrice"])
	assert.Equal(t, "card", row["paymentMethod"])
	assert.JSONEq(t,
		`[{"id":"p1","title":"Rose","price":10,"category":"flowers","quantity":3}]`,
		row["products"])
}

func TestNormalize_FallbackScenario(t *testing.T) {
	orderDate := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := bson.M{
		"_id":           "abc123",
		"orderNumber":   57,
		"clientName":    "Ana",
		"status":        "Pending",
		"paymentMethod": "card",
		"orderDate":     primitive.NewDateTimeFromTime(orderDate),
		"products": bson.A{
			bson.M{"title": "Rose", "price": 10, "quantity": 3},
		},
	}

	row := normalize.Normalize(doc, nil)

	assert.Equal(t, "abc123", row["id"], "id derived from native identifier")
	assert.Equal(t, "57", row["orderNumber"])
	assert.Equal(t, "Ana", row["clientName"])
	assert.Equal(t, "2025-05-01T12:00:00Z", row["orderDate"])
	assert.Equal(t, "", row["totalPrice"], "absent field defaults to empty string")
	assert.Equal(t, "", row["userId"])
	assert.JSONEq(t, `[{"title":"Rose","price":10,"quantity":3}]`, row["products"])
}

func TestNormalize_ExplicitIDWinsOverNativeID(t *testing.T) {
	doc := bson.M{"_id": primitive.NewObjectID(), "id": "custom-id"}

	row := normalize.Normalize(doc, nil)

	assert.Equal(t, "custom-id", row["id"])
}

func TestNormalize_MissingProductsSerializesEmptyList(t *testing.T) {
	row := normalize.Normalize(bson.M{}, nil)

	assert.Equal(t, "[]", row["products"])
}

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()

	testCases := []struct {
		name string
		doc  bson.M
		want string
	}{
		{name: "explicit id", doc: bson.M{"id": "u-1"}, want: "u-1"},
		{name: "object id", doc: bson.M{"_id": oid}, want: oid.Hex()},
		{name: "string native id", doc: bson.M{"_id": "raw"}, want: "raw"},
		{name: "no identifier", doc: bson.M{}, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize.DocumentID(tc.doc))
		})
	}
}

func TestLines_FallbackKeepsMalformedValues(t *testing.T) {
	doc := bson.M{"products": bson.A{
		bson.M{"title": "Rose", "price": "abc", "quantity": 3},
		bson.M{"title": "Tulip", "price": 5.5, "quantity": "2"},
	}}

	lines := normalize.Lines(doc, nil)

	require.Len(t, lines, 2)
	assert.Equal(t, normalize.LineDisplay{Title: "Rose", Price: "abc", Quantity: "3"}, lines[0])
	assert.Equal(t, normalize.LineDisplay{Title: "Tulip", Price: "5.5", Quantity: "2"}, lines[1])
}

func TestLines_StrictUsesTypedItems(t *testing.T) {
	order := entities.Order{Products: []entities.LineItem{
		{Title: "Rose", Price: decimalFromString(t, "10"), Quantity: 3},
	}}

	lines := normalize.Lines(bson.M{}, &order)

	require.Len(t, lines, 1)
	assert.Equal(t, normalize.LineDisplay{Title: "Rose", Price: "10", Quantity: "3"}, lines[0])
}
