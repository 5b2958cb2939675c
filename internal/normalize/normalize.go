package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/buchetul-simonei/order-service/internal/entities"

	"go.mongodb.org/mongo-driver/bson"
)

// Columns is the fixed export column order, shared by the spreadsheet and the
// CSV artifact. Both formats must emit exactly these keys in exactly this order.
var Columns = []string{
	"id",
	"userId",
	"orderNumber",
	"clientName",
	"clientEmail",
	"clientPhone",
	"clientAddress",
	"orderDate",
	"deliveryDate",
	"info",
	"status",
	"totalPrice",
	"paymentMethod",
	"products",
}

// Row is one flattened order, one value per export column. Every column key is
// always present, possibly as an empty string.
type Row map[string]string

// DocumentID returns the application id of a raw document, deriving it from
// the store's native identifier when no explicit "id" field exists.
func DocumentID(doc bson.M) string {
	if raw, ok := doc["id"]; ok {
		if id, ok := asString(raw); ok {
			return id
		}
		return fmt.Sprintf("%v", raw)
	}
	if raw, ok := doc["_id"]; ok {
		if id, ok := asString(raw); ok {
			return id
		}
		return fmt.Sprintf("%v", raw)
	}
	return ""
}

// Normalize flattens one raw document into an export row. When strict is
// non-nil the validated values win; otherwise every field is extracted
// best-effort straight from the document, defaulting to the empty string.
// Normalize never fails.
func Normalize(doc bson.M, strict *entities.Order) Row {
	if strict != nil {
		return strictRow(strict)
	}
	return fallbackRow(doc)
}

func strictRow(o *entities.Order) Row {
	deliveryDate := ""
	if o.DeliveryDate != nil {
		deliveryDate = o.DeliveryDate.UTC().Format(time.RFC3339)
	}

	return Row{
		"id":            o.ID,
		"userId":        o.UserID,
		"orderNumber":   strconv.Itoa(o.OrderNumber),
		"clientName":    o.ClientName,
		"clientEmail":   o.ClientEmail,
		"clientPhone":   o.ClientPhone,
		"clientAddress": o.ClientAddress,
		"orderDate":     o.OrderDate.UTC().Format(time.RFC3339),
		"deliveryDate":  deliveryDate,
		"info":          o.Info,
		"status":        string(o.Status),
		"totalPrice":    o.TotalPrice.String(),
		"paymentMethod": string(o.PaymentMethod),
		"products":      productsJSON(o.Products),
	}
}

func fallbackRow(doc bson.M) Row {
	row := Row{}
	for _, col := range Columns {
		row[col] = ""
	}

	row["id"] = DocumentID(doc)
	for _, col := range []string{
		"userId", "orderNumber", "clientName", "clientEmail", "clientPhone",
		"clientAddress", "orderDate", "deliveryDate", "info", "status",
		"totalPrice", "paymentMethod",
	} {
		if raw, ok := doc[col]; ok && raw != nil {
			if s, ok := asString(raw); ok {
				row[col] = s
			}
		}
	}
	row["products"] = rawProductsJSON(doc["products"])

	return row
}

type lineItemJSON struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

func productsJSON(items []entities.LineItem) string {
	out := make([]lineItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemJSON{
			ID:       it.ID,
			Title:    it.Title,
			Price:    it.Price.InexactFloat64(),
			Category: it.Category,
			Quantity: it.Quantity,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func rawProductsJSON(raw any) string {
	if raw == nil {
		raw = []any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(data)
}
