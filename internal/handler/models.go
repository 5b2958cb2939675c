package handler

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// OrderRequest is the payload for creating or replacing an order.
type OrderRequest struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"userId" validate:"required"`
	OrderNumber   int        `json:"orderNumber" validate:"required,gt=0"`
	ClientName    string     `json:"clientName" validate:"required"`
	ClientEmail   string     `json:"clientEmail" validate:"required,email"`
	ClientPhone   string     `json:"clientPhone" validate:"required"`
	ClientAddress string     `json:"clientAddress" validate:"required"`
	OrderDate     time.Time  `json:"orderDate" validate:"required"`
	DeliveryDate  *time.Time `json:"deliveryDate,omitempty"`
	Info          string     `json:"info,omitempty"`
	Status        string     `json:"status" validate:"required,oneof=Pending Processing Delivered Cancelled"`
	TotalPrice    float64    `json:"totalPrice" validate:"gte=0"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=ramburs card"`
	Products      []LineItem `json:"products" validate:"required,dive"`
}

// LineItem is one product entry in an order payload.
type LineItem struct {
	ID       string  `json:"id" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// Document converts the request into the raw shape stored in the collection.
func (o OrderRequest) Document() bson.M {
	products := make(bson.A, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, bson.M{
			"id":       p.ID,
			"title":    p.Title,
			"price":    p.Price,
			"category": p.Category,
			"quantity": p.Quantity,
		})
	}

	doc := bson.M{
		"userId":        o.UserID,
		"orderNumber":   o.OrderNumber,
		"clientName":    o.ClientName,
		"clientEmail":   o.ClientEmail,
		"clientPhone":   o.ClientPhone,
		"clientAddress": o.ClientAddress,
		"orderDate":     o.OrderDate,
		"info":          o.Info,
		"status":        o.Status,
		"totalPrice":    o.TotalPrice,
		"paymentMethod": o.PaymentMethod,
		"products":      products,
	}
	if o.ID != "" {
		doc["id"] = o.ID
	}
	if o.DeliveryDate != nil {
		doc["deliveryDate"] = *o.DeliveryDate
	}
	return doc
}

// CreatedResponse confirms a stored order.
type CreatedResponse struct {
	ID string `json:"id"`
}

// StatusResponse is the health-check payload.
type StatusResponse struct {
	Status string `json:"status"`
}
