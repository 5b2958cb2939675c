package normalize

import (
	"errors"
	"fmt"

	"github.com/buchetul-simonei/order-service/internal/entities"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

// Validator attempts strict schema parsing of a raw order document. A failure
// is a control signal for the caller to fall back to best-effort extraction,
// it is never surfaced to HTTP clients.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// orderSchema mirrors the canonical order shape the storefront writes.
type orderSchema struct {
	ID            string `validate:"required"`
	UserID        string `validate:"required"`
	ClientName    string `validate:"required"`
	ClientEmail   string `validate:"required"`
	ClientPhone   string `validate:"required"`
	ClientAddress string `validate:"required"`
	Status        string `validate:"required,oneof=Pending Processing Delivered Cancelled"`
	PaymentMethod string `validate:"required,oneof=ramburs card"`
	OrderNumber   int    `validate:"gt=0"`

	Products []lineItemSchema `validate:"required,dive"`
}

type lineItemSchema struct {
	ID       string `validate:"required"`
	Title    string `validate:"required"`
	Category string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

// ParseStrict builds a typed Order from the raw document. Dates are accepted
// both as native datetime values and as ISO strings; numbers both as numerics
// and numeric strings. Anything else fails the parse.
func (v *Validator) ParseStrict(doc bson.M) (entities.Order, error) {
	order := entities.Order{ID: DocumentID(doc)}

	var ok bool
	if order.UserID, ok = asString(doc["userId"]); !ok {
		return entities.Order{}, fmt.Errorf("field userId: %w", errBadField)
	}
	if order.OrderNumber, ok = asInt(doc["orderNumber"]); !ok {
		return entities.Order{}, fmt.Errorf("field orderNumber: %w", errBadField)
	}
	if order.ClientName, ok = asString(doc["clientName"]); !ok {
		return entities.Order{}, fmt.Errorf("field clientName: %w", errBadField)
	}
	if order.ClientEmail, ok = asString(doc["clientEmail"]); !ok {
		return entities.Order{}, fmt.Errorf("field clientEmail: %w", errBadField)
	}
	if order.ClientPhone, ok = asString(doc["clientPhone"]); !ok {
		return entities.Order{}, fmt.Errorf("field clientPhone: %w", errBadField)
	}
	if order.ClientAddress, ok = asString(doc["clientAddress"]); !ok {
		return entities.Order{}, fmt.Errorf("field clientAddress: %w", errBadField)
	}
	if order.OrderDate, ok = asTime(doc["orderDate"]); !ok {
		return entities.Order{}, fmt.Errorf("field orderDate: %w", errBadField)
	}
	if raw, present := doc["deliveryDate"]; present && raw != nil {
		dd, ok := asTime(raw)
		if !ok {
			return entities.Order{}, fmt.Errorf("field deliveryDate: %w", errBadField)
		}
		order.DeliveryDate = &dd
	}
	if raw, present := doc["info"]; present && raw != nil {
		info, ok := asString(raw)
		if !ok {
			return entities.Order{}, fmt.Errorf("field info: %w", errBadField)
		}
		order.Info = info
	}
	status, ok := asString(doc["status"])
	if !ok {
		return entities.Order{}, fmt.Errorf("field status: %w", errBadField)
	}
	order.Status = entities.OrderStatus(status)
	if order.TotalPrice, ok = asDecimal(doc["totalPrice"]); !ok {
		return entities.Order{}, fmt.Errorf("field totalPrice: %w", errBadField)
	}
	payment, ok := asString(doc["paymentMethod"])
	if !ok {
		return entities.Order{}, fmt.Errorf("field paymentMethod: %w", errBadField)
	}
	order.PaymentMethod = entities.PaymentMethod(payment)

	products, err := parseLineItems(doc["products"])
	if err != nil {
		return entities.Order{}, err
	}
	order.Products = products

	if err := v.validate.Struct(toSchema(order)); err != nil {
		return entities.Order{}, fmt.Errorf("order schema: %w", err)
	}

	return order, nil
}

func parseLineItems(raw any) ([]entities.LineItem, error) {
	var elems []any
	switch t := raw.(type) {
	case bson.A:
		elems = t
	case []any:
		elems = t
	default:
		return nil, fmt.Errorf("field products: %w", errBadField)
	}

	items := make([]entities.LineItem, 0, len(elems))
	for i, elem := range elems {
		var fields bson.M
		switch t := elem.(type) {
		case bson.M:
			fields = t
		case map[string]any:
			fields = t
		default:
			return nil, fmt.Errorf("products[%d]: %w", i, errBadField)
		}

		var item entities.LineItem
		var ok bool
		if item.ID, ok = asString(fields["id"]); !ok {
			return nil, fmt.Errorf("products[%d].id: %w", i, errBadField)
		}
		if item.Title, ok = asString(fields["title"]); !ok {
			return nil, fmt.Errorf("products[%d].title: %w", i, errBadField)
		}
		if item.Category, ok = asString(fields["category"]); !ok {
			return nil, fmt.Errorf("products[%d].category: %w", i, errBadField)
		}
		if item.Price, ok = asDecimal(fields["price"]); !ok {
			return nil, fmt.Errorf("products[%d].price: %w", i, errBadField)
		}
		if item.Quantity, ok = asInt(fields["quantity"]); !ok {
			return nil, fmt.Errorf("products[%d].quantity: %w", i, errBadField)
		}
		items = append(items, item)
	}
	return items, nil
}

func toSchema(o entities.Order) orderSchema {
	products := make([]lineItemSchema, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, lineItemSchema{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Quantity: p.Quantity,
		})
	}

	return orderSchema{
		ID:            o.ID,
		UserID:        o.UserID,
		ClientName:    o.ClientName,
		ClientEmail:   o.ClientEmail,
		ClientPhone:   o.ClientPhone,
		ClientAddress: o.ClientAddress,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		OrderNumber:   o.OrderNumber,
		Products:      products,
	}
}

var errBadField = errors.New("missing or malformed")
