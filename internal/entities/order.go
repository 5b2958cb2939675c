package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the set of order states the storefront knows about.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// PaymentMethod — "ramburs" is cash on delivery.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "ramburs"
	PaymentCard           PaymentMethod = "card"
)

type LineItem struct {
	ID       string
	Title    string
	Category string
	Price    decimal.Decimal
	Quantity int
}

type Order struct {
	ID            string
	UserID        string
	OrderNumber   int
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
	OrderDate     time.Time
	// optional, nil when the order has no scheduled delivery
	DeliveryDate  *time.Time
	Info          string
	Status        OrderStatus
	TotalPrice    decimal.Decimal
	PaymentMethod PaymentMethod
	Products      []LineItem
}

// Invoice is a rendered invoice PDF together with the resolved order id used
// in its download filename.
type Invoice struct {
	OrderID string
	PDF     []byte
}

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// NotFoundError reports an exhausted lookup together with the strategies that
// were attempted. It carries filter descriptions only, never stored data.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return "order not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrOrderNotFound
}
