package order

import (
	"errors"
	"slices"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusUnpaid     Status = "unpaid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
	StatusUnknown    Status = "unknown"
)

var AvailableStatuses = []Status{
	StatusUnpaid, StatusProcessing, StatusShipped,
	StatusCancelled, StatusCompleted, StatusUnknown,
}

// NewStatus validates a raw status string.
func NewStatus(raw string) (Status, error) {
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", errors.New("invalid order status")
}

type Order struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
	Status     Status    `json:"status"`
	Address    *Address  `json:"address,omitempty"`
	Shipping   *Shipping `json:"shipping_info,omitempty"`
	Items      []Item    `json:"items"`
}

type Address struct {
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	District    *string `json:"district,omitempty"`
	Subdistrict *string `json:"subdistrict,omitempty"`
	Province    *string `json:"province,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
}

type Shipping struct {
	ShippingName          *string    `json:"shipping_name,omitempty"`
	ServiceType           *string    `json:"service_type,omitempty"`
	ServiceName           *string    `json:"service_name,omitempty"`
	ShippingCost          *float64   `json:"shipping_cost,omitempty"`
	IsCOD                 *bool      `json:"is_cod,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
}

type Item struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unit_price"`
}

// OrdersQuery filters order listings.
type OrdersQuery struct {
	IDs []int64
}
