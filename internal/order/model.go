package order

import (
	"time"

	"shrimati-be/internal/product"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusDispatched Status = "Dispatched"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

type PaymentMethod string

const (
	MethodUPI    PaymentMethod = "upi"
	MethodCard   PaymentMethod = "card"
	MethodWallet PaymentMethod = "wallet"
	MethodCOD    PaymentMethod = "cod"
)

// ParseStatus validates a status string against the enum.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusDispatched,
		StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// ParsePaymentMethod validates a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodUPI, MethodCard, MethodWallet, MethodCOD:
		return PaymentMethod(s), true
	}
	return "", false
}

// Order is one purchased cart line together with its status timeline.
// One row is created per distinct cart line at checkout confirmation;
// rows are never deleted (cancellation is a status).
type Order struct {
	ID            uint          `json:"id"`
	UserID        uint          `json:"user_id"`
	ProductID     uint          `json:"product_id"`
	Quantity      int           `json:"quantity"`
	TotalPrice    float64       `json:"total_price"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        Status        `json:"status"`
	OrderDate     time.Time     `json:"order_date"`

	CourierName      *string    `json:"courier_name,omitempty"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`

	// Timeline. PendingAt is stamped at creation; the rest are stamped
	// exactly once, on the first transition into that status.
	PendingAt    time.Time  `json:"pending_at"`
	ProcessingAt *time.Time `json:"processing_at,omitempty"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	ShippedAt    *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	// Filled by joins in list/detail queries.
	ProductName  string `json:"product_name,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}

// ApplyStatus sets the status and stamps the matching timeline field
// if it is still unset. Re-applying a status never overwrites its
// timestamp. The transition graph is intentionally unguarded: any
// status may follow any other, matching the back-office workflow.
func (o *Order) ApplyStatus(s Status, now time.Time) {
	o.Status = s

	switch s {
	case StatusProcessing:
		if o.ProcessingAt == nil {
			o.ProcessingAt = &now
		}
	case StatusDispatched:
		if o.DispatchedAt == nil {
			o.DispatchedAt = &now
		}
	case StatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	case StatusCancelled:
		if o.CancelledAt == nil {
			o.CancelledAt = &now
		}
	}
}

type CreateParams struct {
	UserID   uint
	Product  *product.Product
	Quantity int
	Address  string
	Phone    string
	Method   PaymentMethod
}

// NewFromCartLine builds an order from one cart line. The total is
// unit price times quantity, computed once and never re-derived.
// Non-COD methods are treated as paid up front.
func NewFromCartLine(p CreateParams, now time.Time) *Order {
	paymentStatus := PaymentCompleted
	if p.Method == MethodCOD {
		paymentStatus = PaymentPending
	}

	return &Order{
		UserID:        p.UserID,
		ProductID:     p.Product.ID,
		Quantity:      p.Quantity,
		TotalPrice:    p.Product.Price * float64(p.Quantity),
		Address:       p.Address,
		Phone:         p.Phone,
		PaymentMethod: p.Method,
		PaymentStatus: paymentStatus,
		Status:        StatusPending,
		OrderDate:     now,
		PendingAt:     now,
		ProductName:   p.Product.Name,
		ProductImage:  p.Product.Image,
	}
}
