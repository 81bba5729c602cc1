package order

import (
	"testing"
	"time"

	"shrimati-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Processing", "Dispatched", "Shipped", "Delivered", "Cancelled"} {
		parsed, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), parsed)
	}

	_, ok := ParseStatus("Refunded")
	assert.False(t, ok)
	_, ok = ParseStatus("pending") // case sensitive
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, m := range []string{"upi", "card", "wallet", "cod"} {
		parsed, ok := ParsePaymentMethod(m)
		assert.True(t, ok, m)
		assert.Equal(t, PaymentMethod(m), parsed)
	}

	_, ok := ParsePaymentMethod("cheque")
	assert.False(t, ok)
}

func TestNewFromCartLine(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("CODLeavesPaymentPending", func(t *testing.T) {
		o := NewFromCartLine(CreateParams{
			UserID:   1,
			Product:  saree,
			Quantity: 3,
			Address:  "12 MG Road, Pune, MH - 411001",
			Phone:    "9999999999",
			Method:   MethodCOD,
		}, now)

		assert.Equal(t, 3, o.Quantity)
		assert.Equal(t, 300.00, o.TotalPrice)
		assert.Equal(t, PaymentPending, o.PaymentStatus)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, now, o.PendingAt)
		assert.Nil(t, o.ProcessingAt)
	})

	t.Run("PrepaidMethodsAreCompleted", func(t *testing.T) {
		for _, m := range []PaymentMethod{MethodUPI, MethodCard, MethodWallet} {
			o := NewFromCartLine(CreateParams{
				UserID: 1, Product: saree, Quantity: 1, Method: m,
			}, now)
			assert.Equal(t, PaymentCompleted, o.PaymentStatus, string(m))
		}
	})
}

func TestApplyStatus_StampsOnce(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := NewFromCartLine(CreateParams{UserID: 1, Product: saree, Quantity: 1, Method: MethodCOD}, t0)

	t1 := t0.Add(time.Hour)
	o.ApplyStatus(StatusDelivered, t1)

	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, t1, *o.DeliveredAt)

	// second application of the same status must not move the stamp
	t2 := t0.Add(2 * time.Hour)
	o.ApplyStatus(StatusDelivered, t2)
	assert.Equal(t, t1, *o.DeliveredAt)
}

func TestApplyStatus_PermissiveTransitions(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("CancelFromShipped", func(t *testing.T) {
		o := NewFromCartLine(CreateParams{UserID: 1, Product: saree, Quantity: 1, Method: MethodCOD}, t0)
		o.ApplyStatus(StatusShipped, t0.Add(time.Hour))

		o.ApplyStatus(StatusCancelled, t0.Add(2*time.Hour))

		assert.Equal(t, StatusCancelled, o.Status)
		require.NotNil(t, o.CancelledAt)
		assert.Nil(t, o.DeliveredAt)
	})

	t.Run("DeliveredBackToProcessing", func(t *testing.T) {
		// technically allowed by the unguarded graph
		o := NewFromCartLine(CreateParams{UserID: 1, Product: saree, Quantity: 1, Method: MethodCOD}, t0)
		o.ApplyStatus(StatusDelivered, t0.Add(time.Hour))

		o.ApplyStatus(StatusProcessing, t0.Add(2*time.Hour))

		assert.Equal(t, StatusProcessing, o.Status)
		// delivered stamp survives the backwards move
		require.NotNil(t, o.DeliveredAt)
	})

	t.Run("ForwardWalkStampsEveryStep", func(t *testing.T) {
		o := NewFromCartLine(CreateParams{UserID: 1, Product: saree, Quantity: 1, Method: MethodCOD}, t0)

		steps := []Status{StatusProcessing, StatusDispatched, StatusShipped, StatusDelivered}
		for i, s := range steps {
			o.ApplyStatus(s, t0.Add(time.Duration(i+1)*time.Hour))
		}

		assert.NotNil(t, o.ProcessingAt)
		assert.NotNil(t, o.DispatchedAt)
		assert.NotNil(t, o.ShippedAt)
		assert.NotNil(t, o.DeliveredAt)
		assert.Nil(t, o.CancelledAt)
	})
}
