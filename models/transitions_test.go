package models_test

import (
	"testing"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"github.com/stretchr/testify/assert"
)

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to authorized", models.PaymentStatusPending, models.PaymentStatusAuthorized, true},
		{"pending to settled", models.PaymentStatusPending, models.PaymentStatusSettled, true},
		{"pending to declined", models.PaymentStatusPending, models.PaymentStatusDeclined, true},
		{"authorized to settled", models.PaymentStatusAuthorized, models.PaymentStatusSettled, true},
		{"authorized to error", models.PaymentStatusAuthorized, models.PaymentStatusError, true},
		{"settled is terminal", models.PaymentStatusSettled, models.PaymentStatusDeclined, false},
		{"declined is terminal", models.PaymentStatusDeclined, models.PaymentStatusSettled, false},
		{"cancelled is terminal", models.PaymentStatusCancelled, models.PaymentStatusSettled, false},
		{"error is terminal", models.PaymentStatusError, models.PaymentStatusPending, false},
		{"no regression", models.PaymentStatusAuthorized, models.PaymentStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, models.CanTransitionPayment(tc.from, tc.to))
		})
	}
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"created to payment_pending", models.OrderStatusCreated, models.OrderStatusPaymentPending, true},
		{"payment_pending to settled", models.OrderStatusPaymentPending, models.OrderStatusPaymentSettled, true},
		{"settled to shipped", models.OrderStatusPaymentSettled, models.OrderStatusShipped, true},
		{"shipped to delivered", models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{"created to cancelled", models.OrderStatusCreated, models.OrderStatusCancelled, true},
		{"created straight to delivered", models.OrderStatusCreated, models.OrderStatusDelivered, false},
		{"settled to cancelled", models.OrderStatusPaymentSettled, models.OrderStatusCancelled, false},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusShipped, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusCreated, false},
		{"no regression", models.OrderStatusShipped, models.OrderStatusPaymentSettled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, models.CanTransitionOrder(tc.from, tc.to))
		})
	}
}

func TestStatusesAllowingAgreeWithTable(t *testing.T) {
	assert.Equal(t,
		[]string{models.PaymentStatusAuthorized, models.PaymentStatusPending},
		models.PaymentStatusesAllowing(models.PaymentStatusSettled))
	// Declines are only legal from pending; an authorized payment must be
	// voided through the gateway, not declined.
	assert.Equal(t,
		[]string{models.PaymentStatusPending},
		models.PaymentStatusesAllowing(models.PaymentStatusDeclined))
	assert.Equal(t,
		[]string{models.OrderStatusPaymentAuthorized, models.OrderStatusPaymentPending},
		models.OrderStatusesAllowing(models.OrderStatusPaymentSettled))

	for _, from := range models.PaymentStatusesAllowing(models.PaymentStatusDeclined) {
		assert.True(t, models.CanTransitionPayment(from, models.PaymentStatusDeclined))
	}
	for _, from := range models.OrderStatusesAllowing(models.OrderStatusPaymentSettled) {
		assert.True(t, models.CanTransitionOrder(from, models.OrderStatusPaymentSettled))
	}
}

func TestPaymentTerminal(t *testing.T) {
	assert.True(t, models.PaymentTerminal(models.PaymentStatusSettled))
	assert.True(t, models.PaymentTerminal(models.PaymentStatusDeclined))
	assert.True(t, models.PaymentTerminal(models.PaymentStatusCancelled))
	assert.True(t, models.PaymentTerminal(models.PaymentStatusError))
	assert.False(t, models.PaymentTerminal(models.PaymentStatusPending))
	assert.False(t, models.PaymentTerminal(models.PaymentStatusAuthorized))
}
