package models

import "time"

// PaymentEvent is the message published to SNS after a reconciliation write
// commits. Publishing is best-effort; downstream consumers (notifications,
// fulfilment) read it.
type PaymentEvent struct {
	Type      string    `json:"type"` // payment_settled | payment_declined
	OrderID   string    `json:"order_id"`
	OrderCode string    `json:"order_code"`
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Reference string    `json:"reference"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}
