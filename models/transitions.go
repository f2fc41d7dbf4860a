package models

import "sort"

// Single transition table for payments and orders, shared by the webhook
// reconciliation path and the admin override path so both obey identical
// rules. Transitions are forward-only; nothing ever regresses.

var paymentTransitions = map[string]map[string]bool{
	PaymentStatusPending: {
		PaymentStatusAuthorized: true,
		PaymentStatusSettled:    true,
		PaymentStatusDeclined:   true,
		PaymentStatusCancelled:  true,
		PaymentStatusError:      true,
	},
	PaymentStatusAuthorized: {
		PaymentStatusSettled:   true,
		PaymentStatusCancelled: true,
		PaymentStatusError:     true,
	},
	// settled, declined, cancelled, error are terminal.
}

var orderTransitions = map[string]map[string]bool{
	OrderStatusCreated: {
		OrderStatusPaymentPending: true,
		OrderStatusCancelled:      true,
	},
	OrderStatusPaymentPending: {
		OrderStatusPaymentAuthorized: true,
		OrderStatusPaymentSettled:    true,
		OrderStatusCancelled:         true,
	},
	OrderStatusPaymentAuthorized: {
		OrderStatusPaymentSettled: true,
		OrderStatusCancelled:      true,
	},
	OrderStatusPaymentSettled: {
		OrderStatusShipped: true,
	},
	OrderStatusShipped: {
		OrderStatusDelivered: true,
	},
	// delivered and cancelled are terminal.
}

// CanTransitionPayment reports whether a payment may move from one status to
// another.
func CanTransitionPayment(from, to string) bool {
	return paymentTransitions[from][to]
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	return orderTransitions[from][to]
}

// PaymentTerminal reports whether a payment status accepts no further
// transitions.
func PaymentTerminal(status string) bool {
	switch status {
	case PaymentStatusSettled, PaymentStatusDeclined, PaymentStatusCancelled, PaymentStatusError:
		return true
	}
	return false
}

// PaymentStatusesAllowing returns every "from" status the table permits to
// reach target. The conditional reconciliation updates use this so their
// WHERE clauses can never drift from the table.
func PaymentStatusesAllowing(target string) []string {
	return statusesAllowing(paymentTransitions, target)
}

// OrderStatusesAllowing returns every order "from" status the table permits
// to reach target.
func OrderStatusesAllowing(target string) []string {
	return statusesAllowing(orderTransitions, target)
}

func statusesAllowing(table map[string]map[string]bool, target string) []string {
	from := make([]string, 0, len(table))
	for status, targets := range table {
		if targets[target] {
			from = append(from, status)
		}
	}
	sort.Strings(from)
	return from
}
