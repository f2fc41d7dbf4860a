package repository

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a checkout line references a product
// that does not exist.
type ErrProductNotFound struct {
	ProductID uuid.UUID
}

func (e *ErrProductNotFound) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// ErrInsufficientStock is returned when the conditional stock decrement for a
// line matches zero rows. It names the line so checkout failures can be
// itemized to the caller.
type ErrInsufficientStock struct {
	ProductID uuid.UUID
	Name      string
	Requested int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for %q (%s), requested %d", e.Name, e.ProductID, e.Requested)
}
