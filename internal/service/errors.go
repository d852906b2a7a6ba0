package service

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a reorder status change is not
// allowed from the current status.
var ErrInvalidTransition = errors.New("invalid reorder status transition")

// ErrDuplicateInventory is returned when a product already has an inventory
// row at the shop.
var ErrDuplicateInventory = errors.New("inventory already exists for this product and shop")

// ValidationError reports a request that references missing or inconsistent data.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
