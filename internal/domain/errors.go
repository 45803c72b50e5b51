package domain

import "errors"

var (
	// ErrNotFound is returned when an operation targets an id that is not
	// in the relevant collection.
	ErrNotFound = errors.New("not found")

	// ErrReferentialLock is returned when a delete or edit would break a
	// reference still held by a non-completed order.
	ErrReferentialLock = errors.New("referenced by an open order")

	// ErrOrderClosed is returned on any mutation of a completed order.
	ErrOrderClosed = errors.New("order already completed")

	// ErrStatusOrder is returned when a status write would move an order
	// backwards in its workflow.
	ErrStatusOrder = errors.New("order status cannot move backwards")
)
