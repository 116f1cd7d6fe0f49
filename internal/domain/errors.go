package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStore      = errors.New("store failure")
	ErrCache      = errors.New("cache failure")

	ErrNegativePrice   = fmt.Errorf("%w: price cannot be negative", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrEmptyOrder      = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
)

// StoreError reports a failed operation against the backing store.
// It matches ErrStore with errors.Is and unwraps to the driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

// CacheError reports a failed cache backend call for a key.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() []error { return []error{ErrCache, e.Err} }

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
