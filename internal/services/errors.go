package services

import "errors"

// Error kinds the HTTP layer maps onto status codes. Store failures are
// returned wrapped with operation context and fall through as 500s.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
