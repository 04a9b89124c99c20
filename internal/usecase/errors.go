package usecase

import "errors"

// Error taxonomy surfaced at the request boundary. Handlers map each sentinel
// to an HTTP status; none of these is fatal to the process.
var (
	// bad input: non-positive quantity, delivery time out of window, ...
	ErrValidation = errors.New("validation error")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// duplicate email, idempotency key reuse with different payload
	ErrConflict = errors.New("conflict")

	// checkout on a cart with no lines
	ErrEmptyCart = errors.New("cart is empty")

	// illegal status change (backward, skipping)
	ErrInvalidTransition = errors.New("invalid status transition")

	// DELIVERED and CANCELLED accept no further changes
	ErrTerminalState = errors.New("order is in a terminal state")

	ErrInternal = errors.New("internal error")
)
