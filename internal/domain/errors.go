package domain

import "errors"

// Domain errors
var (
	// Validation errors
	ErrBusNameRequired       = errors.New("bus name must be non-empty")
	ErrRouteRequired         = errors.New("origin and destination must be non-empty")
	ErrInvalidTotalSeats     = errors.New("total seats must be a positive integer")
	ErrInvalidPrice          = errors.New("price per seat must be a positive integer")
	ErrInvalidAvailableSeats = errors.New("available seats must be between 0 and total seats")
	ErrPassengerRequired     = errors.New("passenger name must be non-empty")
	ErrContactRequired       = errors.New("contact must be non-empty")
	ErrInvalidSeatCount      = errors.New("seat count must be greater than zero")
	ErrInvalidPricePaid      = errors.New("price paid cannot be negative")

	// Lookup errors
	ErrBusNotFound    = errors.New("bus not found")
	ErrTicketNotFound = errors.New("ticket not found")

	// Inventory errors
	ErrInsufficientSeats = errors.New("insufficient seats available")

	// Catalog errors
	ErrCatalogNotEmpty = errors.New("catalog already seeded")

	// Store errors
	ErrCorruptStore = errors.New("durable store is corrupt")
)

// IsValidationError checks if the error is a malformed-input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrBusNameRequired) ||
		errors.Is(err, ErrRouteRequired) ||
		errors.Is(err, ErrInvalidTotalSeats) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidAvailableSeats) ||
		errors.Is(err, ErrPassengerRequired) ||
		errors.Is(err, ErrContactRequired) ||
		errors.Is(err, ErrInvalidSeatCount) ||
		errors.Is(err, ErrInvalidPricePaid)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBusNotFound) ||
		errors.Is(err, ErrTicketNotFound)
}

// IsConflictError checks if the error is an inventory conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInsufficientSeats) ||
		errors.Is(err, ErrCatalogNotEmpty)
}

// IsCorruptStoreError checks if the error indicates an unreadable store
func IsCorruptStoreError(err error) bool {
	return errors.Is(err, ErrCorruptStore)
}
