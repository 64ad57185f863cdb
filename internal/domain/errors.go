package domain

import "errors"

// Error kinds returned by the core services. All are recoverable conditions
// reported to the caller; none are fatal. The HTTP layer maps them to status
// codes with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrForbidden            = errors.New("forbidden")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrRiskRejected         = errors.New("rejected by risk assessment")
)
