package usecase

import "errors"

// Sentinel errors for the quote engine. Handlers map these to HTTP statuses
// with errors.Is, so services must keep them in the wrap chain.
var (
	ErrValidation          = errors.New("validation failed")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrServiceNotFound     = errors.New("service record not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPriceNotFound       = errors.New("price code not found")
	ErrUnknownServiceKind  = errors.New("unknown service kind")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrWriteFailed         = errors.New("write failed")
	ErrNotQuoteOwner       = errors.New("unauthorized: not the quote owner")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
