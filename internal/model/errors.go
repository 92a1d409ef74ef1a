package model

import "errors"

// Common errors used across the application
var (
	// ErrGameNotFound indicates the game is not currently tracked
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidEvent indicates a malformed inbound turn event; the store
	// is never mutated for these
	ErrInvalidEvent = errors.New("invalid turn event")

	// ErrStoreUnavailable indicates the persistence collaborator could not
	// complete an operation; no partial writes occur
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrSinkDeliveryFailed indicates chat delivery failed after the state
	// change was already committed
	ErrSinkDeliveryFailed = errors.New("notification delivery failed")
)
