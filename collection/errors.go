package collection

import "errors"

var (
	// ErrUnauthorized indicates the caller is not the admin on an admin-only operation.
	ErrUnauthorized = errors.New("collection: unauthorized")

	// ErrPaused indicates a mint was attempted while minting is paused.
	ErrPaused = errors.New("collection: minting is paused")

	// ErrInvalidQuantity indicates a mint quantity of zero or above the batch cap.
	ErrInvalidQuantity = errors.New("collection: quantity out of bounds")

	// ErrMaxSupplyExceeded indicates a mint would push the supply past the cap.
	ErrMaxSupplyExceeded = errors.New("collection: max supply exceeded")

	// ErrInvalidPayment indicates the attached payment is not exactly price times quantity.
	ErrInvalidPayment = errors.New("collection: invalid payment amount")

	// ErrInvalidBaseURI indicates an empty base URI.
	ErrInvalidBaseURI = errors.New("collection: base URI must not be empty")

	// ErrInvalidParams indicates deployment parameters failed validation.
	ErrInvalidParams = errors.New("collection: invalid parameters")

	// ErrAlreadyInstantiated indicates Instantiate was called twice.
	ErrAlreadyInstantiated = errors.New("collection: already instantiated")

	// ErrNotInstantiated indicates an operation ran before Instantiate.
	ErrNotInstantiated = errors.New("collection: not instantiated")
)
