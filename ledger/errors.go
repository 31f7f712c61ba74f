package ledger

import "errors"

var (
	// ErrNotMinter indicates a mint was presented with an authority other than the minter.
	ErrNotMinter = errors.New("ledger: sender is not the minter")

	// ErrClaimed indicates a token id has already been minted.
	ErrClaimed = errors.New("ledger: token_id already claimed")

	// ErrNotOwner indicates the sender may not act on the token.
	ErrNotOwner = errors.New("ledger: sender is not the token owner or an approved operator")

	// ErrExpired indicates an approval was requested with an expiration already in the past.
	ErrExpired = errors.New("ledger: cannot set approval that is already expired")

	// ErrTokenNotFound indicates no token exists with the given id.
	ErrTokenNotFound = errors.New("ledger: token not found")

	// ErrEmptyTokenID indicates an empty token id.
	ErrEmptyTokenID = errors.New("ledger: empty token id")

	// ErrAlreadyInstantiated indicates the ledger has already been instantiated.
	ErrAlreadyInstantiated = errors.New("ledger: already instantiated")

	// ErrNotInstantiated indicates the ledger has not been instantiated.
	ErrNotInstantiated = errors.New("ledger: not instantiated")
)
