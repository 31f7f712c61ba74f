package state

import "errors"

var (
	// ErrNotFound indicates no record exists for the given key.
	ErrNotFound = errors.New("state: record not found")

	// ErrReadOnly indicates a write was attempted inside a read-only transaction.
	ErrReadOnly = errors.New("state: transaction is read-only")

	// ErrEmptyKey indicates a bucket name or key is empty.
	ErrEmptyKey = errors.New("state: empty bucket or key")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("state: store is closed")

	// ErrDecode indicates a stored record could not be decoded.
	ErrDecode = errors.New("state: decode record")
)
