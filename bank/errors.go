package bank

import "errors"

var (
	// ErrInsufficientFunds indicates the sender's balance is below the amount sent.
	ErrInsufficientFunds = errors.New("bank: insufficient funds")

	// ErrInvalidCoin indicates a coin has an empty or malformed denomination.
	ErrInvalidCoin = errors.New("bank: invalid coin")

	// ErrInvalidAddress indicates an empty account address.
	ErrInvalidAddress = errors.New("bank: invalid address")

	// ErrOverflow indicates a balance would exceed the 128-bit range.
	ErrOverflow = errors.New("bank: balance overflow")
)
