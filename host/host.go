// Package host describes the execution environment a collection runs in:
// the current block, the collection's own account address, and the
// identity and funds attached to each incoming message.
package host

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bitfsorg/pioneers-go/bank"
)

// ErrInvalidAddress indicates an account address failed validation.
var ErrInvalidAddress = errors.New("host: invalid address")

// maxAddressLength bounds account addresses accepted by ValidateAddress.
const maxAddressLength = 255

// BlockInfo identifies the block a message executes in.
type BlockInfo struct {
	Height  uint64
	Time    time.Time
	ChainID string
}

// Env is the environment of a single message execution.
type Env struct {
	Block BlockInfo

	// ContractAddress is the account the collection owns funds and
	// minting authority under.
	ContractAddress string
}

// MessageInfo carries the caller identity and the funds attached to a
// message. Funds move from Sender to the contract in the same transaction
// as the message itself, so a failed message moves nothing.
type MessageInfo struct {
	Sender string
	Funds  bank.Coins
}

// ValidateAddress checks that addr is a normalized account address:
// non-empty, bounded in length, lowercase and free of whitespace and
// control characters.
func ValidateAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if len(addr) > maxAddressLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAddress, maxAddressLength)
	}
	if strings.ToLower(addr) != addr {
		return fmt.Errorf("%w: %q is not normalized", ErrInvalidAddress, addr)
	}
	if strings.IndexFunc(addr, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidAddress, addr)
	}
	if strings.IndexFunc(addr, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidAddress, addr)
	}
	return nil
}
