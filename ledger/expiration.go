package ledger

import (
	"fmt"
	"time"

	"github.com/bitfsorg/pioneers-go/host"
)

// ExpirationKind selects which bound of an Expiration applies.
type ExpirationKind uint8

const (
	ExpiresNever ExpirationKind = iota
	ExpiresAtHeight
	ExpiresAtTime
)

// Expiration bounds the lifetime of an approval. The zero value never
// expires. Height and Time are read only for their own kind, so height 0
// and the zero time are ordinary bounds that have already passed.
type Expiration struct {
	Kind   ExpirationKind
	Height uint64
	Time   time.Time
}

// Never returns an expiration that never passes.
func Never() Expiration { return Expiration{} }

// AtHeight returns an expiration at block height h.
func AtHeight(h uint64) Expiration { return Expiration{Kind: ExpiresAtHeight, Height: h} }

// AtTime returns an expiration at block time t.
func AtTime(t time.Time) Expiration { return Expiration{Kind: ExpiresAtTime, Time: t.UTC()} }

// IsNever reports whether e never expires.
func (e Expiration) IsNever() bool {
	return e.Kind == ExpiresNever
}

// IsExpired reports whether e has passed at the given block.
func (e Expiration) IsExpired(block host.BlockInfo) bool {
	switch e.Kind {
	case ExpiresAtHeight:
		return block.Height >= e.Height
	case ExpiresAtTime:
		return !block.Time.Before(e.Time)
	default:
		return false
	}
}

func (e Expiration) String() string {
	switch e.Kind {
	case ExpiresAtHeight:
		return fmt.Sprintf("expiration height: %d", e.Height)
	case ExpiresAtTime:
		return fmt.Sprintf("expiration time: %s", e.Time.Format(time.RFC3339Nano))
	default:
		return "expiration: never"
	}
}
