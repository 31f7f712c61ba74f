package bank

import (
	"fmt"
	"regexp"
	"strings"

	"lukechampine.com/uint128"
)

var (
	denomPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)
	coinPattern  = regexp.MustCompile(`^([0-9]+)([a-zA-Z][a-zA-Z0-9/:._-]{2,127})$`)
)

// Coin is an amount of a single denomination.
type Coin struct {
	Denom  string
	Amount uint128.Uint128
}

// NewCoin returns a coin of amount units of denom.
func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: uint128.From64(amount)}
}

// Validate checks the denomination format.
func (c Coin) Validate() error {
	if !denomPattern.MatchString(c.Denom) {
		return fmt.Errorf("%w: denom %q", ErrInvalidCoin, c.Denom)
	}
	return nil
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is a list of coins, at most one entry per denomination when built
// by ParseCoins.
type Coins []Coin

// AmountOf returns the total amount of denom in the list. Entries in other
// denominations are ignored.
func (cs Coins) AmountOf(denom string) uint128.Uint128 {
	total := uint128.Zero
	for _, c := range cs {
		if c.Denom != denom {
			continue
		}
		sum, carry := addWithCarry(total, c.Amount)
		if carry != 0 {
			return uint128.Max
		}
		total = sum
	}
	return total
}

// IsZero reports whether every entry has a zero amount.
func (cs Coins) IsZero() bool {
	for _, c := range cs {
		if !c.Amount.IsZero() {
			return false
		}
	}
	return true
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// ParseCoins parses a comma-separated list such as "20000000upaxi,5uatom".
// An empty string yields an empty list.
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coins{}, nil
	}

	seen := make(map[string]bool)
	var coins Coins
	for _, part := range strings.Split(s, ",") {
		m := coinPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCoin, part)
		}
		amount, err := uint128.FromString(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q: %w", ErrInvalidCoin, m[1], err)
		}
		if seen[m[2]] {
			return nil, fmt.Errorf("%w: duplicate denom %q", ErrInvalidCoin, m[2])
		}
		seen[m[2]] = true
		coins = append(coins, Coin{Denom: m[2], Amount: amount})
	}
	return coins, nil
}
