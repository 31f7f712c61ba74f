package bank

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"lukechampine.com/uint128"

	"github.com/bitfsorg/pioneers-go/state"
)

const balancesBucket = "balances"

// Bank keeps per-account balances of every denomination. All methods run
// inside the caller's state transaction so balance changes commit or roll
// back together with the operation that caused them.
type Bank struct {
	balances state.Map[uint128.Uint128]
}

// New returns a Bank backed by the balances bucket.
func New() *Bank {
	return &Bank{balances: state.NewMap[uint128.Uint128](balancesBucket)}
}

func balanceKey(addr, denom string) string {
	return addr + "\x00" + denom
}

// checkAddress rejects addresses that are empty or would collide with the
// balance key separator.
func checkAddress(addr string) error {
	if addr == "" || strings.IndexByte(addr, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return nil
}

// Balance returns the live balance of denom held by addr.
func (b *Bank) Balance(tx state.Tx, addr, denom string) (Coin, error) {
	if err := checkAddress(addr); err != nil {
		return Coin{}, err
	}
	amount, err := b.balances.Load(tx, balanceKey(addr, denom))
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return Coin{Denom: denom, Amount: uint128.Zero}, nil
		}
		return Coin{}, err
	}
	return Coin{Denom: denom, Amount: amount}, nil
}

// AllBalances returns every non-zero balance held by addr, ordered by denom.
func (b *Bank) AllBalances(tx state.Tx, addr string) (Coins, error) {
	if err := checkAddress(addr); err != nil {
		return nil, err
	}
	prefix := addr + "\x00"
	coins := Coins{}
	err := b.balances.Range(tx, prefix, "", func(key string, amount uint128.Uint128) bool {
		if !amount.IsZero() {
			coins = append(coins, Coin{Denom: key[len(prefix):], Amount: amount})
		}
		return true
	})
	return coins, err
}

// Fund credits coins to addr out of thin air. Hosts use it for genesis
// allocations and devnet faucets.
func (b *Bank) Fund(tx state.Tx, addr string, coins Coins) error {
	if err := checkAddress(addr); err != nil {
		return err
	}
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return err
		}
		if err := b.add(tx, addr, c); err != nil {
			return err
		}
	}
	return nil
}

// Send moves coins from one account to another. Zero-amount entries are
// skipped. The transfer is all-or-nothing within tx.
func (b *Bank) Send(tx state.Tx, from, to string, coins Coins) error {
	if err := checkAddress(from); err != nil {
		return err
	}
	if err := checkAddress(to); err != nil {
		return err
	}
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Amount.IsZero() {
			continue
		}

		have, err := b.Balance(tx, from, c.Denom)
		if err != nil {
			return err
		}
		if have.Amount.Cmp(c.Amount) < 0 {
			return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from, have, c)
		}
		if err := b.balances.Save(tx, balanceKey(from, c.Denom), have.Amount.Sub(c.Amount)); err != nil {
			return err
		}
		if err := b.add(tx, to, c); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) add(tx state.Tx, addr string, c Coin) error {
	have, err := b.Balance(tx, addr, c.Denom)
	if err != nil {
		return err
	}
	sum, carry := addWithCarry(have.Amount, c.Amount)
	if carry != 0 {
		return fmt.Errorf("%w: %s %s", ErrOverflow, addr, c.Denom)
	}
	return b.balances.Save(tx, balanceKey(addr, c.Denom), sum)
}

func addWithCarry(x, y uint128.Uint128) (uint128.Uint128, uint64) {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, carry := bits.Add64(x.Hi, y.Hi, carry)
	return uint128.New(lo, hi), carry
}
