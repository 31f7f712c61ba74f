package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/state"
)

const (
	admin    = "paxi1admin"
	contract = "paxi1pioneers"
	alice    = "paxi1alice"
	bob      = "paxi1bob"
	baseURI  = "ipfs://x/"
)

var testEnv = host.Env{
	Block: host.BlockInfo{
		Height:  1000,
		Time:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ChainID: "paxi-testnet",
	},
	ContractAddress: contract,
}

type fixture struct {
	c     *Collection
	store state.Store
	bank  *bank.Bank
}

// newFixture instantiates a collection on a MemStore and gives alice and
// bob 1000 PAXI plus some foreign coins.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := state.NewMemStore()
	f := &fixture{c: New(store, opts...), store: store, bank: bank.New()}

	_, err := f.c.Instantiate(testEnv, info(admin), InstantiateMsg{BaseTokenURI: baseURI})
	require.NoError(t, err)

	for _, addr := range []string{alice, bob} {
		f.fund(t, addr, bank.Coins{bank.NewCoin(PaymentDenom, 1_000_000_000), bank.NewCoin("uatom", 1_000)})
	}
	return f
}

// newActiveFixture is newFixture with minting unpaused.
func newActiveFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := newFixture(t, opts...)
	_, err := f.c.UnpauseMint(testEnv, info(admin))
	require.NoError(t, err)
	return f
}

func (f *fixture) fund(t *testing.T, addr string, coins bank.Coins) {
	t.Helper()
	require.NoError(t, f.store.Update(func(tx state.Tx) error {
		return f.bank.Fund(tx, addr, coins)
	}))
}

func (f *fixture) balance(t *testing.T, addr, denom string) uint128.Uint128 {
	t.Helper()
	var amount uint128.Uint128
	require.NoError(t, f.store.View(func(tx state.Tx) error {
		c, err := f.bank.Balance(tx, addr, denom)
		amount = c.Amount
		return err
	}))
	return amount
}

func (f *fixture) supply(t *testing.T) uint64 {
	t.Helper()
	cfg, err := f.c.GetConfig()
	require.NoError(t, err)
	return cfg.TotalMinted
}

func info(sender string, funds ...bank.Coin) host.MessageInfo {
	return host.MessageInfo{Sender: sender, Funds: bank.Coins(funds)}
}

func upaxi(amount uint64) bank.Coin {
	return bank.NewCoin(PaymentDenom, amount)
}
