package collection

import (
	"fmt"

	"lukechampine.com/uint128"

	"github.com/bitfsorg/pioneers-go/bank"
)

// Collection constants.
const (
	CollectionName   = "Paxi Pioneers"
	CollectionSymbol = "PIONEER"

	// ContractName and ContractVersion are recorded at instantiation so a
	// data file can be matched to the code that wrote it.
	ContractName    = "paxi-pioneers"
	ContractVersion = "0.1.0"

	PaymentDenom = "upaxi"
	MintPrice    = 10_000_000 // 10 PAXI
	MaxSupply    = 10_000
	RoyaltyBps   = 750 // 7.5%

	// MaxBatch is the most tokens a single mint may create.
	MaxBatch = 10

	bpsDenominator = 10_000
)

// Params are the deployment parameters fixed at instantiation.
type Params struct {
	Name       string
	Symbol     string
	Price      uint128.Uint128
	Denom      string
	MaxSupply  uint64
	RoyaltyBps uint64
}

// DefaultParams returns the Paxi Pioneers deployment parameters.
func DefaultParams() Params {
	return Params{
		Name:       CollectionName,
		Symbol:     CollectionSymbol,
		Price:      uint128.From64(MintPrice),
		Denom:      PaymentDenom,
		MaxSupply:  MaxSupply,
		RoyaltyBps: RoyaltyBps,
	}
}

// Validate checks that p describes a mintable collection.
func (p Params) Validate() error {
	if p.Name == "" || p.Symbol == "" {
		return fmt.Errorf("%w: name and symbol are required", ErrInvalidParams)
	}
	if p.MaxSupply == 0 {
		return fmt.Errorf("%w: max supply must be positive", ErrInvalidParams)
	}
	if p.RoyaltyBps > bpsDenominator {
		return fmt.Errorf("%w: royalty %d bps exceeds %d", ErrInvalidParams, p.RoyaltyBps, bpsDenominator)
	}
	if err := (bank.Coin{Denom: p.Denom}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// Config is the administrative state of the collection. Identity, price,
// supply cap and royalty terms are set once by Instantiate and only exposed
// through accessors; Paused, BaseURI and ProvenanceHash are the only fields
// admin operations may change.
type Config struct {
	admin           string
	minter          string
	price           uint128.Uint128
	denom           string
	maxSupply       uint64
	royaltyBps      uint64
	royaltyReceiver string

	Paused         bool
	BaseURI        string
	ProvenanceHash *string
}

func newConfig(admin, minter, baseURI string, provenance *string, p Params) Config {
	return Config{
		admin:           admin,
		minter:          minter,
		price:           p.Price,
		denom:           p.Denom,
		maxSupply:       p.MaxSupply,
		royaltyBps:      p.RoyaltyBps,
		royaltyReceiver: admin,
		Paused:          true,
		BaseURI:         baseURI,
		ProvenanceHash:  provenance,
	}
}

// Admin returns the identity with exclusive rights to admin operations.
func (c Config) Admin() string { return c.admin }

// Minter returns the identity presented to the ledger when minting.
func (c Config) Minter() string { return c.minter }

// Price returns the per-token mint price.
func (c Config) Price() bank.Coin { return bank.Coin{Denom: c.denom, Amount: c.price} }

// MaxSupply returns the cap on tokens ever minted.
func (c Config) MaxSupply() uint64 { return c.maxSupply }

// RoyaltyBps returns the royalty rate in basis points.
func (c Config) RoyaltyBps() uint64 { return c.royaltyBps }

// RoyaltyReceiver returns the identity royalties are paid to.
func (c Config) RoyaltyReceiver() string { return c.royaltyReceiver }

// requireAdmin fails with ErrUnauthorized unless caller is the admin.
func (c Config) requireAdmin(caller string) error {
	if caller != c.admin {
		return ErrUnauthorized
	}
	return nil
}

// mintCost returns price * quantity, failing if it does not fit 128 bits.
func (c Config) mintCost(quantity uint64) (uint128.Uint128, error) {
	if c.price.Cmp(uint128.Max.Div64(quantity)) > 0 {
		return uint128.Zero, fmt.Errorf("%w: price %s times %d overflows", ErrInvalidPayment, c.price, quantity)
	}
	return c.price.Mul64(quantity), nil
}

// configRecord is the persisted form of Config.
type configRecord struct {
	Admin           string
	Minter          string
	Price           uint128.Uint128
	Denom           string
	MaxSupply       uint64
	RoyaltyBps      uint64
	RoyaltyReceiver string
	Paused          bool
	BaseURI         string

	// gob omits pointers to zero values, so presence is stored separately.
	HasProvenance  bool
	ProvenanceHash string
}

func (c Config) record() configRecord {
	r := configRecord{
		Admin:           c.admin,
		Minter:          c.minter,
		Price:           c.price,
		Denom:           c.denom,
		MaxSupply:       c.maxSupply,
		RoyaltyBps:      c.royaltyBps,
		RoyaltyReceiver: c.royaltyReceiver,
		Paused:          c.Paused,
		BaseURI:         c.BaseURI,
	}
	if c.ProvenanceHash != nil {
		r.HasProvenance = true
		r.ProvenanceHash = *c.ProvenanceHash
	}
	return r
}

func (r configRecord) config() Config {
	c := Config{
		admin:           r.Admin,
		minter:          r.Minter,
		price:           r.Price,
		denom:           r.Denom,
		maxSupply:       r.MaxSupply,
		royaltyBps:      r.RoyaltyBps,
		royaltyReceiver: r.RoyaltyReceiver,
		Paused:          r.Paused,
		BaseURI:         r.BaseURI,
	}
	if r.HasProvenance {
		hash := r.ProvenanceHash
		c.ProvenanceHash = &hash
	}
	return c
}
