package collection

import (
	"errors"

	"lukechampine.com/uint128"

	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/ledger"
	"github.com/bitfsorg/pioneers-go/state"
)

// ConfigResponse projects every Config field plus the supply counter.
type ConfigResponse struct {
	Admin           string
	Minter          string
	Price           uint128.Uint128
	Denom           string
	MaxSupply       uint64
	Paused          bool
	BaseURI         string
	ProvenanceHash  *string
	RoyaltyBps      uint64
	RoyaltyReceiver string
	TotalMinted     uint64
}

// RoyaltiesInfoResponse quotes the royalty owed on a secondary sale.
type RoyaltiesInfoResponse struct {
	Address       string
	RoyaltyAmount uint128.Uint128
}

// GetConfig returns the current configuration and minted supply.
func (c *Collection) GetConfig() (ConfigResponse, error) {
	var resp ConfigResponse
	err := c.query(func(tx state.Tx) error {
		cfg, err := c.loadConfig(tx)
		if err != nil {
			return err
		}
		total, err := c.loadSupply(tx)
		if err != nil {
			return err
		}
		resp = ConfigResponse{
			Admin:           cfg.Admin(),
			Minter:          cfg.Minter(),
			Price:           cfg.Price().Amount,
			Denom:           cfg.Price().Denom,
			MaxSupply:       cfg.MaxSupply(),
			Paused:          cfg.Paused,
			BaseURI:         cfg.BaseURI,
			ProvenanceHash:  cfg.ProvenanceHash,
			RoyaltyBps:      cfg.RoyaltyBps(),
			RoyaltyReceiver: cfg.RoyaltyReceiver(),
			TotalMinted:     total,
		}
		return nil
	})
	return resp, err
}

// RoyaltyInfo returns the receiver and floor(salePrice * bps / 10000).
// A single collection-wide rate applies, so tokenID does not affect the
// result.
func (c *Collection) RoyaltyInfo(tokenID string, salePrice uint128.Uint128) (RoyaltiesInfoResponse, error) {
	var resp RoyaltiesInfoResponse
	err := c.query(func(tx state.Tx) error {
		cfg, err := c.loadConfig(tx)
		if err != nil {
			return err
		}
		resp = RoyaltiesInfoResponse{
			Address:       cfg.RoyaltyReceiver(),
			RoyaltyAmount: royaltyAmount(salePrice, cfg.RoyaltyBps()),
		}
		return nil
	})
	return resp, err
}

// royaltyAmount computes floor(price * bps / 10000) without overflow.
// With price = q*10000 + r the result is q*bps + floor(r*bps/10000), and
// q*bps never exceeds price because bps <= 10000.
func royaltyAmount(price uint128.Uint128, bps uint64) uint128.Uint128 {
	q, r := price.QuoRem64(bpsDenominator)
	return q.Mul64(bps).Add64(r * bps / bpsDenominator)
}

// ContractVersion returns the contract name and version recorded at
// instantiation.
func (c *Collection) ContractVersion() (VersionInfo, error) {
	var v VersionInfo
	err := c.query(func(tx state.Tx) error {
		var err error
		v, err = c.version.Load(tx)
		if errors.Is(err, state.ErrNotFound) {
			return ErrNotInstantiated
		}
		return err
	})
	return v, err
}

// OwnerOf forwards to the ledger.
func (c *Collection) OwnerOf(env host.Env, tokenID string, includeExpired bool) (ledger.OwnerOfResponse, error) {
	var resp ledger.OwnerOfResponse
	err := c.query(func(tx state.Tx) error {
		var err error
		resp, err = c.ledger.OwnerOf(tx, env, tokenID, includeExpired)
		return err
	})
	return resp, err
}

// NumTokens forwards to the ledger.
func (c *Collection) NumTokens() (ledger.NumTokensResponse, error) {
	var resp ledger.NumTokensResponse
	err := c.query(func(tx state.Tx) error {
		var err error
		resp, err = c.ledger.NumTokens(tx)
		return err
	})
	return resp, err
}

// NftInfo forwards to the ledger.
func (c *Collection) NftInfo(tokenID string) (ledger.NftInfoResponse, error) {
	var resp ledger.NftInfoResponse
	err := c.query(func(tx state.Tx) error {
		var err error
		resp, err = c.ledger.NftInfo(tx, tokenID)
		return err
	})
	return resp, err
}

// Tokens forwards to the ledger.
func (c *Collection) Tokens(owner, startAfter string, limit uint32) (ledger.TokensResponse, error) {
	var resp ledger.TokensResponse
	err := c.query(func(tx state.Tx) error {
		var err error
		resp, err = c.ledger.Tokens(tx, owner, startAfter, limit)
		return err
	})
	return resp, err
}

// ContractInfo forwards to the ledger.
func (c *Collection) ContractInfo() (ledger.ContractInfo, error) {
	var resp ledger.ContractInfo
	err := c.query(func(tx state.Tx) error {
		var err error
		resp, err = c.ledger.ContractInfo(tx)
		return err
	})
	return resp, err
}
