// Package collection implements a fixed-supply, paid-mint token collection:
// admin-gated configuration, exact-payment minting against a supply cap,
// royalty quotes and pass-through access to the ownership ledger.
//
// Every mutating operation runs in a single state.Store transaction.
// Validation, ledger writes, the supply counter update and the movement of
// attached funds commit together or not at all.
package collection

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/ledger"
	"github.com/bitfsorg/pioneers-go/state"
)

const metaBucket = "collection"

// Collection is the business-logic core over a state store.
type Collection struct {
	store  state.Store
	params Params
	ledger *ledger.Ledger
	bank   *bank.Bank
	log    *zap.Logger

	config  state.Item[configRecord]
	supply  state.Item[uint64]
	version state.Item[VersionInfo]
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger used for state transitions. The default
// discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Collection) {
		if log != nil {
			c.log = log
		}
	}
}

// WithParams overrides the deployment parameters used by Instantiate.
func WithParams(p Params) Option {
	return func(c *Collection) { c.params = p }
}

// New returns a Collection over store.
func New(store state.Store, opts ...Option) *Collection {
	c := &Collection{
		store:   store,
		params:  DefaultParams(),
		ledger:  ledger.New(),
		bank:    bank.New(),
		log:     zap.NewNop(),
		config:  state.NewItem[configRecord](metaBucket, "config"),
		supply:  state.NewItem[uint64](metaBucket, "token_count"),
		version: state.NewItem[VersionInfo](metaBucket, "contract_info"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstantiateMsg initializes a collection.
type InstantiateMsg struct {
	BaseTokenURI   string
	ProvenanceHash *string
}

// VersionInfo identifies the code that instantiated a collection.
type VersionInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// Instantiate creates the collection: the sender becomes admin and royalty
// receiver, the contract address becomes the minter, and minting starts
// paused with a supply of zero.
func (c *Collection) Instantiate(env host.Env, info host.MessageInfo, msg InstantiateMsg) (*Response, error) {
	if err := c.params.Validate(); err != nil {
		return nil, err
	}
	if err := host.ValidateAddress(info.Sender); err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	if err := host.ValidateAddress(env.ContractAddress); err != nil {
		return nil, fmt.Errorf("minter: %w", err)
	}
	if msg.BaseTokenURI == "" {
		return nil, ErrInvalidBaseURI
	}

	cfg := newConfig(info.Sender, env.ContractAddress, msg.BaseTokenURI, msg.ProvenanceHash, c.params)
	err := c.execute(env, info, func(tx state.Tx) error {
		if c.config.Exists(tx) {
			return ErrAlreadyInstantiated
		}
		if err := c.version.Save(tx, VersionInfo{Contract: ContractName, Version: ContractVersion}); err != nil {
			return err
		}
		li := ledger.ContractInfo{Name: c.params.Name, Symbol: c.params.Symbol}
		if err := c.ledger.Instantiate(tx, li, cfg.Minter()); err != nil {
			return err
		}
		if err := c.saveConfig(tx, cfg); err != nil {
			return err
		}
		return c.supply.Save(tx, 0)
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("collection instantiated",
		zap.String("admin", cfg.Admin()),
		zap.String("minter", cfg.Minter()),
		zap.String("base_uri", cfg.BaseURI),
		zap.Uint64("max_supply", cfg.MaxSupply()),
	)
	return newResponse("instantiate").
		add("admin", cfg.Admin()).
		add("minter", cfg.Minter()), nil
}

// execute runs fn and then moves the funds attached to info into the
// contract account, all inside one store transaction. Nothing fn or the
// deposit wrote survives an error from either.
func (c *Collection) execute(env host.Env, info host.MessageInfo, fn func(tx state.Tx) error) error {
	return c.store.Update(func(tx state.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		if info.Funds.IsZero() {
			return nil
		}
		return c.bank.Send(tx, info.Sender, env.ContractAddress, info.Funds)
	})
}

// executeFunded is execute with the deposit made before fn runs, for
// handlers that read the contract's live balance.
func (c *Collection) executeFunded(env host.Env, info host.MessageInfo, fn func(tx state.Tx) error) error {
	return c.store.Update(func(tx state.Tx) error {
		if !info.Funds.IsZero() {
			if err := c.bank.Send(tx, info.Sender, env.ContractAddress, info.Funds); err != nil {
				return err
			}
		}
		return fn(tx)
	})
}

// query runs fn in a read-only store transaction.
func (c *Collection) query(fn func(tx state.Tx) error) error {
	return c.store.View(fn)
}

func (c *Collection) loadConfig(tx state.Tx) (Config, error) {
	rec, err := c.config.Load(tx)
	if errors.Is(err, state.ErrNotFound) {
		return Config{}, ErrNotInstantiated
	}
	if err != nil {
		return Config{}, err
	}
	return rec.config(), nil
}

func (c *Collection) saveConfig(tx state.Tx, cfg Config) error {
	return c.config.Save(tx, cfg.record())
}

func (c *Collection) loadSupply(tx state.Tx) (uint64, error) {
	n, err := c.supply.Load(tx)
	if errors.Is(err, state.ErrNotFound) {
		return 0, ErrNotInstantiated
	}
	return n, err
}
