package collection

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/state"
)

// MintResponse is returned by a successful mint.
type MintResponse struct {
	*Response
	TokenIDs []string `json:"token_ids"`
}

// mintIntent is one token a validated mint will create.
type mintIntent struct {
	tokenID  string
	tokenURI string
}

// PublicMint mints a single token to the sender.
func (c *Collection) PublicMint(env host.Env, info host.MessageInfo) (*MintResponse, error) {
	return c.PublicBatchMint(env, info, 1)
}

// PublicBatchMint mints quantity tokens to the sender. The checks run in a
// fixed order and the first failure wins: quantity bounds, pause state,
// supply headroom, then exact payment in the configured denomination.
// Funds in other denominations do not count toward payment and are kept
// by the contract.
func (c *Collection) PublicBatchMint(env host.Env, info host.MessageInfo, quantity uint64) (*MintResponse, error) {
	var ids []string
	err := c.execute(env, info, func(tx state.Tx) error {
		intents, next, err := c.planMint(tx, info, quantity)
		if err != nil {
			return err
		}

		ids = make([]string, 0, len(intents))
		for _, in := range intents {
			if err := c.ledger.Mint(tx, env.ContractAddress, in.tokenID, info.Sender, in.tokenURI); err != nil {
				return err
			}
			ids = append(ids, in.tokenID)
		}
		return c.supply.Save(tx, next)
	})
	if err != nil {
		c.log.Debug("mint rejected",
			zap.String("sender", info.Sender),
			zap.Uint64("quantity", quantity),
			zap.Stringer("funds", info.Funds),
			zap.Error(err),
		)
		return nil, err
	}

	c.log.Info("tokens minted",
		zap.String("owner", info.Sender),
		zap.Uint64("quantity", quantity),
		zap.Strings("token_ids", ids),
	)
	resp := newResponse("public_mint").add("quantity", strconv.FormatUint(quantity, 10))
	return &MintResponse{Response: resp, TokenIDs: ids}, nil
}

// planMint validates a mint request and returns the tokens it will create
// together with the supply counter value after them. It writes nothing.
func (c *Collection) planMint(tx state.Tx, info host.MessageInfo, quantity uint64) ([]mintIntent, uint64, error) {
	if quantity == 0 || quantity > MaxBatch {
		return nil, 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidQuantity, quantity, MaxBatch)
	}

	cfg, err := c.loadConfig(tx)
	if err != nil {
		return nil, 0, err
	}
	if cfg.Paused {
		return nil, 0, ErrPaused
	}

	count, err := c.loadSupply(tx)
	if err != nil {
		return nil, 0, err
	}
	if count > cfg.MaxSupply() || quantity > cfg.MaxSupply()-count {
		return nil, 0, fmt.Errorf("%w: %d minted, %d requested, cap %d",
			ErrMaxSupplyExceeded, count, quantity, cfg.MaxSupply())
	}

	required, err := cfg.mintCost(quantity)
	if err != nil {
		return nil, 0, err
	}
	price := cfg.Price()
	if paid := info.Funds.AmountOf(price.Denom); !paid.Equals(required) {
		return nil, 0, fmt.Errorf("%w: paid %s%s, required %s%s",
			ErrInvalidPayment, paid, price.Denom, required, price.Denom)
	}

	intents := make([]mintIntent, quantity)
	for i := range intents {
		id := strconv.FormatUint(count+uint64(i)+1, 10)
		intents[i] = mintIntent{tokenID: id, tokenURI: cfg.BaseURI + id}
	}
	return intents, count + quantity, nil
}

// IsMintError reports whether err is one of the mint validation failures.
func IsMintError(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrPaused) ||
		errors.Is(err, ErrMaxSupplyExceeded) ||
		errors.Is(err, ErrInvalidPayment)
}
