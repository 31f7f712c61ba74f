package collection

import (
	"go.uber.org/zap"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/state"
)

// PauseMint disables public minting.
func (c *Collection) PauseMint(env host.Env, info host.MessageInfo) (*Response, error) {
	return c.updateConfig(env, info, "pause", func(cfg *Config) error {
		cfg.Paused = true
		return nil
	})
}

// UnpauseMint enables public minting.
func (c *Collection) UnpauseMint(env host.Env, info host.MessageInfo) (*Response, error) {
	return c.updateConfig(env, info, "unpause", func(cfg *Config) error {
		cfg.Paused = false
		return nil
	})
}

// UpdateBaseURI replaces the prefix used to derive token URIs. Tokens
// already minted keep the URI they were created with.
func (c *Collection) UpdateBaseURI(env host.Env, info host.MessageInfo, baseURI string) (*Response, error) {
	return c.updateConfig(env, info, "update_base_uri", func(cfg *Config) error {
		if baseURI == "" {
			return ErrInvalidBaseURI
		}
		cfg.BaseURI = baseURI
		return nil
	})
}

// SetProvenanceHash records the provenance fingerprint of the asset set.
func (c *Collection) SetProvenanceHash(env host.Env, info host.MessageInfo, hash string) (*Response, error) {
	return c.updateConfig(env, info, "set_provenance", func(cfg *Config) error {
		cfg.ProvenanceHash = &hash
		return nil
	})
}

// updateConfig checks the caller is admin, applies mutate and persists the
// result in one transaction.
func (c *Collection) updateConfig(env host.Env, info host.MessageInfo, action string, mutate func(cfg *Config) error) (*Response, error) {
	var cfg Config
	err := c.execute(env, info, func(tx state.Tx) error {
		var err error
		if cfg, err = c.loadConfig(tx); err != nil {
			return err
		}
		if err := cfg.requireAdmin(info.Sender); err != nil {
			return err
		}
		if err := mutate(&cfg); err != nil {
			return err
		}
		return c.saveConfig(tx, cfg)
	})
	if err != nil {
		c.log.Debug("config update rejected",
			zap.String("action", action),
			zap.String("sender", info.Sender),
			zap.Error(err),
		)
		return nil, err
	}

	c.log.Info("config updated",
		zap.String("action", action),
		zap.Bool("paused", cfg.Paused),
		zap.String("base_uri", cfg.BaseURI),
	)
	return newResponse(action), nil
}

// Withdraw sends the contract's entire live balance of the payment
// denomination to the admin. The balance is read from the bank rather than
// tracked from mint proceeds, so funds sent to the contract directly are
// withdrawn too, as are funds attached to this message. A zero balance
// succeeds without a transfer.
func (c *Collection) Withdraw(env host.Env, info host.MessageInfo) (*Response, error) {
	var send *BankSend
	err := c.executeFunded(env, info, func(tx state.Tx) error {
		cfg, err := c.loadConfig(tx)
		if err != nil {
			return err
		}
		if err := cfg.requireAdmin(info.Sender); err != nil {
			return err
		}

		balance, err := c.bank.Balance(tx, env.ContractAddress, cfg.Price().Denom)
		if err != nil {
			return err
		}
		if balance.Amount.IsZero() {
			return nil
		}
		amount := bank.Coins{balance}
		if err := c.bank.Send(tx, env.ContractAddress, cfg.Admin(), amount); err != nil {
			return err
		}
		send = &BankSend{ToAddress: cfg.Admin(), Amount: amount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := newResponse("withdraw")
	if send != nil {
		c.log.Info("proceeds withdrawn",
			zap.String("to", send.ToAddress),
			zap.Stringer("amount", send.Amount),
		)
		resp.add("amount", send.Amount.String()).addMessage(Message{BankSend: send})
	}
	return resp, nil
}
