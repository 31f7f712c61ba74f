package collection

import (
	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/ledger"
	"github.com/bitfsorg/pioneers-go/state"
)

// The operations below forward to the ownership ledger unchanged. Ledger
// errors are returned as-is.

// Approve lets spender transfer tokenID until expires.
func (c *Collection) Approve(env host.Env, info host.MessageInfo, spender, tokenID string, expires ledger.Expiration) (*Response, error) {
	err := c.execute(env, info, func(tx state.Tx) error {
		return c.ledger.Approve(tx, env, info.Sender, spender, tokenID, expires)
	})
	if err != nil {
		return nil, err
	}
	return newResponse("approve").
		add("sender", info.Sender).
		add("spender", spender).
		add("token_id", tokenID), nil
}

// Revoke removes spender's approval on tokenID.
func (c *Collection) Revoke(env host.Env, info host.MessageInfo, spender, tokenID string) (*Response, error) {
	err := c.execute(env, info, func(tx state.Tx) error {
		return c.ledger.Revoke(tx, env, info.Sender, spender, tokenID)
	})
	if err != nil {
		return nil, err
	}
	return newResponse("revoke").
		add("sender", info.Sender).
		add("spender", spender).
		add("token_id", tokenID), nil
}

// ApproveAll lets operator transfer all of the sender's tokens until expires.
func (c *Collection) ApproveAll(env host.Env, info host.MessageInfo, operator string, expires ledger.Expiration) (*Response, error) {
	err := c.execute(env, info, func(tx state.Tx) error {
		return c.ledger.ApproveAll(tx, env, info.Sender, operator, expires)
	})
	if err != nil {
		return nil, err
	}
	return newResponse("approve_all").
		add("sender", info.Sender).
		add("operator", operator), nil
}

// RevokeAll removes operator's rights over the sender's tokens.
func (c *Collection) RevokeAll(env host.Env, info host.MessageInfo, operator string) (*Response, error) {
	err := c.execute(env, info, func(tx state.Tx) error {
		return c.ledger.RevokeAll(tx, info.Sender, operator)
	})
	if err != nil {
		return nil, err
	}
	return newResponse("revoke_all").
		add("sender", info.Sender).
		add("operator", operator), nil
}

// TransferNft moves tokenID to recipient.
func (c *Collection) TransferNft(env host.Env, info host.MessageInfo, recipient, tokenID string) (*Response, error) {
	err := c.execute(env, info, func(tx state.Tx) error {
		return c.ledger.TransferNft(tx, env, info.Sender, recipient, tokenID)
	})
	if err != nil {
		return nil, err
	}
	return newResponse("transfer_nft").
		add("sender", info.Sender).
		add("recipient", recipient).
		add("token_id", tokenID), nil
}

// SendNft moves tokenID to contract and returns the receive message to
// deliver to it.
func (c *Collection) SendNft(env host.Env, info host.MessageInfo, contract, tokenID string, msg []byte) (*Response, error) {
	var receive ledger.ReceiveMsg
	err := c.execute(env, info, func(tx state.Tx) error {
		var err error
		receive, err = c.ledger.SendNft(tx, env, info.Sender, contract, tokenID, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newResponse("send_nft").
		add("sender", info.Sender).
		add("recipient", contract).
		add("token_id", tokenID).
		addMessage(Message{ReceiveNft: &receive}), nil
}
