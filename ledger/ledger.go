package ledger

import (
	"errors"
	"fmt"

	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/state"
)

const (
	// DefaultLimit is the page size used by Tokens when no limit is given.
	DefaultLimit = 10

	// MaxLimit caps the page size accepted by Tokens.
	MaxLimit = 1000
)

const (
	metaBucket      = "nft_meta"
	tokensBucket    = "nft_tokens"
	ownerIdxBucket  = "nft_owner_tokens"
	operatorsBucket = "nft_operators"
)

// Ledger is the ownership ledger of a single collection: it records which
// account owns each token, per-token approvals and per-owner operators.
// Every method runs inside the caller's state transaction.
type Ledger struct {
	info      state.Item[ContractInfo]
	minter    state.Item[string]
	count     state.Item[uint64]
	tokens    state.Map[TokenInfo]
	ownerIdx  state.Map[bool]
	operators state.Map[Expiration]
}

// New returns a Ledger over the nft_* buckets.
func New() *Ledger {
	return &Ledger{
		info:      state.NewItem[ContractInfo](metaBucket, "contract_info"),
		minter:    state.NewItem[string](metaBucket, "minter"),
		count:     state.NewItem[uint64](metaBucket, "num_tokens"),
		tokens:    state.NewMap[TokenInfo](tokensBucket),
		ownerIdx:  state.NewMap[bool](ownerIdxBucket),
		operators: state.NewMap[Expiration](operatorsBucket),
	}
}

func ownerKey(owner, tokenID string) string {
	return owner + "\x00" + tokenID
}

func operatorKey(owner, operator string) string {
	return owner + "\x00" + operator
}

// Instantiate records the collection info and the only identity allowed to mint.
func (l *Ledger) Instantiate(tx state.Tx, info ContractInfo, minter string) error {
	if l.info.Exists(tx) {
		return ErrAlreadyInstantiated
	}
	if err := host.ValidateAddress(minter); err != nil {
		return err
	}
	if err := l.info.Save(tx, info); err != nil {
		return err
	}
	if err := l.minter.Save(tx, minter); err != nil {
		return err
	}
	return l.count.Save(tx, 0)
}

// Minter returns the identity allowed to mint.
func (l *Ledger) Minter(tx state.Tx) (string, error) {
	m, err := l.minter.Load(tx)
	if errors.Is(err, state.ErrNotFound) {
		return "", ErrNotInstantiated
	}
	return m, err
}

// Mint creates tokenID owned by owner. sender is the authority presented
// for the mint and must equal the minter.
func (l *Ledger) Mint(tx state.Tx, sender, tokenID, owner, tokenURI string) error {
	minter, err := l.Minter(tx)
	if err != nil {
		return err
	}
	if sender != minter {
		return ErrNotMinter
	}
	if tokenID == "" {
		return ErrEmptyTokenID
	}
	if err := host.ValidateAddress(owner); err != nil {
		return err
	}
	if l.tokens.Has(tx, tokenID) {
		return fmt.Errorf("%w: %s", ErrClaimed, tokenID)
	}

	token := TokenInfo{Owner: owner, TokenURI: tokenURI}
	if err := l.tokens.Save(tx, tokenID, token); err != nil {
		return err
	}
	if err := l.ownerIdx.Save(tx, ownerKey(owner, tokenID), true); err != nil {
		return err
	}

	n, err := l.count.Load(tx)
	if err != nil {
		return err
	}
	return l.count.Save(tx, n+1)
}

// Approve lets spender transfer tokenID until expires. Sender must own the
// token or be a live operator of its owner.
func (l *Ledger) Approve(tx state.Tx, env host.Env, sender, spender, tokenID string, expires Expiration) error {
	if err := host.ValidateAddress(spender); err != nil {
		return err
	}
	if expires.IsExpired(env.Block) {
		return ErrExpired
	}
	return l.updateApprovals(tx, env, sender, spender, tokenID, &expires)
}

// Revoke removes any approval of spender on tokenID.
func (l *Ledger) Revoke(tx state.Tx, env host.Env, sender, spender, tokenID string) error {
	return l.updateApprovals(tx, env, sender, spender, tokenID, nil)
}

func (l *Ledger) updateApprovals(tx state.Tx, env host.Env, sender, spender, tokenID string, expires *Expiration) error {
	token, err := l.loadToken(tx, tokenID)
	if err != nil {
		return err
	}
	if err := l.checkCanApprove(tx, env, sender, token); err != nil {
		return err
	}

	kept := token.Approvals[:0]
	for _, a := range token.Approvals {
		if a.Spender != spender {
			kept = append(kept, a)
		}
	}
	token.Approvals = kept
	if expires != nil {
		token.Approvals = append(token.Approvals, Approval{Spender: spender, Expires: *expires})
	}
	return l.tokens.Save(tx, tokenID, token)
}

// ApproveAll makes operator able to transfer every token sender owns until expires.
func (l *Ledger) ApproveAll(tx state.Tx, env host.Env, sender, operator string, expires Expiration) error {
	if err := host.ValidateAddress(operator); err != nil {
		return err
	}
	if expires.IsExpired(env.Block) {
		return ErrExpired
	}
	return l.operators.Save(tx, operatorKey(sender, operator), expires)
}

// RevokeAll removes operator's rights over sender's tokens.
func (l *Ledger) RevokeAll(tx state.Tx, sender, operator string) error {
	return l.operators.Remove(tx, operatorKey(sender, operator))
}

// TransferNft moves tokenID to recipient and clears its approvals.
func (l *Ledger) TransferNft(tx state.Tx, env host.Env, sender, recipient, tokenID string) error {
	if err := host.ValidateAddress(recipient); err != nil {
		return err
	}
	token, err := l.loadToken(tx, tokenID)
	if err != nil {
		return err
	}
	if err := l.checkCanSend(tx, env, sender, token); err != nil {
		return err
	}

	if err := l.ownerIdx.Remove(tx, ownerKey(token.Owner, tokenID)); err != nil {
		return err
	}
	token.Owner = recipient
	token.Approvals = nil
	if err := l.tokens.Save(tx, tokenID, token); err != nil {
		return err
	}
	return l.ownerIdx.Save(tx, ownerKey(recipient, tokenID), true)
}

// SendNft transfers tokenID to contract and returns the receive message the
// host must deliver to it.
func (l *Ledger) SendNft(tx state.Tx, env host.Env, sender, contract, tokenID string, msg []byte) (ReceiveMsg, error) {
	if err := l.TransferNft(tx, env, sender, contract, tokenID); err != nil {
		return ReceiveMsg{}, err
	}
	return ReceiveMsg{Contract: contract, Sender: sender, TokenID: tokenID, Msg: msg}, nil
}

func (l *Ledger) loadToken(tx state.Tx, tokenID string) (TokenInfo, error) {
	if tokenID == "" {
		return TokenInfo{}, ErrEmptyTokenID
	}
	token, err := l.tokens.Load(tx, tokenID)
	if errors.Is(err, state.ErrNotFound) {
		return TokenInfo{}, fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	return token, err
}

func (l *Ledger) isOperator(tx state.Tx, env host.Env, owner, sender string) (bool, error) {
	exp, err := l.operators.Load(tx, operatorKey(owner, sender))
	if errors.Is(err, state.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !exp.IsExpired(env.Block), nil
}

func (l *Ledger) checkCanApprove(tx state.Tx, env host.Env, sender string, token TokenInfo) error {
	if token.Owner == sender {
		return nil
	}
	ok, err := l.isOperator(tx, env, token.Owner, sender)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return nil
}

func (l *Ledger) checkCanSend(tx state.Tx, env host.Env, sender string, token TokenInfo) error {
	if token.Owner == sender {
		return nil
	}
	for _, a := range token.Approvals {
		if a.Spender == sender && !a.Expires.IsExpired(env.Block) {
			return nil
		}
	}
	return l.checkCanApprove(tx, env, sender, token)
}
