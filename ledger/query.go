package ledger

import (
	"errors"
	"strings"

	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/state"
)

// ContractInfo returns the collection name and symbol.
func (l *Ledger) ContractInfo(tx state.Tx) (ContractInfo, error) {
	info, err := l.info.Load(tx)
	if errors.Is(err, state.ErrNotFound) {
		return ContractInfo{}, ErrNotInstantiated
	}
	return info, err
}

// NumTokens returns how many tokens have been minted.
func (l *Ledger) NumTokens(tx state.Tx) (NumTokensResponse, error) {
	n, err := l.count.Load(tx)
	if errors.Is(err, state.ErrNotFound) {
		return NumTokensResponse{}, ErrNotInstantiated
	}
	return NumTokensResponse{Count: n}, err
}

// OwnerOf returns the owner of tokenID and its approvals. Expired approvals
// are filtered out unless includeExpired is set.
func (l *Ledger) OwnerOf(tx state.Tx, env host.Env, tokenID string, includeExpired bool) (OwnerOfResponse, error) {
	token, err := l.loadToken(tx, tokenID)
	if err != nil {
		return OwnerOfResponse{}, err
	}
	approvals := make([]Approval, 0, len(token.Approvals))
	for _, a := range token.Approvals {
		if includeExpired || !a.Expires.IsExpired(env.Block) {
			approvals = append(approvals, a)
		}
	}
	return OwnerOfResponse{Owner: token.Owner, Approvals: approvals}, nil
}

// NftInfo returns the metadata pointer of tokenID.
func (l *Ledger) NftInfo(tx state.Tx, tokenID string) (NftInfoResponse, error) {
	token, err := l.loadToken(tx, tokenID)
	if err != nil {
		return NftInfoResponse{}, err
	}
	return NftInfoResponse{TokenURI: token.TokenURI}, nil
}

// Tokens lists token ids owned by owner in ascending id order, starting
// after startAfter. A zero limit selects DefaultLimit; larger limits are
// capped at MaxLimit.
func (l *Ledger) Tokens(tx state.Tx, owner, startAfter string, limit uint32) (TokensResponse, error) {
	n := int(limit)
	if n == 0 {
		n = DefaultLimit
	}
	if n > MaxLimit {
		n = MaxLimit
	}

	prefix := ownerKey(owner, "")
	after := ""
	if startAfter != "" {
		after = ownerKey(owner, startAfter)
	}

	ids := make([]string, 0, n)
	err := l.ownerIdx.Range(tx, prefix, after, func(key string, _ bool) bool {
		ids = append(ids, strings.TrimPrefix(key, prefix))
		return len(ids) < n
	})
	if err != nil {
		return TokensResponse{}, err
	}
	return TokensResponse{Tokens: ids}, nil
}
