package ledger

// ContractInfo names the collection.
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Approval grants Spender the right to transfer a single token until Expires.
type Approval struct {
	Spender string     `json:"spender"`
	Expires Expiration `json:"expires"`
}

// TokenInfo is the stored record of a single token.
type TokenInfo struct {
	Owner     string
	Approvals []Approval
	TokenURI  string
}

// OwnerOfResponse is returned by OwnerOf.
type OwnerOfResponse struct {
	Owner     string     `json:"owner"`
	Approvals []Approval `json:"approvals"`
}

// NumTokensResponse is returned by NumTokens.
type NumTokensResponse struct {
	Count uint64 `json:"count"`
}

// NftInfoResponse is returned by NftInfo.
type NftInfoResponse struct {
	TokenURI string `json:"token_uri,omitempty"`
}

// TokensResponse is returned by Tokens.
type TokensResponse struct {
	Tokens []string `json:"tokens"`
}

// ReceiveMsg is delivered to a contract that is sent a token via SendNft.
type ReceiveMsg struct {
	Contract string `json:"contract"`
	Sender   string `json:"sender"`
	TokenID  string `json:"token_id"`
	Msg      []byte `json:"msg"`
}
