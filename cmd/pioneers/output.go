package main

import (
	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/collection"
	"github.com/bitfsorg/pioneers-go/ledger"
)

// JSON views. Amounts are printed as decimal strings so 128-bit values
// survive clients that parse numbers as float64.

type coinView struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func viewCoins(cs bank.Coins) []coinView {
	out := make([]coinView, 0, len(cs))
	for _, c := range cs {
		out = append(out, coinView{Denom: c.Denom, Amount: c.Amount.String()})
	}
	return out
}

type bankSendView struct {
	ToAddress string     `json:"to_address"`
	Amount    []coinView `json:"amount"`
}

type messageView struct {
	BankSend   *bankSendView      `json:"bank_send,omitempty"`
	ReceiveNft *ledger.ReceiveMsg `json:"receive_nft,omitempty"`
}

type responseView struct {
	Attributes []collection.Attribute `json:"attributes"`
	Messages   []messageView          `json:"messages,omitempty"`
	TokenIDs   []string               `json:"token_ids,omitempty"`
}

func viewResponse(r *collection.Response) responseView {
	v := responseView{Attributes: r.Attributes}
	for _, m := range r.Messages {
		mv := messageView{ReceiveNft: m.ReceiveNft}
		if m.BankSend != nil {
			mv.BankSend = &bankSendView{ToAddress: m.BankSend.ToAddress, Amount: viewCoins(m.BankSend.Amount)}
		}
		v.Messages = append(v.Messages, mv)
	}
	return v
}

func viewMint(r *collection.MintResponse) responseView {
	v := viewResponse(r.Response)
	v.TokenIDs = r.TokenIDs
	return v
}

type configView struct {
	Admin           string  `json:"admin"`
	Minter          string  `json:"minter"`
	Price           string  `json:"price"`
	Denom           string  `json:"denom"`
	MaxSupply       uint64  `json:"max_supply"`
	Paused          bool    `json:"paused"`
	BaseURI         string  `json:"base_uri"`
	ProvenanceHash  *string `json:"provenance_hash"`
	RoyaltyBps      uint64  `json:"royalty_bps"`
	RoyaltyReceiver string  `json:"royalty_receiver"`
	TotalMinted     uint64  `json:"total_minted"`
}

func viewConfig(c collection.ConfigResponse) configView {
	return configView{
		Admin:           c.Admin,
		Minter:          c.Minter,
		Price:           c.Price.String(),
		Denom:           c.Denom,
		MaxSupply:       c.MaxSupply,
		Paused:          c.Paused,
		BaseURI:         c.BaseURI,
		ProvenanceHash:  c.ProvenanceHash,
		RoyaltyBps:      c.RoyaltyBps,
		RoyaltyReceiver: c.RoyaltyReceiver,
		TotalMinted:     c.TotalMinted,
	}
}

type royaltyView struct {
	Address       string `json:"address"`
	RoyaltyAmount string `json:"royalty_amount"`
}

type approvalView struct {
	Spender string `json:"spender"`
	Expires string `json:"expires"`
}

type ownerView struct {
	Owner     string         `json:"owner"`
	Approvals []approvalView `json:"approvals"`
}

func viewOwner(r ledger.OwnerOfResponse) ownerView {
	v := ownerView{Owner: r.Owner, Approvals: make([]approvalView, 0, len(r.Approvals))}
	for _, a := range r.Approvals {
		v.Approvals = append(v.Approvals, approvalView{Spender: a.Spender, Expires: a.Expires.String()})
	}
	return v
}

type fingerprintView struct {
	ProvenanceHash string `json:"provenance_hash"`
	Assets         int    `json:"assets"`
}
