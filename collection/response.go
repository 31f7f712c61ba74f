package collection

import (
	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/ledger"
)

// Attribute is a key/value pair describing what an operation did.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BankSend records a transfer out of the contract account.
type BankSend struct {
	ToAddress string     `json:"to_address"`
	Amount    bank.Coins `json:"amount"`
}

// Message is a follow-up action produced by an operation. Exactly one
// field is set.
type Message struct {
	BankSend   *BankSend          `json:"bank_send,omitempty"`
	ReceiveNft *ledger.ReceiveMsg `json:"receive_nft,omitempty"`
}

// Response is the outcome of a successful mutating operation.
type Response struct {
	Attributes []Attribute `json:"attributes"`
	Messages   []Message   `json:"messages,omitempty"`
}

func newResponse(action string) *Response {
	return &Response{Attributes: []Attribute{{Key: "action", Value: action}}}
}

func (r *Response) add(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) addMessage(m Message) *Response {
	r.Messages = append(r.Messages, m)
	return r
}

// Attribute returns the value of the first attribute named key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
