package jsonmodels

import (
	"encoding/json"
)

// WebSocketUID is the first message a node sends after a websocket connection was established.
type WebSocketUID struct {
	UID string `json:"uid"`
}

// WebSocketSubscription subscribes to (or unsubscribes from) a channel. Exactly one of the channel fields is set.
type WebSocketSubscription struct {
	UID         string `json:"uid"`
	Subscribe   string `json:"subscribe,omitempty"`
	Unsubscribe string `json:"unsubscribe,omitempty"`
}

// WebSocketMessage is a message that was published on a channel.
type WebSocketMessage struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// BlockHeader is the part of a new block the listener exposes.
type BlockHeader struct {
	Height          uint64 `json:"height,string"`
	Timestamp       uint64 `json:"timestamp,string"`
	SignerPublicKey string `json:"signerPublicKey"`
	Network         uint8  `json:"network"`
}

// BlockMeta carries the hash of a new block.
type BlockMeta struct {
	Hash              string `json:"hash"`
	GenerationHash    string `json:"generationHash"`
	TotalTransactions uint32 `json:"totalTransactionsCount,omitempty"`
	StatementsCount   uint32 `json:"statementsCount,omitempty"`
}

// BlockInfo is the data of a message on the block channel.
type BlockInfo struct {
	Block BlockHeader `json:"block"`
	Meta  BlockMeta   `json:"meta"`
}

// TransactionStatusError is the data of a message on the status channel.
type TransactionStatusError struct {
	Hash     string `json:"hash"`
	Code     string `json:"code"`
	Deadline uint64 `json:"deadline,string"`
}
