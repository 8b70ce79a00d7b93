package catapult

import (
	"github.com/iotaledger/hive.go/stringify"
)

// TransactionInfo contains the information a node adds to a transaction once it is included in a block.
type TransactionInfo struct {
	// Height is the height of the block that contains the transaction.
	Height uint64

	// Index is the position of the transaction in its block, starting at zero.
	Index uint32

	// ID is the identifier the node's database uses for the transaction.
	ID string

	Hash                string
	MerkleComponentHash string

	// AggregateHash and AggregateID are set for transactions that are embedded in an aggregate.
	AggregateHash string
	AggregateID   string
}

// IsEmbedded returns true if the transaction was confirmed as part of an aggregate.
func (t TransactionInfo) IsEmbedded() bool {
	return t.AggregateHash != "" || t.AggregateID != ""
}

// String returns a human readable version of the TransactionInfo.
func (t TransactionInfo) String() string {
	return stringify.Struct("TransactionInfo",
		stringify.StructField("height", t.Height),
		stringify.StructField("index", t.Index),
		stringify.StructField("id", t.ID),
		stringify.StructField("hash", t.Hash),
		stringify.StructField("merkleComponentHash", t.MerkleComponentHash),
		stringify.StructField("aggregateHash", t.AggregateHash),
		stringify.StructField("aggregateId", t.AggregateID),
	)
}
