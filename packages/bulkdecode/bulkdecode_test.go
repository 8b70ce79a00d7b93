package bulkdecode

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

func TestDecoder(t *testing.T) {
	decoder, err := New(4)
	require.NoError(t, err)
	defer decoder.Release()

	alias, err := catapult.NamespaceIDFromName("alice")
	require.NoError(t, err)

	payloads := make([]string, 50)
	for i := range payloads {
		transaction, err := catapult.NewAccountAddressRestrictionTransaction(catapult.Deadline(i), catapult.AllowIncomingAddress,
			[]catapult.UnresolvedAddress{alias}, nil, catapult.TestNet)
		require.NoError(t, err)
		payloads[i] = transaction.Payload()
	}
	payloads[13] = "ZZ"

	results, err := decoder.Decode(payloads, false)
	require.NoError(t, err)
	require.Len(t, results, len(payloads))
	for i, result := range results {
		assert.Equal(t, i, result.Index)
		if i == 13 {
			assert.ErrorIs(t, result.Err, faults.ErrFormat)
			continue
		}
		require.NoError(t, result.Err)
		assert.Equal(t, catapult.Deadline(i), result.Transaction.Deadline())
	}

	_, err = Transactions(results)
	assert.ErrorIs(t, err, faults.ErrFormat)

	resolvedAddress := catapult.NewAddress(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)
	transactions, err := Transactions(append(results[:13:13], results[14:]...))
	require.NoError(t, err)

	// decoded transactions are unconfirmed
	unconfirmed, err := decoder.Resolve(transactions, catapult.NewStatement(nil, nil))
	require.NoError(t, err)
	assert.ErrorIs(t, unconfirmed[0].Err, faults.ErrState)

	confirmed := make([]catapult.Transaction, len(transactions))
	for i, transaction := range transactions {
		confirmed[i] = catapult.WithOptions(transaction, catapult.WithTransactionInfo(catapult.TransactionInfo{Height: 7, Index: uint32(i)}))
	}
	statement := catapult.NewStatement([]catapult.AddressResolutionStatement{{
		Height:     7,
		Unresolved: alias,
		Entries:    []catapult.ResolutionEntry[catapult.Address]{{Source: catapult.ReceiptSource{PrimaryID: 1}, Resolved: resolvedAddress}},
	}}, nil)

	resolved, err := decoder.Resolve(confirmed, statement)
	require.NoError(t, err)
	resolvedTransactions, err := Transactions(resolved)
	require.NoError(t, err)
	for _, transaction := range resolvedTransactions {
		additions := transaction.(*catapult.AccountAddressRestrictionTransaction).RestrictionAdditions()
		assert.Equal(t, []catapult.UnresolvedAddress{resolvedAddress}, additions)
	}
}
