package jsonmodels

import (
	"encoding/json"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

func TestTransactionInfo(t *testing.T) {
	alias, err := catapult.NamespaceIDFromName("alice")
	require.NoError(t, err)
	signer := catapult.NewPublicAccount(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)
	info := catapult.TransactionInfo{Height: 12, Index: 3, ID: "abc", Hash: "FF00"}

	transaction, err := catapult.NewAccountAddressRestrictionTransaction(catapult.Deadline(1000), catapult.BlockOutgoingAddress,
		[]catapult.UnresolvedAddress{alias, signer.Address()}, nil, catapult.TestNet,
		catapult.WithSigner(signer), catapult.WithMaxFee(10), catapult.WithTransactionInfo(info),
	)
	require.NoError(t, err)

	model, err := NewTransactionInfo(transaction)
	require.NoError(t, err)
	assert.Equal(t, uint16(catapult.AccountAddressRestrictionTransactionType), model.Transaction.Type)
	assert.Len(t, model.Transaction.RestrictionAdditions, 2)

	encoded, err := json.Marshal(model)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"maxFee":"10"`)
	assert.Contains(t, string(encoded), `"height":"12"`)

	decodedModel := &TransactionInfo{}
	require.NoError(t, json.Unmarshal(encoded, decodedModel))

	decoded, err := decodedModel.ToTransaction()
	require.NoError(t, err)
	assert.Equal(t, transaction.Payload(), decoded.Payload())
	assert.Equal(t, &info, decoded.TransactionInfo())

	unconfirmed, err := catapult.NewAccountAddressRestrictionTransaction(catapult.Deadline(1000), catapult.AllowIncomingAddress, nil, nil, catapult.TestNet)
	require.NoError(t, err)
	_, err = NewTransactionInfo(unconfirmed)
	assert.ErrorIs(t, err, faults.ErrState)
}

func TestTransaction_Embedded(t *testing.T) {
	signer := catapult.NewPublicAccount(ed25519.GenerateKeyPair().PublicKey, catapult.MijinTestNet)
	mosaicID := catapult.MosaicIDFromNonce(5, signer.Address())
	transaction, err := catapult.NewMosaicDefinitionTransaction(catapult.Deadline(1), 5, mosaicID, wire.MosaicFlagSupplyMutable, 3, 100, catapult.MijinTestNet)
	require.NoError(t, err)
	innerTransaction, err := catapult.NewInnerTransaction(transaction, signer)
	require.NoError(t, err)

	model, err := NewTransaction(innerTransaction)
	require.NoError(t, err)
	assert.Zero(t, model.Deadline)
	assert.Equal(t, mosaicID.Hex(), model.ID)

	decoded, err := model.ToTransaction(true)
	require.NoError(t, err)
	require.IsType(t, &catapult.InnerTransaction{}, decoded)
	assert.Equal(t, innerTransaction.EmbeddedPayload(), decoded.(*catapult.InnerTransaction).EmbeddedPayload())

	model.SignerPublicKey = ""
	_, err = model.ToTransaction(true)
	assert.ErrorIs(t, err, faults.ErrFormat)

	model.Type = 0x4141
	_, err = model.ToTransaction(false)
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestResolutionStatement(t *testing.T) {
	alias, err := catapult.NamespaceIDFromName("alice")
	require.NoError(t, err)
	address := catapult.NewAddress(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)

	addressStatement := catapult.AddressResolutionStatement{
		Height:     9,
		Unresolved: alias,
		Entries:    []catapult.ResolutionEntry[catapult.Address]{{Source: catapult.ReceiptSource{PrimaryID: 1, SecondaryID: 2}, Resolved: address}},
	}
	restoredAddressStatement, err := NewAddressResolutionStatement(addressStatement, catapult.TestNet).ToAddressResolutionStatement()
	require.NoError(t, err)
	assert.Equal(t, addressStatement, restoredAddressStatement)

	mosaicStatement := catapult.MosaicResolutionStatement{
		Height:     9,
		Unresolved: alias,
		Entries:    []catapult.ResolutionEntry[catapult.MosaicID]{{Source: catapult.ReceiptSource{PrimaryID: 4}, Resolved: catapult.MosaicID(0x1234)}},
	}
	restoredMosaicStatement, err := NewMosaicResolutionStatement(mosaicStatement).ToMosaicResolutionStatement()
	require.NoError(t, err)
	assert.Equal(t, mosaicStatement, restoredMosaicStatement)

	invalid := ResolutionStatement{Unresolved: encodeHex(address.Bytes())}
	_, err = invalid.ToAddressResolutionStatement()
	assert.ErrorIs(t, err, faults.ErrFormat)

	invalid = ResolutionStatement{Unresolved: "00"}
	_, err = invalid.ToAddressResolutionStatement()
	assert.ErrorIs(t, err, faults.ErrLength)
}

func TestAccountRestrictions(t *testing.T) {
	address := catapult.NewAddress(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)
	allowed := catapult.NewAddress(ed25519.GenerateKeyPair().PublicKey, catapult.TestNet)

	response := &AccountRestrictionsResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"accountRestrictions":{"version":1,"address":"`+encodeHex(address.Bytes())+`","restrictions":[
		{"restrictionFlags":1,"values":["`+encodeHex(allowed.Bytes())+`"]},
		{"restrictionFlags":32770,"values":["00000000000004D2"]},
		{"restrictionFlags":16388,"values":[16717]}
	]}}`), response))

	restrictions, err := response.AccountRestrictions.ToAccountRestrictions()
	require.NoError(t, err)
	assert.Equal(t, address, restrictions.Address)
	require.Len(t, restrictions.Restrictions, 3)
	assert.Equal(t, []catapult.Address{allowed}, restrictions.Restrictions[0].Addresses)
	assert.Equal(t, []catapult.MosaicID{1234}, restrictions.Restrictions[1].MosaicIDs)
	assert.Equal(t, []catapult.TransactionType{catapult.MosaicDefinitionTransactionType}, restrictions.Restrictions[2].TransactionTypes)

	response.AccountRestrictions.Restrictions[0].RestrictionFlags = 0x0008
	_, err = response.AccountRestrictions.ToAccountRestrictions()
	assert.ErrorIs(t, err, faults.ErrFormat)
}
