package catapult

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

const testEpochAdjustment = 1615853185 * time.Second

func TestAccountAddressRestrictionTransaction_RoundTrip(t *testing.T) {
	signer := randomPublicAccount(TestNet)
	signature := randomSignature()
	alias, err := NamespaceIDFromName("alice")
	require.NoError(t, err)

	transaction, err := NewAccountAddressRestrictionTransaction(
		Deadline(1234567), AllowOutgoingAddress,
		[]UnresolvedAddress{randomAddress(TestNet), alias},
		[]UnresolvedAddress{randomAddress(TestNet)},
		TestNet,
		WithMaxFee(2000), WithSigner(signer), WithSignature(signature),
	)
	require.NoError(t, err)

	assert.Equal(t, AccountAddressRestrictionTransactionType, transaction.Type())
	assert.Equal(t, uint8(wire.AccountAddressRestrictionBodyVersion), transaction.Version())
	assert.Equal(t, wire.TransactionHeaderSize+8+3*wire.UnresolvedAddressDTOSize, transaction.Size())
	assert.Len(t, transaction.Bytes(), transaction.Size())
	assert.Equal(t, strings.ToUpper(transaction.Payload()), transaction.Payload())

	decoded, err := TransactionFromPayload(transaction.Payload(), false)
	require.NoError(t, err)
	require.IsType(t, &AccountAddressRestrictionTransaction{}, decoded)

	restriction := decoded.(*AccountAddressRestrictionTransaction)
	assert.Equal(t, transaction.Payload(), restriction.Payload())
	assert.Equal(t, AllowOutgoingAddress, restriction.RestrictionFlags())
	assert.Equal(t, transaction.RestrictionAdditions(), restriction.RestrictionAdditions())
	assert.Equal(t, transaction.RestrictionDeletions(), restriction.RestrictionDeletions())
	assert.Equal(t, uint64(2000), restriction.MaxFee())
	assert.Equal(t, Deadline(1234567), restriction.Deadline())
	assert.Equal(t, TestNet, restriction.NetworkType())
	require.NotNil(t, restriction.Signer())
	assert.True(t, signer.Equals(*restriction.Signer()))
	require.NotNil(t, restriction.Signature())
	assert.Equal(t, signature, *restriction.Signature())
	assert.Nil(t, restriction.TransactionInfo())

	typed, err := AccountAddressRestrictionTransactionFromPayload(transaction.Payload(), false)
	require.NoError(t, err)
	assert.Equal(t, transaction.Payload(), typed.Payload())

	_, err = MosaicDefinitionTransactionFromPayload(transaction.Payload(), false)
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestTransaction_AbsentSignerAndSignature(t *testing.T) {
	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(1), BlockIncomingAddress, []UnresolvedAddress{randomAddress(MainNet)}, nil, MainNet)
	require.NoError(t, err)

	assert.Nil(t, transaction.Signer())
	assert.Nil(t, transaction.Signature())

	transactionBytes := transaction.Bytes()
	assert.Equal(t, make([]byte, wire.SignatureDTOSize+wire.KeyDTOSize), transactionBytes[8:8+wire.SignatureDTOSize+wire.KeyDTOSize])

	decoded, err := TransactionFromPayload(transaction.Payload(), false)
	require.NoError(t, err)
	assert.Nil(t, decoded.Signer())
	assert.Nil(t, decoded.Signature())
	assert.Empty(t, decoded.(*AccountAddressRestrictionTransaction).RestrictionDeletions())

	_, err = transaction.EmbeddedBuilder()
	assert.ErrorIs(t, err, faults.ErrState)
}

func TestTransaction_Embedded(t *testing.T) {
	signer := randomPublicAccount(TestNet)
	transaction, err := NewMosaicDefinitionTransaction(Deadline(0), MosaicNonce(7), MosaicIDFromNonce(7, signer.Address()), wire.MosaicFlagTransferable, 2, 1000, TestNet)
	require.NoError(t, err)

	innerTransaction, err := NewInnerTransaction(transaction, signer)
	require.NoError(t, err)
	assert.True(t, signer.Equals(innerTransaction.InnerSigner()))
	assert.Nil(t, transaction.Signer())
	assert.Equal(t, wire.EmbeddedTransactionHeaderSize+wire.MosaicDefinitionBodySize, innerTransaction.EmbeddedSize())
	assert.Len(t, innerTransaction.EmbeddedBytes(), innerTransaction.EmbeddedSize())

	decoded, err := TransactionFromPayload(innerTransaction.EmbeddedPayload(), true)
	require.NoError(t, err)
	require.IsType(t, &InnerTransaction{}, decoded)
	decodedInner := decoded.(*InnerTransaction)
	assert.Equal(t, innerTransaction.EmbeddedPayload(), decodedInner.EmbeddedPayload())
	assert.True(t, signer.Equals(decodedInner.InnerSigner()))
	assert.Equal(t, MosaicDefinitionTransactionType, decodedInner.Type())

	rewrapped, err := NewInnerTransaction(decodedInner, randomPublicAccount(TestNet))
	require.NoError(t, err)
	assert.IsType(t, &MosaicDefinitionTransaction{}, rewrapped.Transaction)

	_, err = NewInnerTransaction(nil, signer)
	assert.ErrorIs(t, err, faults.ErrState)

	unsignedBytes := wire.NewEmbeddedTransactionBuilder(wire.EmbeddedTransactionHeader{Version: 1, Network: wire.TestNetworkType}, transaction.Builder().Body()).Bytes()
	_, _, err = TransactionFromBytes(unsignedBytes, true)
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestTransaction_InvalidInput(t *testing.T) {
	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(1), AddressRestrictionFlag(0x0002), nil, nil, TestNet)
	assert.ErrorIs(t, err, faults.ErrFormat)
	assert.Nil(t, transaction)

	transaction, err = NewAccountAddressRestrictionTransaction(Deadline(1), AllowIncomingAddress, []UnresolvedAddress{nil}, nil, TestNet)
	assert.ErrorIs(t, err, faults.ErrFormat)
	assert.Nil(t, transaction)

	_, err = NewAccountAddressRestrictionTransaction(Deadline(1), AllowIncomingAddress, nil, nil, NetworkType(0x01))
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = NewMosaicDefinitionTransaction(Deadline(1), MosaicNonce(1), MosaicID(namespaceFlag|1), wire.MosaicFlagNone, 0, 0, TestNet)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = TransactionFromPayload("not hex", false)
	assert.ErrorIs(t, err, faults.ErrFormat)

	valid, err := NewAccountAddressRestrictionTransaction(Deadline(1), AllowIncomingAddress, nil, nil, TestNet)
	require.NoError(t, err)

	_, err = TransactionFromPayload(valid.Payload()+"00", false)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = TransactionFromPayload(valid.Payload()[:len(valid.Payload())-2], false)
	assert.ErrorIs(t, err, faults.ErrLength)

	invalidFlags := valid.Bytes()
	invalidFlags[wire.TransactionHeaderSize] = 0x02
	_, _, err = TransactionFromBytes(invalidFlags, false)
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestTransaction_SigningBytes(t *testing.T) {
	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(99), AllowIncomingAddress, []UnresolvedAddress{randomAddress(TestNet)}, nil, TestNet, WithSignature(randomSignature()))
	require.NoError(t, err)

	generationHash := make([]byte, 32)
	generationHash[0] = 0x57

	signingBytes := transaction.SigningBytes(generationHash)
	assert.Equal(t, generationHash, signingBytes[:32])
	assert.Equal(t, transaction.Bytes()[108:], signingBytes[32:])

	unsigned := WithOptions(transaction, WithSignature(ed25519.Signature{}))
	assert.Equal(t, signingBytes, unsigned.SigningBytes(generationHash))
}

func TestTransactionHash(t *testing.T) {
	generationHash := strings.Repeat("AB", 32)
	generationHashBytes, err := hex.DecodeString(generationHash)
	require.NoError(t, err)

	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(99), AllowIncomingAddress, []UnresolvedAddress{randomAddress(TestNet)}, nil, TestNet,
		WithSigner(randomPublicAccount(TestNet)), WithSignature(randomSignature()))
	require.NoError(t, err)

	transactionBytes := transaction.Bytes()
	expected := sha3.Sum256(byteutils.ConcatBytes(transactionBytes[8:40], transactionBytes[72:104], generationHashBytes, transactionBytes[108:]))

	hash, err := TransactionHash(transaction, strings.ToLower(generationHash))
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(expected[:])), hash)

	otherHash, err := TransactionHash(transaction, strings.Repeat("CD", 32))
	require.NoError(t, err)
	assert.NotEqual(t, hash, otherHash)

	_, err = TransactionHash(transaction, "ABCD")
	assert.ErrorIs(t, err, faults.ErrFormat)

	unsigned, err := NewAccountAddressRestrictionTransaction(Deadline(99), AllowIncomingAddress, []UnresolvedAddress{randomAddress(TestNet)}, nil, TestNet)
	require.NoError(t, err)
	_, err = TransactionHash(unsigned, generationHash)
	assert.ErrorIs(t, err, faults.ErrState)
}

func TestWithOptions(t *testing.T) {
	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(5), AllowIncomingAddress, nil, nil, TestNet)
	require.NoError(t, err)

	signer := randomPublicAccount(TestNet)
	modified := WithOptions(transaction, WithMaxFee(77), WithSigner(signer))
	require.IsType(t, &AccountAddressRestrictionTransaction{}, modified)

	assert.Equal(t, uint64(77), modified.MaxFee())
	assert.True(t, signer.Equals(*modified.Signer()))
	assert.Zero(t, transaction.MaxFee())
	assert.Nil(t, transaction.Signer())

	returnedSigner := modified.Signer()
	*returnedSigner = randomPublicAccount(TestNet)
	assert.True(t, signer.Equals(*modified.Signer()))
}

func TestMosaicDefinitionTransaction(t *testing.T) {
	signer := randomPublicAccount(MijinTestNet)
	mosaicID := MosaicIDFromNonce(MosaicNonce(0xCAFE), signer.Address())

	transaction, err := NewMosaicDefinitionTransaction(Deadline(10), MosaicNonce(0xCAFE), mosaicID, wire.MosaicFlagSupplyMutable|wire.MosaicFlagTransferable, 6, 0, MijinTestNet, WithSigner(signer))
	require.NoError(t, err)
	assert.Equal(t, MosaicDefinitionTransactionType, transaction.Type())
	assert.Equal(t, wire.TransactionHeaderSize+wire.MosaicDefinitionBodySize, transaction.Size())

	decoded, err := MosaicDefinitionTransactionFromPayload(transaction.Payload(), false)
	require.NoError(t, err)
	mosaicDefinition := decoded.(*MosaicDefinitionTransaction)
	assert.Equal(t, MosaicNonce(0xCAFE), mosaicDefinition.Nonce())
	assert.Equal(t, mosaicID, mosaicDefinition.MosaicID())
	assert.True(t, mosaicDefinition.Flags().Has(wire.MosaicFlagSupplyMutable))
	assert.False(t, mosaicDefinition.Flags().Has(wire.MosaicFlagRestrictable))
	assert.Equal(t, uint8(6), mosaicDefinition.Divisibility())
	assert.Zero(t, mosaicDefinition.Duration())

	assert.True(t, mosaicDefinition.ShouldNotifyAccount(signer.Address(), nil))
	assert.False(t, mosaicDefinition.ShouldNotifyAccount(randomAddress(MijinTestNet), nil))

	_, err = NewMosaicDefinitionTransaction(Deadline(10), MosaicNonce(1), mosaicID, wire.MosaicFlagNone, 7, 0, MijinTestNet)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = mosaicDefinition.ResolveAliases(nil, NotEmbedded)
	assert.ErrorIs(t, err, faults.ErrState)

	confirmed := mosaicDefinition.WithTransactionInfo(TransactionInfo{Height: 3})
	resolved, err := confirmed.ResolveAliases(nil, NotEmbedded)
	require.NoError(t, err)
	assert.Equal(t, confirmed.Payload(), resolved.Payload())
	assert.Contains(t, resolved.String(), "MosaicDefinitionTransaction")
}

func TestDeadline(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	deadline := NewDeadline(now, DefaultDeadlineLifetime, testEpochAdjustment)
	assert.True(t, now.Add(DefaultDeadlineLifetime).Equal(deadline.Time(testEpochAdjustment)))
	assert.False(t, deadline.Expired(now, testEpochAdjustment))
	assert.True(t, deadline.Expired(now.Add(3*time.Hour), testEpochAdjustment))

	assert.Equal(t, Deadline(0), NewDeadline(time.UnixMilli(0), time.Minute, testEpochAdjustment))
}

func TestPublicAccountFromHex(t *testing.T) {
	account := randomPublicAccount(TestNet)

	restored, err := PublicAccountFromHex(strings.ToLower(account.Hex()), TestNet)
	require.NoError(t, err)
	assert.True(t, account.Equals(restored))
	assert.False(t, account.Equals(NewPublicAccount(account.PublicKey(), MainNet)))

	_, err = PublicAccountFromHex("XYZ", TestNet)
	assert.ErrorIs(t, err, faults.ErrFormat)
	_, err = PublicAccountFromHex("ABCD", TestNet)
	assert.ErrorIs(t, err, faults.ErrLength)
}

// region test utilities ///////////////////////////////////////////////////////////////////////////////////////////////

func randomPublicAccount(networkType NetworkType) PublicAccount {
	return NewPublicAccount(ed25519.GenerateKeyPair().PublicKey, networkType)
}

func randomAddress(networkType NetworkType) Address {
	return NewAddress(ed25519.GenerateKeyPair().PublicKey, networkType)
}

func randomSignature() ed25519.Signature {
	keyPair := ed25519.GenerateKeyPair()

	return keyPair.PrivateKey.Sign([]byte("catapult"))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
