package catapult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

func TestResolutionStatement_EntryFor(t *testing.T) {
	statement := AddressResolutionStatement{
		Height: 10,
		Entries: []ResolutionEntry[Address]{
			{Source: ReceiptSource{PrimaryID: 1, SecondaryID: 0}, Resolved: randomAddress(TestNet)},
			{Source: ReceiptSource{PrimaryID: 3, SecondaryID: 1}, Resolved: randomAddress(TestNet)},
			{Source: ReceiptSource{PrimaryID: 3, SecondaryID: 4}, Resolved: randomAddress(TestNet)},
			{Source: ReceiptSource{PrimaryID: 5, SecondaryID: 0}, Resolved: randomAddress(TestNet)},
		},
	}

	for _, testCase := range []struct {
		source        ReceiptSource
		expectedEntry int
	}{
		{source: ReceiptSource{PrimaryID: 1, SecondaryID: 0}, expectedEntry: 0},
		{source: ReceiptSource{PrimaryID: 2, SecondaryID: 0}, expectedEntry: 0},
		{source: ReceiptSource{PrimaryID: 2, SecondaryID: 7}, expectedEntry: 0},
		{source: ReceiptSource{PrimaryID: 3, SecondaryID: 0}, expectedEntry: 0},
		{source: ReceiptSource{PrimaryID: 3, SecondaryID: 1}, expectedEntry: 1},
		{source: ReceiptSource{PrimaryID: 3, SecondaryID: 3}, expectedEntry: 1},
		{source: ReceiptSource{PrimaryID: 3, SecondaryID: 9}, expectedEntry: 2},
		{source: ReceiptSource{PrimaryID: 4, SecondaryID: 1}, expectedEntry: 2},
		{source: ReceiptSource{PrimaryID: 9, SecondaryID: 0}, expectedEntry: 3},
	} {
		entry, found := statement.EntryFor(testCase.source)
		require.True(t, found, testCase.source)
		assert.Equal(t, statement.Entries[testCase.expectedEntry], entry, testCase.source)
	}

	_, found := statement.EntryFor(ReceiptSource{PrimaryID: 0, SecondaryID: 0})
	assert.False(t, found)

	aggregateOnly := AddressResolutionStatement{Entries: []ResolutionEntry[Address]{
		{Source: ReceiptSource{PrimaryID: 2, SecondaryID: 2}},
		{Source: ReceiptSource{PrimaryID: 2, SecondaryID: 3}},
	}}
	_, found = aggregateOnly.EntryFor(ReceiptSource{PrimaryID: 2, SecondaryID: 1})
	assert.False(t, found)

	laterAggregate := AddressResolutionStatement{Entries: []ResolutionEntry[Address]{
		{Source: ReceiptSource{PrimaryID: 1, SecondaryID: 0}},
		{Source: ReceiptSource{PrimaryID: 2, SecondaryID: 0}},
		{Source: ReceiptSource{PrimaryID: 5, SecondaryID: 6}},
	}}
	entry, found := laterAggregate.EntryFor(ReceiptSource{PrimaryID: 5, SecondaryID: 3})
	require.True(t, found)
	assert.Equal(t, ReceiptSource{PrimaryID: 2, SecondaryID: 0}, entry.Source)

	entry, found = laterAggregate.EntryFor(ReceiptSource{PrimaryID: 5, SecondaryID: 6})
	require.True(t, found)
	assert.Equal(t, ReceiptSource{PrimaryID: 5, SecondaryID: 6}, entry.Source)
}

func TestReceiptSource_Compare(t *testing.T) {
	assert.Equal(t, 0, ReceiptSource{1, 2}.Compare(ReceiptSource{1, 2}))
	assert.Equal(t, -1, ReceiptSource{1, 2}.Compare(ReceiptSource{2, 0}))
	assert.Equal(t, 1, ReceiptSource{1, 3}.Compare(ReceiptSource{1, 2}))
}

func TestStatement_Resolve(t *testing.T) {
	alias, err := NamespaceIDFromName("bob")
	require.NoError(t, err)
	mosaicAlias, err := NamespaceIDFromName("cat.currency")
	require.NoError(t, err)

	resolvedAddress := randomAddress(TestNet)
	statement := NewStatement(
		[]AddressResolutionStatement{{
			Height:     42,
			Unresolved: alias,
			Entries:    []ResolutionEntry[Address]{{Source: ReceiptSource{PrimaryID: 9}, Resolved: resolvedAddress}},
		}},
		[]MosaicResolutionStatement{{
			Height:     42,
			Unresolved: mosaicAlias,
			Entries: []ResolutionEntry[MosaicID]{
				{Source: ReceiptSource{PrimaryID: 1}, Resolved: MosaicID(0x1111)},
				{Source: ReceiptSource{PrimaryID: 2}, Resolved: MosaicID(0x2222)},
			},
		}},
	)

	address, err := statement.ResolveAddress(alias, 42, ReceiptSource{PrimaryID: 1})
	require.NoError(t, err)
	assert.Equal(t, resolvedAddress, address)

	concreteAddress := randomAddress(TestNet)
	address, err = statement.ResolveAddress(concreteAddress, 1, ReceiptSource{})
	require.NoError(t, err)
	assert.Equal(t, concreteAddress, address)

	_, err = statement.ResolveAddress(alias, 43, ReceiptSource{PrimaryID: 1})
	assert.ErrorIs(t, err, faults.ErrNotFound)

	mosaicID, err := statement.ResolveMosaicID(mosaicAlias, 42, ReceiptSource{PrimaryID: 5})
	require.NoError(t, err)
	assert.Equal(t, MosaicID(0x2222), mosaicID)

	mosaicID, err = statement.ResolveMosaicID(MosaicID(0x3333), 42, ReceiptSource{})
	require.NoError(t, err)
	assert.Equal(t, MosaicID(0x3333), mosaicID)

	_, err = statement.ResolveMosaicID(mosaicAlias, 42, ReceiptSource{PrimaryID: 0})
	assert.ErrorIs(t, err, faults.ErrNotFound)

	var missingStatement *Statement
	_, err = missingStatement.ResolveAddress(alias, 42, ReceiptSource{PrimaryID: 1})
	assert.ErrorIs(t, err, faults.ErrNotFound)
}

func TestAccountAddressRestrictionTransaction_ResolveAliases(t *testing.T) {
	alias, err := NamespaceIDFromName("alice")
	require.NoError(t, err)
	otherAlias, err := NamespaceIDFromName("carol")
	require.NoError(t, err)

	concreteAddress := randomAddress(TestNet)
	aliceAddress := randomAddress(TestNet)
	carolAddress := randomAddress(TestNet)

	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(1), AllowIncomingAddress,
		[]UnresolvedAddress{concreteAddress, alias},
		[]UnresolvedAddress{otherAlias},
		TestNet,
	)
	require.NoError(t, err)

	_, err = transaction.ResolveAliases(NewStatement(nil, nil), NotEmbedded)
	assert.ErrorIs(t, err, faults.ErrState)

	confirmed := transaction.WithTransactionInfo(TransactionInfo{Height: 100, Index: 2})
	statement := NewStatement([]AddressResolutionStatement{
		{Height: 100, Unresolved: alias, Entries: []ResolutionEntry[Address]{{Source: ReceiptSource{PrimaryID: 3}, Resolved: aliceAddress}}},
		{Height: 100, Unresolved: otherAlias, Entries: []ResolutionEntry[Address]{
			{Source: ReceiptSource{PrimaryID: 1}, Resolved: randomAddress(TestNet)},
			{Source: ReceiptSource{PrimaryID: 3, SecondaryID: 1}, Resolved: carolAddress},
			{Source: ReceiptSource{PrimaryID: 3, SecondaryID: 2}, Resolved: randomAddress(TestNet)},
		}},
	}, nil)

	resolved, err := confirmed.ResolveAliases(statement, 0)
	require.NoError(t, err)
	resolvedRestriction := resolved.(*AccountAddressRestrictionTransaction)
	assert.Equal(t, []UnresolvedAddress{concreteAddress, aliceAddress}, resolvedRestriction.RestrictionAdditions())
	assert.Equal(t, []UnresolvedAddress{carolAddress}, resolvedRestriction.RestrictionDeletions())
	assert.Equal(t, confirmed.TransactionInfo(), resolvedRestriction.TransactionInfo())

	assert.Equal(t, []UnresolvedAddress{concreteAddress, alias}, confirmed.RestrictionAdditions())

	earlierAddress := randomAddress(TestNet)
	laterInAggregate := NewStatement([]AddressResolutionStatement{
		{Height: 10, Unresolved: alias, Entries: []ResolutionEntry[Address]{
			{Source: ReceiptSource{PrimaryID: 1}, Resolved: earlierAddress},
			{Source: ReceiptSource{PrimaryID: 5, SecondaryID: 6}, Resolved: randomAddress(TestNet)},
		}},
		{Height: 10, Unresolved: otherAlias, Entries: []ResolutionEntry[Address]{{Source: ReceiptSource{PrimaryID: 1}, Resolved: carolAddress}}},
	}, nil)
	resolvedEarlier, err := transaction.WithTransactionInfo(TransactionInfo{Height: 10, Index: 4}).ResolveAliases(laterInAggregate, 2)
	require.NoError(t, err)
	assert.Equal(t, []UnresolvedAddress{concreteAddress, earlierAddress}, resolvedEarlier.(*AccountAddressRestrictionTransaction).RestrictionAdditions())

	resolvedAgain, err := resolved.ResolveAliases(NewStatement(nil, nil), 0)
	require.NoError(t, err)
	assert.Equal(t, resolved.Payload(), resolvedAgain.Payload())

	_, err = confirmed.ResolveAliases(NewStatement(nil, nil), NotEmbedded)
	assert.ErrorIs(t, err, faults.ErrNotFound)

	signer := randomPublicAccount(TestNet)
	innerTransaction, err := NewInnerTransaction(confirmed, signer)
	require.NoError(t, err)
	resolvedInner, err := innerTransaction.ResolveAliases(statement, 0)
	require.NoError(t, err)
	require.IsType(t, &InnerTransaction{}, resolvedInner)
	assert.Equal(t, resolved.(*AccountAddressRestrictionTransaction).RestrictionDeletions(), resolvedInner.(*InnerTransaction).Transaction.(*AccountAddressRestrictionTransaction).RestrictionDeletions())
}

func TestAccountAddressRestrictionTransaction_ShouldNotifyAccount(t *testing.T) {
	alias, err := NamespaceIDFromName("alice")
	require.NoError(t, err)

	signer := randomPublicAccount(TestNet)
	deletedAddress := randomAddress(TestNet)
	transaction, err := NewAccountAddressRestrictionTransaction(Deadline(1), BlockOutgoingAddress,
		[]UnresolvedAddress{alias},
		[]UnresolvedAddress{deletedAddress},
		TestNet, WithSigner(signer),
	)
	require.NoError(t, err)

	assert.True(t, transaction.ShouldNotifyAccount(signer.Address(), nil))
	assert.True(t, transaction.ShouldNotifyAccount(deletedAddress, nil))

	aliasOwner := randomAddress(TestNet)
	assert.False(t, transaction.ShouldNotifyAccount(aliasOwner, nil))
	assert.True(t, transaction.ShouldNotifyAccount(aliasOwner, []NamespaceID{alias}))
}

func TestRestrictionFlags(t *testing.T) {
	for _, flag := range []AddressRestrictionFlag{AllowIncomingAddress, AllowOutgoingAddress, BlockIncomingAddress, BlockOutgoingAddress} {
		dto, err := flag.DTO()
		require.NoError(t, err)
		assert.True(t, dto.IsAddressRestriction())
		assert.Equal(t, uint16(flag), uint16(dto))

		restored, err := AddressRestrictionFlagFromDTO(dto)
		require.NoError(t, err)
		assert.Equal(t, flag, restored)
	}

	mosaicFlag, err := MosaicRestrictionFlagFromDTO(0x8002)
	require.NoError(t, err)
	assert.Equal(t, BlockMosaic, mosaicFlag)

	operationFlag, err := OperationRestrictionFlagFromDTO(0x4004)
	require.NoError(t, err)
	assert.Equal(t, AllowOutgoingTransactionType, operationFlag)

	_, err = AddressRestrictionFlagFromDTO(0x0002)
	assert.ErrorIs(t, err, faults.ErrFormat)
	assert.Contains(t, AddressRestrictionFlag(0x0002).String(), "0002")
}
