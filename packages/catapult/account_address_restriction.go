package catapult

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/iotaledger/hive.go/typeutils"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// AccountAddressRestrictionTransaction adds addresses to or removes addresses from an address restriction of the
// signing account.
type AccountAddressRestrictionTransaction struct {
	transactionBase

	restrictionFlags     AddressRestrictionFlag
	restrictionAdditions []UnresolvedAddress
	restrictionDeletions []UnresolvedAddress
}

// NewAccountAddressRestrictionTransaction creates a new AccountAddressRestrictionTransaction.
func NewAccountAddressRestrictionTransaction(deadline Deadline, restrictionFlags AddressRestrictionFlag, additions, deletions []UnresolvedAddress, networkType NetworkType, options ...Option) (*AccountAddressRestrictionTransaction, error) {
	essence, err := newEssence(networkType, wire.AccountAddressRestrictionBodyVersion, deadline, options...)
	if err != nil {
		return nil, err
	}

	return newAccountAddressRestrictionTransaction(essence, restrictionFlags, additions, deletions)
}

// AccountAddressRestrictionTransactionFromPayload parses an AccountAddressRestrictionTransaction from its hex encoded
// binary envelope. Embedded payloads are returned as *InnerTransaction.
func AccountAddressRestrictionTransactionFromPayload(payload string, embedded bool) (Transaction, error) {
	transaction, err := TransactionFromPayload(payload, embedded)
	if err != nil {
		return nil, err
	}
	if transaction.Type() != AccountAddressRestrictionTransactionType {
		return nil, errors.Errorf("payload contains a %s transaction: %w", transaction.Type(), faults.ErrFormat)
	}

	return transaction, nil
}

func newAccountAddressRestrictionTransaction(essence transactionEssence, restrictionFlags AddressRestrictionFlag, additions, deletions []UnresolvedAddress) (*AccountAddressRestrictionTransaction, error) {
	flagsDTO, err := restrictionFlags.DTO()
	if err != nil {
		return nil, errors.Errorf("invalid restriction flags: %w", err)
	}

	additionDTOs, err := unresolvedAddressDTOs(additions, essence.networkType)
	if err != nil {
		return nil, errors.Errorf("invalid restriction additions: %w", err)
	}
	deletionDTOs, err := unresolvedAddressDTOs(deletions, essence.networkType)
	if err != nil {
		return nil, errors.Errorf("invalid restriction deletions: %w", err)
	}

	body, err := wire.NewAccountAddressRestrictionBody(flagsDTO, additionDTOs, deletionDTOs)
	if err != nil {
		return nil, err
	}

	return &AccountAddressRestrictionTransaction{
		transactionBase:      transactionBase{essence: essence, body: body},
		restrictionFlags:     restrictionFlags,
		restrictionAdditions: copyUnresolvedAddresses(additions),
		restrictionDeletions: copyUnresolvedAddresses(deletions),
	}, nil
}

func accountAddressRestrictionTransactionFromBody(essence transactionEssence, body *wire.AccountAddressRestrictionBody) (*AccountAddressRestrictionTransaction, error) {
	restrictionFlags, err := AddressRestrictionFlagFromDTO(body.RestrictionFlags())
	if err != nil {
		return nil, err
	}

	additions, err := unresolvedAddressesFromDTOs(body.RestrictionAdditions())
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction additions: %w", err)
	}
	deletions, err := unresolvedAddressesFromDTOs(body.RestrictionDeletions())
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction deletions: %w", err)
	}

	return &AccountAddressRestrictionTransaction{
		transactionBase:      transactionBase{essence: essence, body: body},
		restrictionFlags:     restrictionFlags,
		restrictionAdditions: additions,
		restrictionDeletions: deletions,
	}, nil
}

// RestrictionFlags returns the kind of address restriction that is modified.
func (a *AccountAddressRestrictionTransaction) RestrictionFlags() AddressRestrictionFlag {
	return a.restrictionFlags
}

// RestrictionAdditions returns the addresses that are added to the restriction.
func (a *AccountAddressRestrictionTransaction) RestrictionAdditions() []UnresolvedAddress {
	return copyUnresolvedAddresses(a.restrictionAdditions)
}

// RestrictionDeletions returns the addresses that are removed from the restriction.
func (a *AccountAddressRestrictionTransaction) RestrictionDeletions() []UnresolvedAddress {
	return copyUnresolvedAddresses(a.restrictionDeletions)
}

// WithRestrictions returns a copy of the transaction with the given additions and deletions.
func (a *AccountAddressRestrictionTransaction) WithRestrictions(additions, deletions []UnresolvedAddress) (*AccountAddressRestrictionTransaction, error) {
	return newAccountAddressRestrictionTransaction(a.essence, a.restrictionFlags, additions, deletions)
}

// WithTransactionInfo returns a copy of the transaction that is marked as confirmed with the given info.
func (a *AccountAddressRestrictionTransaction) WithTransactionInfo(info TransactionInfo) *AccountAddressRestrictionTransaction {
	return a.withEssence(withInfo(a.essence, info)).(*AccountAddressRestrictionTransaction)
}

// ResolveAliases returns a copy of the transaction where every namespace alias in the additions and deletions is
// replaced by the Address it resolved to.
func (a *AccountAddressRestrictionTransaction) ResolveAliases(statement *Statement, aggregateIndex int) (Transaction, error) {
	height, source, err := a.resolutionSource(aggregateIndex)
	if err != nil {
		return nil, err
	}

	additions, err := resolveAddresses(statement, a.restrictionAdditions, height, source)
	if err != nil {
		return nil, errors.Errorf("failed to resolve restriction additions: %w", err)
	}
	deletions, err := resolveAddresses(statement, a.restrictionDeletions, height, source)
	if err != nil {
		return nil, errors.Errorf("failed to resolve restriction deletions: %w", err)
	}

	return a.WithRestrictions(additions, deletions)
}

// ShouldNotifyAccount returns true if the address signs the transaction or is part of the additions or deletions
// (either directly or through one of the given aliases).
func (a *AccountAddressRestrictionTransaction) ShouldNotifyAccount(address Address, aliases []NamespaceID) bool {
	if a.signedBy(address) {
		return true
	}

	for _, modifications := range [][]UnresolvedAddress{a.restrictionAdditions, a.restrictionDeletions} {
		for _, unresolved := range modifications {
			if matchesAccount(unresolved, address, aliases) {
				return true
			}
		}
	}

	return false
}

// String returns a human readable version of the transaction.
func (a *AccountAddressRestrictionTransaction) String() string {
	structBuilder := stringify.StructBuilder("AccountAddressRestrictionTransaction")
	a.eachStringField(func(name string, value interface{}) {
		structBuilder.AddField(stringify.StructField(name, value))
	})
	structBuilder.AddField(stringify.StructField("restrictionFlags", a.restrictionFlags.String()))
	structBuilder.AddField(stringify.StructField("restrictionAdditions", a.restrictionAdditions))
	structBuilder.AddField(stringify.StructField("restrictionDeletions", a.restrictionDeletions))

	return structBuilder.String()
}

func (a *AccountAddressRestrictionTransaction) withEssence(essence transactionEssence) Transaction {
	return &AccountAddressRestrictionTransaction{
		transactionBase:      transactionBase{essence: essence, body: a.body},
		restrictionFlags:     a.restrictionFlags,
		restrictionAdditions: a.restrictionAdditions,
		restrictionDeletions: a.restrictionDeletions,
	}
}

// code contract (make sure the type implements all required methods)
var _ Transaction = &AccountAddressRestrictionTransaction{}

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func unresolvedAddressDTOs(unresolvedAddresses []UnresolvedAddress, networkType NetworkType) ([]wire.UnresolvedAddressDTO, error) {
	dtos := make([]wire.UnresolvedAddressDTO, len(unresolvedAddresses))
	for i, unresolved := range unresolvedAddresses {
		if typeutils.IsInterfaceNil(unresolved) {
			return nil, errors.Errorf("address %d is nil: %w", i, faults.ErrFormat)
		}
		dtos[i] = unresolved.UnresolvedAddressDTO(networkType)
	}

	return dtos, nil
}

func unresolvedAddressesFromDTOs(dtos []wire.UnresolvedAddressDTO) ([]UnresolvedAddress, error) {
	unresolvedAddresses := make([]UnresolvedAddress, len(dtos))
	for i, dto := range dtos {
		unresolved, err := UnresolvedAddressFromDTO(dto)
		if err != nil {
			return nil, errors.Errorf("failed to parse address %d: %w", i, err)
		}
		unresolvedAddresses[i] = unresolved
	}

	return unresolvedAddresses, nil
}

func copyUnresolvedAddresses(unresolvedAddresses []UnresolvedAddress) []UnresolvedAddress {
	copied := make([]UnresolvedAddress, len(unresolvedAddresses))
	copy(copied, unresolvedAddresses)

	return copied
}

func matchesAccount(unresolved UnresolvedAddress, address Address, aliases []NamespaceID) bool {
	switch typedUnresolved := unresolved.(type) {
	case Address:
		return typedUnresolved.Equals(address)
	case NamespaceID:
		for _, alias := range aliases {
			if alias == typedUnresolved {
				return true
			}
		}
	}

	return false
}

func withInfo(essence transactionEssence, info TransactionInfo) transactionEssence {
	WithTransactionInfo(info)(&essence)

	return essence
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
