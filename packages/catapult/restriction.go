package catapult

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region AddressRestrictionFlag ///////////////////////////////////////////////////////////////////////////////////////

const (
	// AllowIncomingAddress only accepts transactions from the listed addresses.
	AllowIncomingAddress AddressRestrictionFlag = 0x0001

	// AllowOutgoingAddress only allows transactions to the listed addresses.
	AllowOutgoingAddress AddressRestrictionFlag = 0x4001

	// BlockIncomingAddress rejects transactions from the listed addresses.
	BlockIncomingAddress AddressRestrictionFlag = 0x8001

	// BlockOutgoingAddress prevents transactions to the listed addresses.
	BlockOutgoingAddress AddressRestrictionFlag = 0xC001
)

// AddressRestrictionFlag is the kind of a restriction on addresses.
type AddressRestrictionFlag uint16

var addressRestrictionFlagMapping = dtomapping.NewEnumMapping(
	dtomapping.EnumPair[AddressRestrictionFlag, wire.AccountRestrictionFlags]{From: AllowIncomingAddress, To: wire.AccountRestrictionFlagAddress},
	dtomapping.EnumPair[AddressRestrictionFlag, wire.AccountRestrictionFlags]{From: AllowOutgoingAddress, To: wire.AccountRestrictionFlagAddress | wire.AccountRestrictionFlagOutgoing},
	dtomapping.EnumPair[AddressRestrictionFlag, wire.AccountRestrictionFlags]{From: BlockIncomingAddress, To: wire.AccountRestrictionFlagAddress | wire.AccountRestrictionFlagBlock},
	dtomapping.EnumPair[AddressRestrictionFlag, wire.AccountRestrictionFlags]{From: BlockOutgoingAddress, To: wire.AccountRestrictionFlagAddress | wire.AccountRestrictionFlagOutgoing | wire.AccountRestrictionFlagBlock},
)

// AddressRestrictionFlagFromDTO returns the AddressRestrictionFlag of the given wire flags.
func AddressRestrictionFlagFromDTO(flags wire.AccountRestrictionFlags) (AddressRestrictionFlag, error) {
	return addressRestrictionFlagMapping.Unmap(flags)
}

// DTO returns the wire flags of the AddressRestrictionFlag.
func (a AddressRestrictionFlag) DTO() (wire.AccountRestrictionFlags, error) {
	return addressRestrictionFlagMapping.Map(a)
}

// String returns a human readable version of the AddressRestrictionFlag.
func (a AddressRestrictionFlag) String() string {
	switch a {
	case AllowIncomingAddress:
		return "AllowIncomingAddress"
	case AllowOutgoingAddress:
		return "AllowOutgoingAddress"
	case BlockIncomingAddress:
		return "BlockIncomingAddress"
	case BlockOutgoingAddress:
		return "BlockOutgoingAddress"
	default:
		return "AddressRestrictionFlag(" + uint64Hex(uint64(a))[12:] + ")"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicRestrictionFlag ////////////////////////////////////////////////////////////////////////////////////////

const (
	// AllowMosaic only accepts transactions that contain the listed mosaics.
	AllowMosaic MosaicRestrictionFlag = 0x0002

	// BlockMosaic rejects transactions that contain the listed mosaics.
	BlockMosaic MosaicRestrictionFlag = 0x8002
)

// MosaicRestrictionFlag is the kind of a restriction on mosaics.
type MosaicRestrictionFlag uint16

var mosaicRestrictionFlagMapping = dtomapping.NewEnumMapping(
	dtomapping.EnumPair[MosaicRestrictionFlag, wire.AccountRestrictionFlags]{From: AllowMosaic, To: wire.AccountRestrictionFlagMosaicID},
	dtomapping.EnumPair[MosaicRestrictionFlag, wire.AccountRestrictionFlags]{From: BlockMosaic, To: wire.AccountRestrictionFlagMosaicID | wire.AccountRestrictionFlagBlock},
)

// MosaicRestrictionFlagFromDTO returns the MosaicRestrictionFlag of the given wire flags.
func MosaicRestrictionFlagFromDTO(flags wire.AccountRestrictionFlags) (MosaicRestrictionFlag, error) {
	return mosaicRestrictionFlagMapping.Unmap(flags)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OperationRestrictionFlag /////////////////////////////////////////////////////////////////////////////////////

const (
	// AllowOutgoingTransactionType only allows sending the listed transaction types.
	AllowOutgoingTransactionType OperationRestrictionFlag = 0x4004

	// BlockOutgoingTransactionType prevents sending the listed transaction types.
	BlockOutgoingTransactionType OperationRestrictionFlag = 0xC004
)

// OperationRestrictionFlag is the kind of a restriction on transaction types.
type OperationRestrictionFlag uint16

var operationRestrictionFlagMapping = dtomapping.NewEnumMapping(
	dtomapping.EnumPair[OperationRestrictionFlag, wire.AccountRestrictionFlags]{From: AllowOutgoingTransactionType, To: wire.AccountRestrictionFlagTransactionType | wire.AccountRestrictionFlagOutgoing},
	dtomapping.EnumPair[OperationRestrictionFlag, wire.AccountRestrictionFlags]{From: BlockOutgoingTransactionType, To: wire.AccountRestrictionFlagTransactionType | wire.AccountRestrictionFlagOutgoing | wire.AccountRestrictionFlagBlock},
)

// OperationRestrictionFlagFromDTO returns the OperationRestrictionFlag of the given wire flags.
func OperationRestrictionFlagFromDTO(flags wire.AccountRestrictionFlags) (OperationRestrictionFlag, error) {
	return operationRestrictionFlagMapping.Unmap(flags)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AccountRestrictions //////////////////////////////////////////////////////////////////////////////////////////

// AccountRestriction is one restriction of an account. Depending on the kind of the flags exactly one of the value
// lists is used.
type AccountRestriction struct {
	Flags            wire.AccountRestrictionFlags
	Addresses        []Address
	MosaicIDs        []MosaicID
	TransactionTypes []TransactionType
}

// AccountRestrictions contains all restrictions of an account.
type AccountRestrictions struct {
	Address      Address
	Restrictions []AccountRestriction
}

// String returns a human readable version of the AccountRestrictions.
func (a AccountRestrictions) String() string {
	structBuilder := stringify.StructBuilder("AccountRestrictions")
	structBuilder.AddField(stringify.StructField("address", a.Address.Plain()))
	for _, restriction := range a.Restrictions {
		structBuilder.AddField(stringify.StructField(restriction.Flags.String(), len(restriction.Addresses)+len(restriction.MosaicIDs)+len(restriction.TransactionTypes)))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
