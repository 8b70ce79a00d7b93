package wire

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// region AccountRestrictionFlags //////////////////////////////////////////////////////////////////////////////////////

// AccountRestrictionFlagsSize contains the amount of bytes of marshaled AccountRestrictionFlags.
const AccountRestrictionFlagsSize = marshalutil.Uint16Size

const (
	// AccountRestrictionFlagAddress marks a restriction on addresses.
	AccountRestrictionFlagAddress AccountRestrictionFlags = 0x0001

	// AccountRestrictionFlagMosaicID marks a restriction on mosaic identifiers.
	AccountRestrictionFlagMosaicID AccountRestrictionFlags = 0x0002

	// AccountRestrictionFlagTransactionType marks a restriction on transaction types.
	AccountRestrictionFlagTransactionType AccountRestrictionFlags = 0x0004

	// AccountRestrictionFlagOutgoing marks a restriction that applies to outgoing transactions.
	AccountRestrictionFlagOutgoing AccountRestrictionFlags = 0x4000

	// AccountRestrictionFlagBlock marks a restriction that blocks (instead of allows) the listed values.
	AccountRestrictionFlagBlock AccountRestrictionFlags = 0x8000
)

// AccountRestrictionFlags is the bit set that describes the kind of an account restriction.
type AccountRestrictionFlags uint16

// AccountRestrictionFlagsFromMarshalUtil unmarshals AccountRestrictionFlags using a MarshalUtil (for easier
// unmarshaling).
func AccountRestrictionFlagsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (flags AccountRestrictionFlags, err error) {
	value, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse AccountRestrictionFlags (%v): %w", err, faults.ErrLength)
		return
	}

	return AccountRestrictionFlags(value), nil
}

// IsAddressRestriction returns true if the flags describe one of the four kinds of address restrictions.
func (a AccountRestrictionFlags) IsAddressRestriction() bool {
	return a&^(AccountRestrictionFlagOutgoing|AccountRestrictionFlagBlock) == AccountRestrictionFlagAddress
}

// Bytes returns a marshaled version of the AccountRestrictionFlags.
func (a AccountRestrictionFlags) Bytes() []byte {
	return marshalutil.New(AccountRestrictionFlagsSize).WriteUint16(uint16(a)).Bytes()
}

// String returns a human readable version of the AccountRestrictionFlags.
func (a AccountRestrictionFlags) String() string {
	return "AccountRestrictionFlags(0x" + strconv.FormatUint(uint64(a), 16) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AccountAddressRestrictionBody ////////////////////////////////////////////////////////////////////////////////

// AccountAddressRestrictionBodyVersion is the version of the account address restriction layout.
const AccountAddressRestrictionBodyVersion uint8 = 1

// AccountAddressRestrictionBody is the Body of a transaction that adds addresses to or removes addresses from the
// address restrictions of an account.
type AccountAddressRestrictionBody struct {
	restrictionFlags     AccountRestrictionFlags
	restrictionAdditions []UnresolvedAddressDTO
	restrictionDeletions []UnresolvedAddressDTO
}

// NewAccountAddressRestrictionBody creates a new AccountAddressRestrictionBody.
func NewAccountAddressRestrictionBody(flags AccountRestrictionFlags, additions, deletions []UnresolvedAddressDTO) (*AccountAddressRestrictionBody, error) {
	if !flags.IsAddressRestriction() {
		return nil, errors.Errorf("%s is not an address restriction: %w", flags, faults.ErrFormat)
	}
	if len(additions) > math.MaxUint8 || len(deletions) > math.MaxUint8 {
		return nil, errors.Errorf("too many restriction modifications (%d additions, %d deletions): %w", len(additions), len(deletions), faults.ErrFormat)
	}

	return &AccountAddressRestrictionBody{
		restrictionFlags:     flags,
		restrictionAdditions: copyAddresses(additions),
		restrictionDeletions: copyAddresses(deletions),
	}, nil
}

// AccountAddressRestrictionBodyFromBytes unmarshals an AccountAddressRestrictionBody from a sequence of bytes.
func AccountAddressRestrictionBodyFromBytes(bytes []byte) (body *AccountAddressRestrictionBody, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if body, err = AccountAddressRestrictionBodyFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AccountAddressRestrictionBody from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AccountAddressRestrictionBodyFromMarshalUtil unmarshals an AccountAddressRestrictionBody using a MarshalUtil (for
// easier unmarshaling).
func AccountAddressRestrictionBodyFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (*AccountAddressRestrictionBody, error) {
	flags, err := AccountRestrictionFlagsFromMarshalUtil(marshalUtil)
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction flags: %w", err)
	}
	if !flags.IsAddressRestriction() {
		return nil, errors.Errorf("%s is not an address restriction: %w", flags, faults.ErrFormat)
	}
	additionsCount, err := marshalUtil.ReadUint8()
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction additions count (%v): %w", err, faults.ErrLength)
	}
	deletionsCount, err := marshalUtil.ReadUint8()
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction deletions count (%v): %w", err, faults.ErrLength)
	}
	if err = readReserved(marshalUtil, "account restriction transaction body"); err != nil {
		return nil, err
	}

	additions, err := unresolvedAddressesFromMarshalUtil(marshalUtil, int(additionsCount))
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction additions: %w", err)
	}
	deletions, err := unresolvedAddressesFromMarshalUtil(marshalUtil, int(deletionsCount))
	if err != nil {
		return nil, errors.Errorf("failed to parse restriction deletions: %w", err)
	}

	return &AccountAddressRestrictionBody{
		restrictionFlags:     flags,
		restrictionAdditions: additions,
		restrictionDeletions: deletions,
	}, nil
}

// RestrictionFlags returns the kind of address restriction that is modified.
func (a *AccountAddressRestrictionBody) RestrictionFlags() AccountRestrictionFlags {
	return a.restrictionFlags
}

// RestrictionAdditions returns the addresses that are added to the restriction.
func (a *AccountAddressRestrictionBody) RestrictionAdditions() []UnresolvedAddressDTO {
	return copyAddresses(a.restrictionAdditions)
}

// RestrictionDeletions returns the addresses that are removed from the restriction.
func (a *AccountAddressRestrictionBody) RestrictionDeletions() []UnresolvedAddressDTO {
	return copyAddresses(a.restrictionDeletions)
}

// EntityType returns the entity type of the Body.
func (a *AccountAddressRestrictionBody) EntityType() EntityTypeDTO {
	return AccountAddressRestrictionEntityType
}

// Size returns the amount of bytes of the marshaled Body.
func (a *AccountAddressRestrictionBody) Size() int {
	return AccountRestrictionFlagsSize + 2*marshalutil.Uint8Size + marshalutil.Uint32Size +
		(len(a.restrictionAdditions)+len(a.restrictionDeletions))*UnresolvedAddressDTOSize
}

// Bytes returns a marshaled version of the Body.
func (a *AccountAddressRestrictionBody) Bytes() []byte {
	marshalUtil := marshalutil.New(a.Size()).
		WriteUint16(uint16(a.restrictionFlags)).
		WriteUint8(uint8(len(a.restrictionAdditions))).
		WriteUint8(uint8(len(a.restrictionDeletions))).
		WriteUint32(0)
	for _, address := range a.restrictionAdditions {
		marshalUtil.WriteBytes(address.Bytes())
	}
	for _, address := range a.restrictionDeletions {
		marshalUtil.WriteBytes(address.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Body.
func (a *AccountAddressRestrictionBody) String() string {
	return stringify.Struct("AccountAddressRestrictionBody",
		stringify.StructField("restrictionFlags", a.restrictionFlags),
		stringify.StructField("restrictionAdditions", len(a.restrictionAdditions)),
		stringify.StructField("restrictionDeletions", len(a.restrictionDeletions)),
	)
}

// code contract (make sure the type implements all required methods)
var _ Body = &AccountAddressRestrictionBody{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func unresolvedAddressesFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil, count int) ([]UnresolvedAddressDTO, error) {
	addresses := make([]UnresolvedAddressDTO, count)
	for i := range addresses {
		address, err := UnresolvedAddressDTOFromMarshalUtil(marshalUtil)
		if err != nil {
			return nil, errors.Errorf("failed to parse address %d: %w", i, err)
		}
		addresses[i] = address
	}

	return addresses, nil
}

func copyAddresses(addresses []UnresolvedAddressDTO) []UnresolvedAddressDTO {
	copied := make([]UnresolvedAddressDTO, len(addresses))
	copy(copied, addresses)

	return copied
}
