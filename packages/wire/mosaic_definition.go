package wire

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

const (
	// MosaicDefinitionBodyVersion is the version of the mosaic definition layout.
	MosaicDefinitionBodyVersion uint8 = 1

	// MosaicDefinitionBodySize contains the amount of bytes of a marshaled MosaicDefinitionBody.
	MosaicDefinitionBodySize = MosaicNonceDTOSize + MosaicIDDTOSize + MosaicFlagsSize + marshalutil.Uint8Size +
		BlockDurationDTOSize

	// MaxDivisibility is the largest number of decimal places a mosaic can have.
	MaxDivisibility uint8 = 6
)

// region MosaicFlags //////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicFlagsSize contains the amount of bytes of marshaled MosaicFlags.
const MosaicFlagsSize = marshalutil.Uint8Size

const (
	// MosaicFlagNone marks a mosaic without any special properties.
	MosaicFlagNone MosaicFlags = 0x00

	// MosaicFlagSupplyMutable marks a mosaic whose supply can be changed by its owner.
	MosaicFlagSupplyMutable MosaicFlags = 0x01

	// MosaicFlagTransferable marks a mosaic that can be transferred between arbitrary accounts.
	MosaicFlagTransferable MosaicFlags = 0x02

	// MosaicFlagRestrictable marks a mosaic that supports mosaic restrictions.
	MosaicFlagRestrictable MosaicFlags = 0x04

	mosaicFlagsMask = MosaicFlagSupplyMutable | MosaicFlagTransferable | MosaicFlagRestrictable
)

// MosaicFlags is the bit set of properties of a mosaic.
type MosaicFlags uint8

// Valid returns true if only known bits are set.
func (m MosaicFlags) Valid() bool {
	return m&^mosaicFlagsMask == 0
}

// Has returns true if all bits of the given flag are set.
func (m MosaicFlags) Has(flag MosaicFlags) bool {
	return m&flag == flag
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicDefinitionBody /////////////////////////////////////////////////////////////////////////////////////////

// MosaicDefinitionBody is the Body of a transaction that creates a new mosaic.
type MosaicDefinitionBody struct {
	nonce        MosaicNonceDTO
	id           MosaicIDDTO
	flags        MosaicFlags
	divisibility uint8
	duration     BlockDurationDTO
}

// NewMosaicDefinitionBody creates a new MosaicDefinitionBody.
func NewMosaicDefinitionBody(nonce MosaicNonceDTO, id MosaicIDDTO, flags MosaicFlags, divisibility uint8, duration BlockDurationDTO) (*MosaicDefinitionBody, error) {
	if err := validateMosaicProperties(flags, divisibility); err != nil {
		return nil, err
	}

	return &MosaicDefinitionBody{
		nonce:        nonce,
		id:           id,
		flags:        flags,
		divisibility: divisibility,
		duration:     duration,
	}, nil
}

// MosaicDefinitionBodyFromMarshalUtil unmarshals a MosaicDefinitionBody using a MarshalUtil (for easier unmarshaling).
func MosaicDefinitionBodyFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (body *MosaicDefinitionBody, err error) {
	body = &MosaicDefinitionBody{}
	if body.nonce, err = MosaicNonceDTOFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse nonce: %w", err)
	}
	if body.id, err = MosaicIDDTOFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse id: %w", err)
	}
	flags, err := marshalUtil.ReadUint8()
	if err != nil {
		return nil, errors.Errorf("failed to parse flags (%v): %w", err, faults.ErrLength)
	}
	body.flags = MosaicFlags(flags)
	if body.divisibility, err = marshalUtil.ReadUint8(); err != nil {
		return nil, errors.Errorf("failed to parse divisibility (%v): %w", err, faults.ErrLength)
	}
	if body.duration, err = BlockDurationDTOFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse duration: %w", err)
	}
	if err = validateMosaicProperties(body.flags, body.divisibility); err != nil {
		return nil, err
	}

	return body, nil
}

// Nonce returns the nonce the mosaic identifier was derived from.
func (m *MosaicDefinitionBody) Nonce() MosaicNonceDTO {
	return m.nonce
}

// ID returns the identifier of the mosaic.
func (m *MosaicDefinitionBody) ID() MosaicIDDTO {
	return m.id
}

// Flags returns the properties of the mosaic.
func (m *MosaicDefinitionBody) Flags() MosaicFlags {
	return m.flags
}

// Divisibility returns the number of decimal places of the mosaic.
func (m *MosaicDefinitionBody) Divisibility() uint8 {
	return m.divisibility
}

// Duration returns the number of blocks the mosaic is active for (0 means eternal).
func (m *MosaicDefinitionBody) Duration() BlockDurationDTO {
	return m.duration
}

// EntityType returns the entity type of the Body.
func (m *MosaicDefinitionBody) EntityType() EntityTypeDTO {
	return MosaicDefinitionEntityType
}

// Size returns the amount of bytes of the marshaled Body.
func (m *MosaicDefinitionBody) Size() int {
	return MosaicDefinitionBodySize
}

// Bytes returns a marshaled version of the Body.
func (m *MosaicDefinitionBody) Bytes() []byte {
	return marshalutil.New(MosaicDefinitionBodySize).
		WriteUint32(uint32(m.nonce)).
		WriteUint64(uint64(m.id)).
		WriteUint8(uint8(m.flags)).
		WriteUint8(m.divisibility).
		WriteUint64(uint64(m.duration)).
		Bytes()
}

// String returns a human readable version of the Body.
func (m *MosaicDefinitionBody) String() string {
	return stringify.Struct("MosaicDefinitionBody",
		stringify.StructField("nonce", uint32(m.nonce)),
		stringify.StructField("id", uint64(m.id)),
		stringify.StructField("flags", uint8(m.flags)),
		stringify.StructField("divisibility", m.divisibility),
		stringify.StructField("duration", uint64(m.duration)),
	)
}

// code contract (make sure the type implements all required methods)
var _ Body = &MosaicDefinitionBody{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func validateMosaicProperties(flags MosaicFlags, divisibility uint8) error {
	if !flags.Valid() {
		return errors.Errorf("unknown mosaic flags (0x%X): %w", uint8(flags), faults.ErrFormat)
	}
	if divisibility > MaxDivisibility {
		return errors.Errorf("divisibility %d exceeds %d: %w", divisibility, MaxDivisibility, faults.ErrFormat)
	}

	return nil
}
