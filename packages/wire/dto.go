package wire

import (
	"encoding/hex"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// region AmountDTO ////////////////////////////////////////////////////////////////////////////////////////////////////

// AmountDTOSize contains the amount of bytes of a marshaled AmountDTO.
const AmountDTOSize = marshalutil.Uint64Size

// AmountDTO is the binary representation of an amount of a mosaic (e.g. the max fee of a transaction).
type AmountDTO uint64

// AmountDTOFromBytes unmarshals an AmountDTO from a sequence of bytes.
func AmountDTOFromBytes(bytes []byte) (amount AmountDTO, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if amount, err = AmountDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AmountDTO from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AmountDTOFromMarshalUtil unmarshals an AmountDTO using a MarshalUtil (for easier unmarshaling).
func AmountDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (amount AmountDTO, err error) {
	value, err := readUint64(marshalUtil, "AmountDTO")
	if err != nil {
		return
	}

	return AmountDTO(value), nil
}

// Bytes returns a marshaled version of the AmountDTO.
func (a AmountDTO) Bytes() []byte {
	return marshalutil.New(AmountDTOSize).WriteUint64(uint64(a)).Bytes()
}

// String returns a human readable version of the AmountDTO.
func (a AmountDTO) String() string {
	return "AmountDTO(" + strconv.FormatUint(uint64(a), 10) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TimestampDTO /////////////////////////////////////////////////////////////////////////////////////////////////

// TimestampDTOSize contains the amount of bytes of a marshaled TimestampDTO.
const TimestampDTOSize = marshalutil.Uint64Size

// TimestampDTO is the binary representation of a point in time, in milliseconds since the network epoch.
type TimestampDTO uint64

// TimestampDTOFromBytes unmarshals a TimestampDTO from a sequence of bytes.
func TimestampDTOFromBytes(bytes []byte) (timestamp TimestampDTO, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if timestamp, err = TimestampDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TimestampDTO from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TimestampDTOFromMarshalUtil unmarshals a TimestampDTO using a MarshalUtil (for easier unmarshaling).
func TimestampDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (timestamp TimestampDTO, err error) {
	value, err := readUint64(marshalUtil, "TimestampDTO")
	if err != nil {
		return
	}

	return TimestampDTO(value), nil
}

// Bytes returns a marshaled version of the TimestampDTO.
func (t TimestampDTO) Bytes() []byte {
	return marshalutil.New(TimestampDTOSize).WriteUint64(uint64(t)).Bytes()
}

// String returns a human readable version of the TimestampDTO.
func (t TimestampDTO) String() string {
	return "TimestampDTO(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BlockDurationDTO /////////////////////////////////////////////////////////////////////////////////////////////

// BlockDurationDTOSize contains the amount of bytes of a marshaled BlockDurationDTO.
const BlockDurationDTOSize = marshalutil.Uint64Size

// BlockDurationDTO is the binary representation of a duration measured in blocks.
type BlockDurationDTO uint64

// BlockDurationDTOFromMarshalUtil unmarshals a BlockDurationDTO using a MarshalUtil (for easier unmarshaling).
func BlockDurationDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (duration BlockDurationDTO, err error) {
	value, err := readUint64(marshalUtil, "BlockDurationDTO")
	if err != nil {
		return
	}

	return BlockDurationDTO(value), nil
}

// Bytes returns a marshaled version of the BlockDurationDTO.
func (b BlockDurationDTO) Bytes() []byte {
	return marshalutil.New(BlockDurationDTOSize).WriteUint64(uint64(b)).Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicIDDTO //////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicIDDTOSize contains the amount of bytes of a marshaled MosaicIDDTO.
const MosaicIDDTOSize = marshalutil.Uint64Size

// MosaicIDDTO is the binary representation of a mosaic identifier.
type MosaicIDDTO uint64

// MosaicIDDTOFromMarshalUtil unmarshals a MosaicIDDTO using a MarshalUtil (for easier unmarshaling).
func MosaicIDDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (mosaicID MosaicIDDTO, err error) {
	value, err := readUint64(marshalUtil, "MosaicIDDTO")
	if err != nil {
		return
	}

	return MosaicIDDTO(value), nil
}

// Bytes returns a marshaled version of the MosaicIDDTO.
func (m MosaicIDDTO) Bytes() []byte {
	return marshalutil.New(MosaicIDDTOSize).WriteUint64(uint64(m)).Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicNonceDTO ///////////////////////////////////////////////////////////////////////////////////////////////

// MosaicNonceDTOSize contains the amount of bytes of a marshaled MosaicNonceDTO.
const MosaicNonceDTOSize = marshalutil.Uint32Size

// MosaicNonceDTO is the binary representation of the nonce that is used to derive a mosaic identifier.
type MosaicNonceDTO uint32

// MosaicNonceDTOFromMarshalUtil unmarshals a MosaicNonceDTO using a MarshalUtil (for easier unmarshaling).
func MosaicNonceDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (nonce MosaicNonceDTO, err error) {
	value, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse MosaicNonceDTO (%v): %w", err, faults.ErrLength)
		return
	}

	return MosaicNonceDTO(value), nil
}

// Bytes returns a marshaled version of the MosaicNonceDTO.
func (m MosaicNonceDTO) Bytes() []byte {
	return marshalutil.New(MosaicNonceDTOSize).WriteUint32(uint32(m)).Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EntityTypeDTO ////////////////////////////////////////////////////////////////////////////////////////////////

// EntityTypeDTOSize contains the amount of bytes of a marshaled EntityTypeDTO.
const EntityTypeDTOSize = marshalutil.Uint16Size

const (
	// MosaicDefinitionEntityType is the entity type of a mosaic definition transaction.
	MosaicDefinitionEntityType EntityTypeDTO = 0x414D

	// AccountAddressRestrictionEntityType is the entity type of an account address restriction transaction.
	AccountAddressRestrictionEntityType EntityTypeDTO = 0x4150
)

// EntityTypeDTO is the numeric discriminant that identifies the type of a transaction network wide.
type EntityTypeDTO uint16

// EntityTypeDTOFromMarshalUtil unmarshals an EntityTypeDTO using a MarshalUtil (for easier unmarshaling).
func EntityTypeDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (entityType EntityTypeDTO, err error) {
	value, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse EntityTypeDTO (%v): %w", err, faults.ErrLength)
		return
	}

	return EntityTypeDTO(value), nil
}

// Bytes returns a marshaled version of the EntityTypeDTO.
func (e EntityTypeDTO) Bytes() []byte {
	return marshalutil.New(EntityTypeDTOSize).WriteUint16(uint16(e)).Bytes()
}

// String returns a human readable version of the EntityTypeDTO.
func (e EntityTypeDTO) String() string {
	switch e {
	case MosaicDefinitionEntityType:
		return "EntityType(MosaicDefinition)"
	case AccountAddressRestrictionEntityType:
		return "EntityType(AccountAddressRestriction)"
	default:
		return "EntityType(0x" + strconv.FormatUint(uint64(e), 16) + ")"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NetworkTypeDTO ///////////////////////////////////////////////////////////////////////////////////////////////

// NetworkTypeDTOSize contains the amount of bytes of a marshaled NetworkTypeDTO.
const NetworkTypeDTOSize = marshalutil.Uint8Size

const (
	// MijinNetworkType is the identifier of a mijin (private) network.
	MijinNetworkType NetworkTypeDTO = 0x60

	// MainNetworkType is the identifier of the public main network.
	MainNetworkType NetworkTypeDTO = 0x68

	// PrivateNetworkType is the identifier of a private network.
	PrivateNetworkType NetworkTypeDTO = 0x78

	// MijinTestNetworkType is the identifier of a mijin (private) test network.
	MijinTestNetworkType NetworkTypeDTO = 0x90

	// TestNetworkType is the identifier of the public test network.
	TestNetworkType NetworkTypeDTO = 0x98

	// PrivateTestNetworkType is the identifier of a private test network.
	PrivateTestNetworkType NetworkTypeDTO = 0xA8
)

// NetworkTypeDTO is the binary representation of the network an entity belongs to.
type NetworkTypeDTO uint8

// NetworkTypeDTOFromMarshalUtil unmarshals a NetworkTypeDTO using a MarshalUtil (for easier unmarshaling).
func NetworkTypeDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (networkType NetworkTypeDTO, err error) {
	value, err := marshalUtil.ReadUint8()
	if err != nil {
		err = errors.Errorf("failed to parse NetworkTypeDTO (%v): %w", err, faults.ErrLength)
		return
	}
	networkType = NetworkTypeDTO(value)
	if !networkType.Valid() {
		err = errors.Errorf("unsupported network type (0x%X): %w", value, faults.ErrFormat)
		return
	}

	return
}

// Valid returns true if the NetworkTypeDTO is one of the known network identifiers.
func (n NetworkTypeDTO) Valid() bool {
	switch n {
	case MijinNetworkType, MainNetworkType, PrivateNetworkType, MijinTestNetworkType, TestNetworkType, PrivateTestNetworkType:
		return true
	default:
		return false
	}
}

// Bytes returns a marshaled version of the NetworkTypeDTO.
func (n NetworkTypeDTO) Bytes() []byte {
	return []byte{byte(n)}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region KeyDTO ///////////////////////////////////////////////////////////////////////////////////////////////////////

// KeyDTOSize contains the amount of bytes of a marshaled KeyDTO.
const KeyDTOSize = 32

// KeyDTO is the binary representation of a public key.
type KeyDTO [KeyDTOSize]byte

// KeyDTOFromBytes unmarshals a KeyDTO from a sequence of bytes.
func KeyDTOFromBytes(bytes []byte) (key KeyDTO, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if key, err = KeyDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse KeyDTO from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// KeyDTOFromMarshalUtil unmarshals a KeyDTO using a MarshalUtil (for easier unmarshaling).
func KeyDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (key KeyDTO, err error) {
	keyBytes, err := readBytes(marshalUtil, KeyDTOSize, "KeyDTO")
	if err != nil {
		return
	}
	copy(key[:], keyBytes)

	return
}

// IsZero returns true if all bytes of the KeyDTO are zero (the wire representation of an absent key).
func (k KeyDTO) IsZero() bool {
	return k == KeyDTO{}
}

// Bytes returns a marshaled version of the KeyDTO.
func (k KeyDTO) Bytes() []byte {
	return k[:]
}

// String returns a human readable version of the KeyDTO.
func (k KeyDTO) String() string {
	return "KeyDTO(" + hex.EncodeToString(k[:]) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SignatureDTO /////////////////////////////////////////////////////////////////////////////////////////////////

// SignatureDTOSize contains the amount of bytes of a marshaled SignatureDTO.
const SignatureDTOSize = 64

// SignatureDTO is the binary representation of a signature. Its content is opaque to this package.
type SignatureDTO [SignatureDTOSize]byte

// SignatureDTOFromBytes unmarshals a SignatureDTO from a sequence of bytes.
func SignatureDTOFromBytes(bytes []byte) (signature SignatureDTO, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if signature, err = SignatureDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse SignatureDTO from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// SignatureDTOFromMarshalUtil unmarshals a SignatureDTO using a MarshalUtil (for easier unmarshaling).
func SignatureDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (signature SignatureDTO, err error) {
	signatureBytes, err := readBytes(marshalUtil, SignatureDTOSize, "SignatureDTO")
	if err != nil {
		return
	}
	copy(signature[:], signatureBytes)

	return
}

// IsZero returns true if all bytes of the SignatureDTO are zero (the wire representation of a missing signature).
func (s SignatureDTO) IsZero() bool {
	return s == SignatureDTO{}
}

// Bytes returns a marshaled version of the SignatureDTO.
func (s SignatureDTO) Bytes() []byte {
	return s[:]
}

// String returns a human readable version of the SignatureDTO.
func (s SignatureDTO) String() string {
	return "SignatureDTO(" + hex.EncodeToString(s[:]) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnresolvedAddressDTO /////////////////////////////////////////////////////////////////////////////////////////

// UnresolvedAddressDTOSize contains the amount of bytes of a marshaled UnresolvedAddressDTO.
const UnresolvedAddressDTOSize = 25

// UnresolvedAddressDTO is the binary slot that holds either a raw address or a namespace alias of an address.
type UnresolvedAddressDTO [UnresolvedAddressDTOSize]byte

// UnresolvedAddressDTOFromBytes unmarshals an UnresolvedAddressDTO from a sequence of bytes.
func UnresolvedAddressDTOFromBytes(bytes []byte) (address UnresolvedAddressDTO, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if address, err = UnresolvedAddressDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse UnresolvedAddressDTO from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// UnresolvedAddressDTOFromMarshalUtil unmarshals an UnresolvedAddressDTO using a MarshalUtil (for easier
// unmarshaling).
func UnresolvedAddressDTOFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address UnresolvedAddressDTO, err error) {
	addressBytes, err := readBytes(marshalUtil, UnresolvedAddressDTOSize, "UnresolvedAddressDTO")
	if err != nil {
		return
	}
	copy(address[:], addressBytes)

	return
}

// Bytes returns a marshaled version of the UnresolvedAddressDTO.
func (u UnresolvedAddressDTO) Bytes() []byte {
	return u[:]
}

// String returns a human readable version of the UnresolvedAddressDTO.
func (u UnresolvedAddressDTO) String() string {
	return "UnresolvedAddressDTO(" + hex.EncodeToString(u[:]) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func readUint64(marshalUtil *marshalutil.MarshalUtil, name string) (uint64, error) {
	value, err := marshalUtil.ReadUint64()
	if err != nil {
		return 0, errors.Errorf("failed to parse %s (%v): %w", name, err, faults.ErrLength)
	}

	return value, nil
}

func readBytes(marshalUtil *marshalutil.MarshalUtil, length int, name string) ([]byte, error) {
	bytes, err := marshalUtil.ReadBytes(length)
	if err != nil {
		return nil, errors.Errorf("failed to parse %s (%v): %w", name, err, faults.ErrLength)
	}

	return bytes, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
