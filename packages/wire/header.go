package wire

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

const (
	// TransactionHeaderSize contains the amount of bytes of a marshaled TransactionHeader (including the size prefix).
	TransactionHeaderSize = marshalutil.Uint32Size + marshalutil.Uint32Size + SignatureDTOSize + KeyDTOSize +
		marshalutil.Uint32Size + marshalutil.Uint8Size + NetworkTypeDTOSize + EntityTypeDTOSize + AmountDTOSize +
		TimestampDTOSize

	// EmbeddedTransactionHeaderSize contains the amount of bytes of a marshaled EmbeddedTransactionHeader (including
	// the size prefix).
	EmbeddedTransactionHeaderSize = marshalutil.Uint32Size + marshalutil.Uint32Size + KeyDTOSize +
		marshalutil.Uint32Size + marshalutil.Uint8Size + NetworkTypeDTOSize + EntityTypeDTOSize

	// signingOffset is the offset of the first byte that is covered by the signature of a standalone transaction.
	signingOffset = marshalutil.Uint32Size + marshalutil.Uint32Size + SignatureDTOSize + KeyDTOSize +
		marshalutil.Uint32Size

	entityTypeOffset         = signingOffset + marshalutil.Uint8Size + NetworkTypeDTOSize
	embeddedEntityTypeOffset = marshalutil.Uint32Size + marshalutil.Uint32Size + KeyDTOSize + marshalutil.Uint32Size +
		marshalutil.Uint8Size + NetworkTypeDTOSize
)

// region TransactionHeader ////////////////////////////////////////////////////////////////////////////////////////////

// TransactionHeader contains the common fields of a standalone transaction. The size prefix is not part of the value
// since it is always derived from the complete envelope.
type TransactionHeader struct {
	Signature       SignatureDTO
	SignerPublicKey KeyDTO
	Version         uint8
	Network         NetworkTypeDTO
	Type            EntityTypeDTO
	Fee             AmountDTO
	Deadline        TimestampDTO
}

// transactionHeaderFromMarshalUtil unmarshals a TransactionHeader and returns the declared size of the envelope.
func transactionHeaderFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (header TransactionHeader, size uint32, err error) {
	if size, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse size (%v): %w", err, faults.ErrLength)
		return
	}
	if err = readReserved(marshalUtil, "verifiable entity header"); err != nil {
		return
	}
	if header.Signature, err = SignatureDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signature: %w", err)
		return
	}
	if header.SignerPublicKey, err = KeyDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signer public key: %w", err)
		return
	}
	if err = readReserved(marshalUtil, "entity body header"); err != nil {
		return
	}
	if header.Version, header.Network, header.Type, err = entityFieldsFromMarshalUtil(marshalUtil); err != nil {
		return
	}
	if header.Fee, err = AmountDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse fee: %w", err)
		return
	}
	if header.Deadline, err = TimestampDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse deadline: %w", err)
		return
	}

	return
}

// write marshals the TransactionHeader into the given MarshalUtil, prefixed with the given envelope size.
func (t TransactionHeader) write(marshalUtil *marshalutil.MarshalUtil, size int) {
	marshalUtil.
		WriteUint32(uint32(size)).
		WriteUint32(0).
		WriteBytes(t.Signature.Bytes()).
		WriteBytes(t.SignerPublicKey.Bytes()).
		WriteUint32(0).
		WriteUint8(t.Version).
		WriteUint8(uint8(t.Network)).
		WriteUint16(uint16(t.Type)).
		WriteUint64(uint64(t.Fee)).
		WriteUint64(uint64(t.Deadline))
}

// String returns a human readable version of the TransactionHeader.
func (t TransactionHeader) String() string {
	return stringify.Struct("TransactionHeader",
		stringify.StructField("signature", t.Signature),
		stringify.StructField("signerPublicKey", t.SignerPublicKey),
		stringify.StructField("version", t.Version),
		stringify.StructField("network", uint8(t.Network)),
		stringify.StructField("type", t.Type),
		stringify.StructField("fee", t.Fee),
		stringify.StructField("deadline", t.Deadline),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EmbeddedTransactionHeader ////////////////////////////////////////////////////////////////////////////////////

// EmbeddedTransactionHeader contains the common fields of a transaction that is embedded in an aggregate. It never
// carries a signature, a fee or a deadline.
type EmbeddedTransactionHeader struct {
	SignerPublicKey KeyDTO
	Version         uint8
	Network         NetworkTypeDTO
	Type            EntityTypeDTO
}

func embeddedTransactionHeaderFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (header EmbeddedTransactionHeader, size uint32, err error) {
	if size, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse size (%v): %w", err, faults.ErrLength)
		return
	}
	if err = readReserved(marshalUtil, "embedded transaction header"); err != nil {
		return
	}
	if header.SignerPublicKey, err = KeyDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signer public key: %w", err)
		return
	}
	if err = readReserved(marshalUtil, "entity body header"); err != nil {
		return
	}
	header.Version, header.Network, header.Type, err = entityFieldsFromMarshalUtil(marshalUtil)

	return
}

func (e EmbeddedTransactionHeader) write(marshalUtil *marshalutil.MarshalUtil, size int) {
	marshalUtil.
		WriteUint32(uint32(size)).
		WriteUint32(0).
		WriteBytes(e.SignerPublicKey.Bytes()).
		WriteUint32(0).
		WriteUint8(e.Version).
		WriteUint8(uint8(e.Network)).
		WriteUint16(uint16(e.Type))
}

// String returns a human readable version of the EmbeddedTransactionHeader.
func (e EmbeddedTransactionHeader) String() string {
	return stringify.Struct("EmbeddedTransactionHeader",
		stringify.StructField("signerPublicKey", e.SignerPublicKey),
		stringify.StructField("version", e.Version),
		stringify.StructField("network", uint8(e.Network)),
		stringify.StructField("type", e.Type),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

// PeekEntityType reads the entity type of a serialized transaction without decoding the rest of it.
func PeekEntityType(bytes []byte, embedded bool) (entityType EntityTypeDTO, err error) {
	offset := entityTypeOffset
	if embedded {
		offset = embeddedEntityTypeOffset
	}

	marshalUtil := marshalutil.New(bytes)
	marshalUtil.ReadSeek(offset)
	if entityType, err = EntityTypeDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to peek entity type: %w", err)
	}

	return
}

func entityFieldsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (version uint8, network NetworkTypeDTO, entityType EntityTypeDTO, err error) {
	if version, err = marshalUtil.ReadUint8(); err != nil {
		err = errors.Errorf("failed to parse version (%v): %w", err, faults.ErrLength)
		return
	}
	if network, err = NetworkTypeDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse network: %w", err)
		return
	}
	if entityType, err = EntityTypeDTOFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse type: %w", err)
		return
	}

	return
}

func readReserved(marshalUtil *marshalutil.MarshalUtil, name string) error {
	reserved, err := marshalUtil.ReadUint32()
	if err != nil {
		return errors.Errorf("failed to parse reserved field of %s (%v): %w", name, err, faults.ErrLength)
	}
	if reserved != 0 {
		return errors.Errorf("reserved field of %s is not zero (0x%X): %w", name, reserved, faults.ErrFormat)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
