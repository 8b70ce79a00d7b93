package wire

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/iotaledger/hive.go/typeutils"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// region TransactionBuilder ///////////////////////////////////////////////////////////////////////////////////////////

// TransactionBuilder is the binary envelope of a standalone transaction. It is composed of a TransactionHeader and the
// Body identified by the entity type of the header.
type TransactionBuilder struct {
	header TransactionHeader
	body   Body
}

// NewTransactionBuilder creates a new TransactionBuilder. The entity type of the header is taken from the Body.
func NewTransactionBuilder(header TransactionHeader, body Body) *TransactionBuilder {
	if typeutils.IsInterfaceNil(body) {
		panic("transaction body must not be nil")
	}
	header.Type = body.EntityType()

	return &TransactionBuilder{
		header: header,
		body:   body,
	}
}

// TransactionBuilderFromBytes unmarshals a TransactionBuilder from a sequence of bytes.
func TransactionBuilderFromBytes(bytes []byte) (builder *TransactionBuilder, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if builder, err = TransactionBuilderFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionBuilder from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionBuilderFromMarshalUtil unmarshals a TransactionBuilder using a MarshalUtil (for easier unmarshaling).
func TransactionBuilderFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (*TransactionBuilder, error) {
	readStartOffset := marshalUtil.ReadOffset()

	header, declaredSize, err := transactionHeaderFromMarshalUtil(marshalUtil)
	if err != nil {
		return nil, errors.Errorf("failed to parse TransactionHeader: %w", err)
	}
	body, err := BodyFromMarshalUtil(header.Type, marshalUtil)
	if err != nil {
		return nil, err
	}
	if parsedBytes := marshalUtil.ReadOffset() - readStartOffset; uint32(parsedBytes) != declaredSize {
		return nil, errors.Errorf("declared size (%d) does not match parsed bytes (%d): %w", declaredSize, parsedBytes, faults.ErrFormat)
	}

	return &TransactionBuilder{
		header: header,
		body:   body,
	}, nil
}

// Header returns the TransactionHeader of the envelope.
func (t *TransactionBuilder) Header() TransactionHeader {
	return t.header
}

// Body returns the type specific part of the envelope.
func (t *TransactionBuilder) Body() Body {
	return t.body
}

// Size returns the amount of bytes of the marshaled envelope.
func (t *TransactionBuilder) Size() int {
	return TransactionHeaderSize + t.body.Size()
}

// Bytes returns a marshaled version of the envelope.
func (t *TransactionBuilder) Bytes() []byte {
	size := t.Size()
	marshalUtil := marshalutil.New(size)
	t.header.write(marshalUtil, size)

	return marshalUtil.WriteBytes(t.body.Bytes()).Bytes()
}

// SigningBytes returns the part of the marshaled envelope that is covered by the signature (everything after the
// signer's public key and the reserved field that follows it).
func (t *TransactionBuilder) SigningBytes() []byte {
	return t.Bytes()[signingOffset:]
}

// String returns a human readable version of the envelope.
func (t *TransactionBuilder) String() string {
	return stringify.Struct("TransactionBuilder",
		stringify.StructField("size", t.Size()),
		stringify.StructField("header", t.header),
		stringify.StructField("body", t.body),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EmbeddedTransactionBuilder ///////////////////////////////////////////////////////////////////////////////////

// EmbeddedTransactionBuilder is the binary envelope of a transaction that is embedded in an aggregate.
type EmbeddedTransactionBuilder struct {
	header EmbeddedTransactionHeader
	body   Body
}

// NewEmbeddedTransactionBuilder creates a new EmbeddedTransactionBuilder. The entity type of the header is taken from
// the Body.
func NewEmbeddedTransactionBuilder(header EmbeddedTransactionHeader, body Body) *EmbeddedTransactionBuilder {
	if typeutils.IsInterfaceNil(body) {
		panic("transaction body must not be nil")
	}
	header.Type = body.EntityType()

	return &EmbeddedTransactionBuilder{
		header: header,
		body:   body,
	}
}

// EmbeddedTransactionBuilderFromBytes unmarshals an EmbeddedTransactionBuilder from a sequence of bytes.
func EmbeddedTransactionBuilderFromBytes(bytes []byte) (builder *EmbeddedTransactionBuilder, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if builder, err = EmbeddedTransactionBuilderFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse EmbeddedTransactionBuilder from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// EmbeddedTransactionBuilderFromMarshalUtil unmarshals an EmbeddedTransactionBuilder using a MarshalUtil (for easier
// unmarshaling).
func EmbeddedTransactionBuilderFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (*EmbeddedTransactionBuilder, error) {
	readStartOffset := marshalUtil.ReadOffset()

	header, declaredSize, err := embeddedTransactionHeaderFromMarshalUtil(marshalUtil)
	if err != nil {
		return nil, errors.Errorf("failed to parse EmbeddedTransactionHeader: %w", err)
	}
	body, err := BodyFromMarshalUtil(header.Type, marshalUtil)
	if err != nil {
		return nil, err
	}
	if parsedBytes := marshalUtil.ReadOffset() - readStartOffset; uint32(parsedBytes) != declaredSize {
		return nil, errors.Errorf("declared size (%d) does not match parsed bytes (%d): %w", declaredSize, parsedBytes, faults.ErrFormat)
	}

	return &EmbeddedTransactionBuilder{
		header: header,
		body:   body,
	}, nil
}

// Header returns the EmbeddedTransactionHeader of the envelope.
func (e *EmbeddedTransactionBuilder) Header() EmbeddedTransactionHeader {
	return e.header
}

// Body returns the type specific part of the envelope.
func (e *EmbeddedTransactionBuilder) Body() Body {
	return e.body
}

// Size returns the amount of bytes of the marshaled envelope.
func (e *EmbeddedTransactionBuilder) Size() int {
	return EmbeddedTransactionHeaderSize + e.body.Size()
}

// Bytes returns a marshaled version of the envelope.
func (e *EmbeddedTransactionBuilder) Bytes() []byte {
	size := e.Size()
	marshalUtil := marshalutil.New(size)
	e.header.write(marshalUtil, size)

	return marshalUtil.WriteBytes(e.body.Bytes()).Bytes()
}

// String returns a human readable version of the envelope.
func (e *EmbeddedTransactionBuilder) String() string {
	return stringify.Struct("EmbeddedTransactionBuilder",
		stringify.StructField("size", e.Size()),
		stringify.StructField("header", e.header),
		stringify.StructField("body", e.body),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
