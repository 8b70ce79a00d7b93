package catapult

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/iotaledger/hive.go/typeutils"
	"golang.org/x/crypto/sha3"

	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region TransactionType //////////////////////////////////////////////////////////////////////////////////////////////

const (
	// MosaicDefinitionTransactionType is the type of a transaction that creates a mosaic.
	MosaicDefinitionTransactionType TransactionType = 0x414D

	// AccountAddressRestrictionTransactionType is the type of a transaction that modifies address restrictions.
	AccountAddressRestrictionTransactionType TransactionType = 0x4150
)

// TransactionType identifies the kind of a transaction.
type TransactionType uint16

var transactionTypeMapping = dtomapping.NewEnumMapping(
	dtomapping.EnumPair[TransactionType, wire.EntityTypeDTO]{From: MosaicDefinitionTransactionType, To: wire.MosaicDefinitionEntityType},
	dtomapping.EnumPair[TransactionType, wire.EntityTypeDTO]{From: AccountAddressRestrictionTransactionType, To: wire.AccountAddressRestrictionEntityType},
)

// String returns a human readable version of the TransactionType.
func (t TransactionType) String() string {
	switch t {
	case MosaicDefinitionTransactionType:
		return "MOSAIC_DEFINITION"
	case AccountAddressRestrictionTransactionType:
		return "ACCOUNT_ADDRESS_RESTRICTION"
	default:
		return "UNKNOWN(" + uint64Hex(uint64(t))[12:] + ")"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// NotEmbedded is passed as the aggregate index when resolving the aliases of a transaction that is not part of an
// aggregate.
const NotEmbedded = -1

// Transaction is the interface of the immutable domain representation of the supported transactions.
type Transaction interface {
	// Type returns the TransactionType.
	Type() TransactionType

	// NetworkType returns the network the transaction is meant for.
	NetworkType() NetworkType

	// Version returns the version of the transaction layout.
	Version() uint8

	// Deadline returns the point in time until the transaction can be included in a block.
	Deadline() Deadline

	// MaxFee returns the maximum fee the signer is willing to pay.
	MaxFee() uint64

	// Signature returns the signature of the transaction or nil if it was not signed yet.
	Signature() *ed25519.Signature

	// Signer returns the account that signs the transaction or nil if it is not known yet.
	Signer() *PublicAccount

	// TransactionInfo returns the confirmation info of the transaction or nil if it was not confirmed yet.
	TransactionInfo() *TransactionInfo

	// Builder returns the standalone binary envelope of the transaction.
	Builder() *wire.TransactionBuilder

	// EmbeddedBuilder returns the binary envelope of the transaction for the use in an aggregate.
	EmbeddedBuilder() (*wire.EmbeddedTransactionBuilder, error)

	// Size returns the amount of bytes of the standalone envelope.
	Size() int

	// Bytes returns the standalone envelope in its marshaled form.
	Bytes() []byte

	// Payload returns the upper case hex encoded version of Bytes.
	Payload() string

	// SigningBytes returns the message a signer has to sign for the network with the given generation hash.
	SigningBytes(generationHash []byte) []byte

	// ResolveAliases returns a copy of the transaction where every alias is replaced by the value the receipt
	// statement of its block resolves it to.
	ResolveAliases(statement *Statement, aggregateIndex int) (Transaction, error)

	// ShouldNotifyAccount returns true if the transaction concerns the given address or one of its aliases.
	ShouldNotifyAccount(address Address, aliases []NamespaceID) bool

	// String returns a human readable version of the transaction.
	String() string

	base() *transactionBase
	withEssence(essence transactionEssence) Transaction
}

// TransactionFromPayload parses a Transaction from its hex encoded binary envelope.
func TransactionFromPayload(payload string, embedded bool) (transaction Transaction, err error) {
	transactionBytes, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	transaction, consumedBytes, err := TransactionFromBytes(transactionBytes, embedded)
	if err != nil {
		return nil, err
	}
	if consumedBytes != len(transactionBytes) {
		return nil, errors.Errorf("payload contains %d trailing bytes: %w", len(transactionBytes)-consumedBytes, faults.ErrFormat)
	}

	return transaction, nil
}

// TransactionFromBytes unmarshals a Transaction from its binary envelope and returns the amount of consumed bytes.
// Embedded transactions are returned as *InnerTransaction.
func TransactionFromBytes(transactionBytes []byte, embedded bool) (transaction Transaction, consumedBytes int, err error) {
	entityType, err := wire.PeekEntityType(transactionBytes, embedded)
	if err != nil {
		return nil, 0, err
	}
	if _, err = transactionTypeMapping.Unmap(entityType); err != nil {
		return nil, 0, errors.Errorf("unsupported transaction type %s: %w", entityType, err)
	}

	marshalUtil := marshalutil.New(transactionBytes)
	if embedded {
		transaction, err = innerTransactionFromMarshalUtil(marshalUtil)
	} else {
		transaction, err = standaloneTransactionFromMarshalUtil(marshalUtil)
	}
	if err != nil {
		return nil, 0, err
	}

	return transaction, marshalUtil.ReadOffset(), nil
}

// WithOptions returns a copy of the Transaction where the given options override the common fields.
func WithOptions(transaction Transaction, options ...Option) Transaction {
	essence := transaction.base().essence
	for _, option := range options {
		option(&essence)
	}

	return transaction.withEssence(essence)
}

func standaloneTransactionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (Transaction, error) {
	builder, err := wire.TransactionBuilderFromMarshalUtil(marshalUtil)
	if err != nil {
		return nil, err
	}

	header := builder.Header()
	essence, err := essenceFromWire(header.Version, header.Network, header.SignerPublicKey)
	if err != nil {
		return nil, err
	}
	essence.maxFee = uint64(header.Fee)
	essence.deadline = Deadline(header.Deadline)
	if !header.Signature.IsZero() {
		signature := ed25519.Signature(header.Signature)
		essence.signature = &signature
	}

	return transactionFromBody(essence, builder.Body())
}

func innerTransactionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (Transaction, error) {
	builder, err := wire.EmbeddedTransactionBuilderFromMarshalUtil(marshalUtil)
	if err != nil {
		return nil, err
	}

	header := builder.Header()
	essence, err := essenceFromWire(header.Version, header.Network, header.SignerPublicKey)
	if err != nil {
		return nil, err
	}
	if essence.signer == nil {
		return nil, errors.Errorf("embedded transaction has no signer: %w", faults.ErrFormat)
	}

	transaction, err := transactionFromBody(essence, builder.Body())
	if err != nil {
		return nil, err
	}

	return &InnerTransaction{Transaction: transaction}, nil
}

func transactionFromBody(essence transactionEssence, body wire.Body) (Transaction, error) {
	switch typedBody := body.(type) {
	case *wire.AccountAddressRestrictionBody:
		return accountAddressRestrictionTransactionFromBody(essence, typedBody)
	case *wire.MosaicDefinitionBody:
		return mosaicDefinitionTransactionFromBody(essence, typedBody)
	default:
		return nil, errors.Errorf("unsupported transaction body %T: %w", body, faults.ErrFormat)
	}
}

// generationHashSize is the length of the generation hash seed of a network.
const generationHashSize = 32

// TransactionHash returns the upper case hex encoded hash a node assigns to the signed transaction on the network with
// the given generation hash. The hash covers the first half of the signature, the signer and the signed bytes.
func TransactionHash(transaction Transaction, generationHash string) (string, error) {
	if transaction.Signature() == nil || transaction.Signer() == nil {
		return "", errors.Errorf("only signed transactions have a hash: %w", faults.ErrState)
	}

	generationHashBytes, err := hex.DecodeString(generationHash)
	if err != nil || len(generationHashBytes) != generationHashSize {
		return "", errors.Errorf("invalid generation hash %q: %w", generationHash, faults.ErrFormat)
	}

	signature := transaction.Signature()
	publicKey := transaction.Signer().PublicKey()
	hash := sha3.Sum256(byteutils.ConcatBytes(signature[:ed25519.SignatureSize/2], publicKey[:], transaction.SigningBytes(generationHashBytes)))

	return encodePayload(hash[:]), nil
}

func decodePayload(payload string) ([]byte, error) {
	transactionBytes, err := hex.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, errors.Errorf("failed to decode payload (%v): %w", err, faults.ErrFormat)
	}

	return transactionBytes, nil
}

func encodePayload(transactionBytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(transactionBytes))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option overrides one of the common fields of a Transaction.
type Option func(essence *transactionEssence)

// WithMaxFee sets the maximum fee of the Transaction (the default is zero).
func WithMaxFee(maxFee uint64) Option {
	return func(essence *transactionEssence) {
		essence.maxFee = maxFee
	}
}

// WithSignature sets the signature of the Transaction.
func WithSignature(signature ed25519.Signature) Option {
	return func(essence *transactionEssence) {
		essence.signature = &signature
	}
}

// WithSigner sets the account that signs the Transaction.
func WithSigner(signer PublicAccount) Option {
	return func(essence *transactionEssence) {
		essence.signer = &signer
	}
}

// WithTransactionInfo marks the Transaction as confirmed.
func WithTransactionInfo(info TransactionInfo) Option {
	return func(essence *transactionEssence) {
		essence.info = &info
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region transactionEssence ///////////////////////////////////////////////////////////////////////////////////////////

// transactionEssence contains the fields that all transactions share.
type transactionEssence struct {
	networkType NetworkType
	networkDTO  wire.NetworkTypeDTO
	version     uint8
	deadline    Deadline
	maxFee      uint64
	signature   *ed25519.Signature
	signer      *PublicAccount
	info        *TransactionInfo
}

func newEssence(networkType NetworkType, version uint8, deadline Deadline, options ...Option) (essence transactionEssence, err error) {
	if essence.networkDTO, err = networkType.DTO(); err != nil {
		err = errors.Errorf("failed to create transaction: %w", err)
		return
	}
	essence.networkType = networkType
	essence.version = version
	essence.deadline = deadline

	for _, option := range options {
		option(&essence)
	}

	return
}

func essenceFromWire(version uint8, networkDTO wire.NetworkTypeDTO, signerKey wire.KeyDTO) (essence transactionEssence, err error) {
	if essence.networkType, err = NetworkTypeFromDTO(networkDTO); err != nil {
		err = errors.Errorf("failed to parse network: %w", err)
		return
	}
	essence.networkDTO = networkDTO
	essence.version = version
	if !signerKey.IsZero() {
		signer := NewPublicAccount(ed25519.PublicKey(signerKey), essence.networkType)
		essence.signer = &signer
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region transactionBase //////////////////////////////////////////////////////////////////////////////////////////////

// transactionBase implements the parts of the Transaction interface that only depend on the common fields and the
// binary body.
type transactionBase struct {
	essence transactionEssence
	body    wire.Body
}

func (t *transactionBase) base() *transactionBase {
	return t
}

// Type returns the TransactionType.
func (t *transactionBase) Type() TransactionType {
	return TransactionType(t.body.EntityType())
}

// NetworkType returns the network the transaction is meant for.
func (t *transactionBase) NetworkType() NetworkType {
	return t.essence.networkType
}

// Version returns the version of the transaction layout.
func (t *transactionBase) Version() uint8 {
	return t.essence.version
}

// Deadline returns the point in time until the transaction can be included in a block.
func (t *transactionBase) Deadline() Deadline {
	return t.essence.deadline
}

// MaxFee returns the maximum fee the signer is willing to pay.
func (t *transactionBase) MaxFee() uint64 {
	return t.essence.maxFee
}

// Signature returns the signature of the transaction or nil if it was not signed yet.
func (t *transactionBase) Signature() *ed25519.Signature {
	if t.essence.signature == nil {
		return nil
	}
	signature := *t.essence.signature

	return &signature
}

// Signer returns the account that signs the transaction or nil if it is not known yet.
func (t *transactionBase) Signer() *PublicAccount {
	if t.essence.signer == nil {
		return nil
	}
	signer := *t.essence.signer

	return &signer
}

// TransactionInfo returns the confirmation info of the transaction or nil if it was not confirmed yet.
func (t *transactionBase) TransactionInfo() *TransactionInfo {
	if t.essence.info == nil {
		return nil
	}
	info := *t.essence.info

	return &info
}

// Builder returns the standalone binary envelope of the transaction. Absent signatures and signers are encoded as
// zero bytes.
func (t *transactionBase) Builder() *wire.TransactionBuilder {
	header := wire.TransactionHeader{
		Version:  t.essence.version,
		Network:  t.essence.networkDTO,
		Fee:      wire.AmountDTO(t.essence.maxFee),
		Deadline: wire.TimestampDTO(t.essence.deadline),
	}
	if t.essence.signature != nil {
		header.Signature = wire.SignatureDTO(*t.essence.signature)
	}
	if t.essence.signer != nil {
		header.SignerPublicKey = wire.KeyDTO(t.essence.signer.PublicKey())
	}

	return wire.NewTransactionBuilder(header, t.body)
}

// EmbeddedBuilder returns the binary envelope of the transaction for the use in an aggregate. It fails if the signer
// of the transaction is not known.
func (t *transactionBase) EmbeddedBuilder() (*wire.EmbeddedTransactionBuilder, error) {
	if t.essence.signer == nil {
		return nil, errors.Errorf("an embedded transaction requires a signer: %w", faults.ErrState)
	}

	return wire.NewEmbeddedTransactionBuilder(wire.EmbeddedTransactionHeader{
		SignerPublicKey: wire.KeyDTO(t.essence.signer.PublicKey()),
		Version:         t.essence.version,
		Network:         t.essence.networkDTO,
	}, t.body), nil
}

// Size returns the amount of bytes of the standalone envelope.
func (t *transactionBase) Size() int {
	return wire.TransactionHeaderSize + t.body.Size()
}

// Bytes returns the standalone envelope in its marshaled form.
func (t *transactionBase) Bytes() []byte {
	return t.Builder().Bytes()
}

// Payload returns the upper case hex encoded version of Bytes.
func (t *transactionBase) Payload() string {
	return encodePayload(t.Bytes())
}

// SigningBytes returns the message a signer has to sign for the network with the given generation hash.
func (t *transactionBase) SigningBytes(generationHash []byte) []byte {
	return byteutils.ConcatBytes(generationHash, t.Builder().SigningBytes())
}

// signedBy returns true if the signer of the transaction owns the given address.
func (t *transactionBase) signedBy(address Address) bool {
	return t.essence.signer != nil && t.essence.signer.Address().Equals(address)
}

// resolutionSource returns the block height and the receipt source of the transaction. It fails if the transaction is
// not confirmed yet.
func (t *transactionBase) resolutionSource(aggregateIndex int) (height uint64, source ReceiptSource, err error) {
	if t.essence.info == nil {
		err = errors.Errorf("cannot resolve the aliases of an unconfirmed transaction: %w", faults.ErrState)
		return
	}

	source.PrimaryID = t.essence.info.Index + 1
	if aggregateIndex >= 0 {
		source.SecondaryID = uint32(aggregateIndex) + 1
	}

	return t.essence.info.Height, source, nil
}

// eachStringField passes the common fields of the transaction to the given function (used by the String methods).
func (t *transactionBase) eachStringField(addField func(name string, value interface{})) {
	addField("type", t.Type().String())
	addField("networkType", t.essence.networkType.String())
	addField("version", t.essence.version)
	addField("deadline", uint64(t.essence.deadline))
	addField("maxFee", t.essence.maxFee)
	if t.essence.signer != nil {
		addField("signer", t.essence.signer.Hex())
	}
	if t.essence.info != nil {
		addField("transactionInfo", t.essence.info)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region InnerTransaction /////////////////////////////////////////////////////////////////////////////////////////////

// InnerTransaction is a Transaction that is embedded in an aggregate. Its signer is always known.
type InnerTransaction struct {
	Transaction
}

// NewInnerTransaction returns a copy of the Transaction that is signed by the given account and can be embedded in an
// aggregate.
func NewInnerTransaction(transaction Transaction, signer PublicAccount) (*InnerTransaction, error) {
	if typeutils.IsInterfaceNil(transaction) {
		return nil, errors.Errorf("transaction must not be nil: %w", faults.ErrState)
	}
	if innerTransaction, isInner := transaction.(*InnerTransaction); isInner {
		transaction = innerTransaction.Transaction
	}

	return &InnerTransaction{Transaction: WithOptions(transaction, WithSigner(signer))}, nil
}

// InnerSigner returns the account that signs the InnerTransaction.
func (i *InnerTransaction) InnerSigner() PublicAccount {
	return *i.Signer()
}

// EmbeddedSize returns the amount of bytes of the embedded envelope.
func (i *InnerTransaction) EmbeddedSize() int {
	return wire.EmbeddedTransactionHeaderSize + i.base().body.Size()
}

// EmbeddedBytes returns the embedded envelope in its marshaled form.
func (i *InnerTransaction) EmbeddedBytes() []byte {
	builder, err := i.EmbeddedBuilder()
	if err != nil {
		panic(err)
	}

	return builder.Bytes()
}

// EmbeddedPayload returns the upper case hex encoded version of EmbeddedBytes.
func (i *InnerTransaction) EmbeddedPayload() string {
	return encodePayload(i.EmbeddedBytes())
}

// ResolveAliases returns a copy of the InnerTransaction where every alias is replaced by its resolved value.
func (i *InnerTransaction) ResolveAliases(statement *Statement, aggregateIndex int) (Transaction, error) {
	resolvedTransaction, err := i.Transaction.ResolveAliases(statement, aggregateIndex)
	if err != nil {
		return nil, err
	}

	return &InnerTransaction{Transaction: resolvedTransaction}, nil
}

func (i *InnerTransaction) withEssence(essence transactionEssence) Transaction {
	return &InnerTransaction{Transaction: i.Transaction.withEssence(essence)}
}

// String returns a human readable version of the InnerTransaction.
func (i *InnerTransaction) String() string {
	return stringify.Struct("InnerTransaction",
		stringify.StructField("transaction", i.Transaction),
	)
}

// code contract (make sure the type implements all required methods)
var _ Transaction = &InnerTransaction{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
