package catapult

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// MosaicFlags are the properties of a mosaic.
type MosaicFlags = wire.MosaicFlags

// MosaicDefinitionTransaction creates a new mosaic owned by the signer.
type MosaicDefinitionTransaction struct {
	transactionBase
}

// NewMosaicDefinitionTransaction creates a new MosaicDefinitionTransaction. The MosaicID has to be derived from the
// nonce and the address of the signer (see MosaicIDFromNonce).
func NewMosaicDefinitionTransaction(deadline Deadline, nonce MosaicNonce, mosaicID MosaicID, flags MosaicFlags, divisibility uint8, duration uint64, networkType NetworkType, options ...Option) (*MosaicDefinitionTransaction, error) {
	if _, err := MosaicIDFromUint64(uint64(mosaicID)); err != nil {
		return nil, err
	}

	essence, err := newEssence(networkType, wire.MosaicDefinitionBodyVersion, deadline, options...)
	if err != nil {
		return nil, err
	}

	body, err := wire.NewMosaicDefinitionBody(wire.MosaicNonceDTO(nonce), wire.MosaicIDDTO(mosaicID), flags, divisibility, wire.BlockDurationDTO(duration))
	if err != nil {
		return nil, err
	}

	return &MosaicDefinitionTransaction{transactionBase{essence: essence, body: body}}, nil
}

// MosaicDefinitionTransactionFromPayload parses a MosaicDefinitionTransaction from its hex encoded binary envelope.
// Embedded payloads are returned as *InnerTransaction.
func MosaicDefinitionTransactionFromPayload(payload string, embedded bool) (Transaction, error) {
	transaction, err := TransactionFromPayload(payload, embedded)
	if err != nil {
		return nil, err
	}
	if transaction.Type() != MosaicDefinitionTransactionType {
		return nil, errors.Errorf("payload contains a %s transaction: %w", transaction.Type(), faults.ErrFormat)
	}

	return transaction, nil
}

func mosaicDefinitionTransactionFromBody(essence transactionEssence, body *wire.MosaicDefinitionBody) (*MosaicDefinitionTransaction, error) {
	if _, err := MosaicIDFromUint64(uint64(body.ID())); err != nil {
		return nil, errors.Errorf("failed to parse mosaic id: %w", err)
	}

	return &MosaicDefinitionTransaction{transactionBase{essence: essence, body: body}}, nil
}

// Nonce returns the nonce the MosaicID was derived from.
func (m *MosaicDefinitionTransaction) Nonce() MosaicNonce {
	return MosaicNonce(m.definition().Nonce())
}

// MosaicID returns the identifier of the new mosaic.
func (m *MosaicDefinitionTransaction) MosaicID() MosaicID {
	return MosaicID(m.definition().ID())
}

// Flags returns the properties of the new mosaic.
func (m *MosaicDefinitionTransaction) Flags() MosaicFlags {
	return m.definition().Flags()
}

// Divisibility returns the number of decimal places of the new mosaic.
func (m *MosaicDefinitionTransaction) Divisibility() uint8 {
	return m.definition().Divisibility()
}

// Duration returns the number of blocks the mosaic is active for (0 means eternal).
func (m *MosaicDefinitionTransaction) Duration() uint64 {
	return uint64(m.definition().Duration())
}

// WithTransactionInfo returns a copy of the transaction that is marked as confirmed with the given info.
func (m *MosaicDefinitionTransaction) WithTransactionInfo(info TransactionInfo) *MosaicDefinitionTransaction {
	return m.withEssence(withInfo(m.essence, info)).(*MosaicDefinitionTransaction)
}

// ResolveAliases returns a copy of the transaction. A mosaic definition contains no aliases, but the transaction
// still has to be confirmed.
func (m *MosaicDefinitionTransaction) ResolveAliases(_ *Statement, aggregateIndex int) (Transaction, error) {
	if _, _, err := m.resolutionSource(aggregateIndex); err != nil {
		return nil, err
	}

	return m.withEssence(m.essence), nil
}

// ShouldNotifyAccount returns true if the address signs the transaction.
func (m *MosaicDefinitionTransaction) ShouldNotifyAccount(address Address, _ []NamespaceID) bool {
	return m.signedBy(address)
}

// String returns a human readable version of the transaction.
func (m *MosaicDefinitionTransaction) String() string {
	structBuilder := stringify.StructBuilder("MosaicDefinitionTransaction")
	m.eachStringField(func(name string, value interface{}) {
		structBuilder.AddField(stringify.StructField(name, value))
	})
	structBuilder.AddField(stringify.StructField("nonce", uint32(m.Nonce())))
	structBuilder.AddField(stringify.StructField("mosaicId", m.MosaicID().Hex()))
	structBuilder.AddField(stringify.StructField("flags", uint8(m.Flags())))
	structBuilder.AddField(stringify.StructField("divisibility", m.Divisibility()))
	structBuilder.AddField(stringify.StructField("duration", m.Duration()))

	return structBuilder.String()
}

func (m *MosaicDefinitionTransaction) definition() *wire.MosaicDefinitionBody {
	return m.body.(*wire.MosaicDefinitionBody)
}

func (m *MosaicDefinitionTransaction) withEssence(essence transactionEssence) Transaction {
	return &MosaicDefinitionTransaction{transactionBase{essence: essence, body: m.body}}
}

// code contract (make sure the type implements all required methods)
var _ Transaction = &MosaicDefinitionTransaction{}
