package jsonmodels

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// Transaction is the JSON model of a catapult.Transaction. The type specific fields are only set for the matching
// transaction type.
type Transaction struct {
	Signature       string `json:"signature,omitempty"`
	SignerPublicKey string `json:"signerPublicKey,omitempty"`
	Version         uint8  `json:"version"`
	Network         uint8  `json:"network"`
	Type            uint16 `json:"type"`
	MaxFee          uint64 `json:"maxFee,string,omitempty"`
	Deadline        uint64 `json:"deadline,string,omitempty"`

	RestrictionFlags     uint16   `json:"restrictionFlags,omitempty"`
	RestrictionAdditions []string `json:"restrictionAdditions,omitempty"`
	RestrictionDeletions []string `json:"restrictionDeletions,omitempty"`

	ID           string `json:"id,omitempty"`
	Nonce        uint32 `json:"nonce,omitempty"`
	Flags        uint8  `json:"flags,omitempty"`
	Divisibility uint8  `json:"divisibility,omitempty"`
	Duration     uint64 `json:"duration,string,omitempty"`
}

// NewTransaction returns the JSON model of the given catapult.Transaction.
func NewTransaction(transaction catapult.Transaction) (*Transaction, error) {
	result := &Transaction{
		Version:  transaction.Version(),
		Network:  uint8(transaction.NetworkType()),
		Type:     uint16(transaction.Type()),
		MaxFee:   transaction.MaxFee(),
		Deadline: uint64(transaction.Deadline()),
	}
	if signature := transaction.Signature(); signature != nil {
		result.Signature = encodeHex(signature[:])
	}
	if signer := transaction.Signer(); signer != nil {
		result.SignerPublicKey = signer.Hex()
	}

	if innerTransaction, isInner := transaction.(*catapult.InnerTransaction); isInner {
		transaction = innerTransaction.Transaction
		result.MaxFee = 0
		result.Deadline = 0
	}

	switch typedTransaction := transaction.(type) {
	case *catapult.AccountAddressRestrictionTransaction:
		result.RestrictionFlags = uint16(typedTransaction.RestrictionFlags())
		result.RestrictionAdditions = unresolvedAddressesHex(typedTransaction.RestrictionAdditions(), typedTransaction.NetworkType())
		result.RestrictionDeletions = unresolvedAddressesHex(typedTransaction.RestrictionDeletions(), typedTransaction.NetworkType())
	case *catapult.MosaicDefinitionTransaction:
		result.ID = typedTransaction.MosaicID().Hex()
		result.Nonce = uint32(typedTransaction.Nonce())
		result.Flags = uint8(typedTransaction.Flags())
		result.Divisibility = typedTransaction.Divisibility()
		result.Duration = typedTransaction.Duration()
	default:
		return nil, errors.Errorf("unsupported transaction %T: %w", transaction, faults.ErrFormat)
	}

	return result, nil
}

// ToTransaction converts the JSON model into a catapult.Transaction. Embedded transactions are returned as
// *catapult.InnerTransaction.
func (t *Transaction) ToTransaction(embedded bool, options ...catapult.Option) (transaction catapult.Transaction, err error) {
	networkType, err := catapult.NetworkTypeFromDTO(wire.NetworkTypeDTO(t.Network))
	if err != nil {
		return nil, errors.Errorf("failed to parse network: %w", err)
	}

	options = append([]catapult.Option{catapult.WithMaxFee(t.MaxFee)}, options...)
	if t.Signature != "" {
		signatureBytes, decodeErr := decodeHex(t.Signature, ed25519.SignatureSize)
		if decodeErr != nil {
			return nil, errors.Errorf("failed to parse signature: %w", decodeErr)
		}
		var signature ed25519.Signature
		copy(signature[:], signatureBytes)
		options = append(options, catapult.WithSignature(signature))
	}

	var signer *catapult.PublicAccount
	if t.SignerPublicKey != "" {
		publicAccount, parseErr := catapult.PublicAccountFromHex(t.SignerPublicKey, networkType)
		if parseErr != nil {
			return nil, errors.Errorf("failed to parse signer: %w", parseErr)
		}
		signer = &publicAccount
		options = append(options, catapult.WithSigner(publicAccount))
	}

	deadline := catapult.Deadline(t.Deadline)
	switch catapult.TransactionType(t.Type) {
	case catapult.AccountAddressRestrictionTransactionType:
		additions, parseErr := unresolvedAddressesFromHex(t.RestrictionAdditions)
		if parseErr != nil {
			return nil, errors.Errorf("failed to parse restriction additions: %w", parseErr)
		}
		deletions, parseErr := unresolvedAddressesFromHex(t.RestrictionDeletions)
		if parseErr != nil {
			return nil, errors.Errorf("failed to parse restriction deletions: %w", parseErr)
		}

		if transaction, err = catapult.NewAccountAddressRestrictionTransaction(deadline, catapult.AddressRestrictionFlag(t.RestrictionFlags), additions, deletions, networkType, options...); err != nil {
			return nil, err
		}
	case catapult.MosaicDefinitionTransactionType:
		mosaicID, parseErr := catapult.MosaicIDFromHex(t.ID)
		if parseErr != nil {
			return nil, errors.Errorf("failed to parse mosaic id: %w", parseErr)
		}

		if transaction, err = catapult.NewMosaicDefinitionTransaction(deadline, catapult.MosaicNonce(t.Nonce), mosaicID, catapult.MosaicFlags(t.Flags), t.Divisibility, t.Duration, networkType, options...); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported transaction type %s: %w", catapult.TransactionType(t.Type), faults.ErrFormat)
	}

	if transaction.Version() != t.Version {
		return nil, errors.Errorf("unsupported version %d of %s: %w", t.Version, transaction.Type(), faults.ErrFormat)
	}

	if !embedded {
		return transaction, nil
	}
	if signer == nil {
		return nil, errors.Errorf("embedded transaction has no signer: %w", faults.ErrFormat)
	}

	return catapult.NewInnerTransaction(transaction, *signer)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionInfo //////////////////////////////////////////////////////////////////////////////////////////////

// TransactionMeta is the JSON model of catapult.TransactionInfo.
type TransactionMeta struct {
	Height              uint64 `json:"height,string"`
	Index               uint32 `json:"index"`
	Hash                string `json:"hash,omitempty"`
	MerkleComponentHash string `json:"merkleComponentHash,omitempty"`
	AggregateHash       string `json:"aggregateHash,omitempty"`
	AggregateID         string `json:"aggregateId,omitempty"`
}

// TransactionInfo is a confirmed transaction as it is returned by the /transactions/confirmed endpoints and the
// confirmedAdded channel.
type TransactionInfo struct {
	ID          string          `json:"id,omitempty"`
	Meta        TransactionMeta `json:"meta"`
	Transaction Transaction     `json:"transaction"`
}

// NewTransactionInfo returns the JSON model of a confirmed catapult.Transaction.
func NewTransactionInfo(transaction catapult.Transaction) (*TransactionInfo, error) {
	info := transaction.TransactionInfo()
	if info == nil {
		return nil, errors.Errorf("transaction is not confirmed: %w", faults.ErrState)
	}

	transactionModel, err := NewTransaction(transaction)
	if err != nil {
		return nil, err
	}

	return &TransactionInfo{
		ID: info.ID,
		Meta: TransactionMeta{
			Height:              info.Height,
			Index:               info.Index,
			Hash:                info.Hash,
			MerkleComponentHash: info.MerkleComponentHash,
			AggregateHash:       info.AggregateHash,
			AggregateID:         info.AggregateID,
		},
		Transaction: *transactionModel,
	}, nil
}

// ToTransaction converts the JSON model into a confirmed catapult.Transaction.
func (t *TransactionInfo) ToTransaction() (catapult.Transaction, error) {
	info := catapult.TransactionInfo{
		Height:              t.Meta.Height,
		Index:               t.Meta.Index,
		ID:                  t.ID,
		Hash:                t.Meta.Hash,
		MerkleComponentHash: t.Meta.MerkleComponentHash,
		AggregateHash:       t.Meta.AggregateHash,
		AggregateID:         t.Meta.AggregateID,
	}

	return t.Transaction.ToTransaction(info.IsEmbedded(), catapult.WithTransactionInfo(info))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func unresolvedAddressesHex(unresolvedAddresses []catapult.UnresolvedAddress, networkType catapult.NetworkType) []string {
	if len(unresolvedAddresses) == 0 {
		return nil
	}

	result := make([]string, len(unresolvedAddresses))
	for i, unresolved := range unresolvedAddresses {
		result[i] = encodeHex(unresolved.UnresolvedAddressDTO(networkType).Bytes())
	}

	return result
}

func unresolvedAddressesFromHex(values []string) ([]catapult.UnresolvedAddress, error) {
	result := make([]catapult.UnresolvedAddress, len(values))
	for i, value := range values {
		unresolvedBytes, err := decodeHex(value, wire.UnresolvedAddressDTOSize)
		if err != nil {
			return nil, errors.Errorf("failed to parse address %d: %w", i, err)
		}

		var dto wire.UnresolvedAddressDTO
		copy(dto[:], unresolvedBytes)
		if result[i], err = catapult.UnresolvedAddressFromDTO(dto); err != nil {
			return nil, errors.Errorf("failed to parse address %d: %w", i, err)
		}
	}

	return result, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
