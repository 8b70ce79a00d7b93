package wire

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// Body is the interface for the type specific part of a transaction. The set of Bodies is closed, new variants are
// registered in BodyFromMarshalUtil.
type Body interface {
	// EntityType returns the entity type that identifies the Body in the header of a transaction.
	EntityType() EntityTypeDTO

	// Size returns the amount of bytes of the marshaled Body.
	Size() int

	// Bytes returns a marshaled version of the Body.
	Bytes() []byte

	// String returns a human readable version of the Body.
	String() string
}

// BodyFromMarshalUtil unmarshals the Body of the given entity type using a MarshalUtil (for easier unmarshaling).
func BodyFromMarshalUtil(entityType EntityTypeDTO, marshalUtil *marshalutil.MarshalUtil) (body Body, err error) {
	switch entityType {
	case AccountAddressRestrictionEntityType:
		if body, err = AccountAddressRestrictionBodyFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse AccountAddressRestrictionBody: %w", err)
			return nil, err
		}
	case MosaicDefinitionEntityType:
		if body, err = MosaicDefinitionBodyFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse MosaicDefinitionBody: %w", err)
			return nil, err
		}
	default:
		err = errors.Errorf("unsupported entity type (%s): %w", entityType, faults.ErrFormat)
	}

	return
}
