package catapult

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/marshalutil"
	"golang.org/x/crypto/sha3"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region MosaicID /////////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicID identifies a mosaic. The highest bit of a MosaicID is never set.
type MosaicID uint64

// MosaicIDFromUint64 returns the MosaicID with the given value.
func MosaicIDFromUint64(value uint64) (MosaicID, error) {
	if value&namespaceFlag != 0 {
		return 0, errors.Errorf("%016X is not a mosaic identifier: %w", value, faults.ErrFormat)
	}

	return MosaicID(value), nil
}

// MosaicIDFromHex parses a MosaicID from its hex encoded version.
func MosaicIDFromHex(text string) (MosaicID, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(text), 16, 64)
	if err != nil {
		return 0, errors.Errorf("failed to parse mosaic identifier '%s' (%v): %w", text, err, faults.ErrFormat)
	}

	return MosaicIDFromUint64(value)
}

// MosaicIDFromNonce derives the MosaicID that the owner creates with the given nonce.
func MosaicIDFromNonce(nonce MosaicNonce, owner Address) MosaicID {
	nonceBytes := marshalutil.New(marshalutil.Uint32Size).WriteUint32(uint32(nonce)).Bytes()
	digest := sha3.Sum256(byteutils.ConcatBytes(nonceBytes, owner.Bytes()))

	value, _ := marshalutil.New(digest[:marshalutil.Uint64Size]).ReadUint64()

	return MosaicID(value &^ namespaceFlag)
}

// Uint64 returns the numeric value of the MosaicID.
func (m MosaicID) Uint64() uint64 {
	return uint64(m)
}

// Hex returns the upper case hex encoded version of the MosaicID.
func (m MosaicID) Hex() string {
	return uint64Hex(uint64(m))
}

// IsAlias returns false since a MosaicID is always a concrete value.
func (m MosaicID) IsAlias() bool {
	return false
}

// UnresolvedMosaicIDDTO returns the wire representation of the MosaicID.
func (m MosaicID) UnresolvedMosaicIDDTO() wire.MosaicIDDTO {
	return wire.MosaicIDDTO(m)
}

// String returns a human readable version of the MosaicID.
func (m MosaicID) String() string {
	return "MosaicID(" + m.Hex() + ")"
}

// code contract (make sure the type implements all required methods)
var _ UnresolvedMosaicID = MosaicID(0)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicNonce //////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicNonce is the random value a MosaicID is derived from.
type MosaicNonce uint32

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnresolvedMosaicID ///////////////////////////////////////////////////////////////////////////////////////////

// UnresolvedMosaicID is either a concrete MosaicID or a NamespaceID that is an alias of a MosaicID.
type UnresolvedMosaicID interface {
	// IsAlias returns true if the value needs to be resolved with a receipt statement.
	IsAlias() bool

	// UnresolvedMosaicIDDTO returns the wire representation of the value.
	UnresolvedMosaicIDDTO() wire.MosaicIDDTO

	// String returns a human readable version of the value.
	String() string
}

// UnresolvedMosaicIDFromUint64 returns the UnresolvedMosaicID with the given value. The highest bit decides if the
// value is a NamespaceID or a MosaicID.
func UnresolvedMosaicIDFromUint64(value uint64) UnresolvedMosaicID {
	if value&namespaceFlag != 0 {
		return NamespaceID(value)
	}

	return MosaicID(value)
}

// UnresolvedMosaicIDFromHex parses an UnresolvedMosaicID from its hex encoded version.
func UnresolvedMosaicIDFromHex(text string) (UnresolvedMosaicID, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(text), 16, 64)
	if err != nil {
		return nil, errors.Errorf("failed to parse unresolved mosaic identifier '%s' (%v): %w", text, err, faults.ErrFormat)
	}

	return UnresolvedMosaicIDFromUint64(value), nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
