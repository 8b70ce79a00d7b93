package catapult

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/marshalutil"
	"golang.org/x/crypto/sha3"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

const (
	// MaxNamespaceDepth is the maximum number of levels of a namespace path (e.g. "root.child.grandchild").
	MaxNamespaceDepth = 3

	// MaxNamespaceNameLength is the maximum length of a single part of a namespace path.
	MaxNamespaceNameLength = 64

	// namespaceFlag is set for every NamespaceID and never for a MosaicID.
	namespaceFlag uint64 = 1 << 63

	// aliasFlag is set in the first byte of an UnresolvedAddressDTO that holds a namespace alias.
	aliasFlag byte = 0x01
)

var namespaceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// region NamespaceID //////////////////////////////////////////////////////////////////////////////////////////////////

// NamespaceID identifies a namespace. A NamespaceID can be used as an alias for an Address or for a MosaicID.
type NamespaceID uint64

// NamespaceIDFromUint64 returns the NamespaceID with the given value.
func NamespaceIDFromUint64(value uint64) (NamespaceID, error) {
	if value&namespaceFlag == 0 {
		return 0, errors.Errorf("%016X is not a namespace identifier: %w", value, faults.ErrFormat)
	}

	return NamespaceID(value), nil
}

// NamespaceIDFromHex parses a NamespaceID from its hex encoded version.
func NamespaceIDFromHex(text string) (NamespaceID, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(text), 16, 64)
	if err != nil {
		return 0, errors.Errorf("failed to parse namespace identifier '%s' (%v): %w", text, err, faults.ErrFormat)
	}

	return NamespaceIDFromUint64(value)
}

// NamespaceIDFromName derives the NamespaceID of a (possibly nested) namespace path like "cat.currency".
func NamespaceIDFromName(path string) (namespaceID NamespaceID, err error) {
	names := strings.Split(strings.ToLower(path), ".")
	if len(names) > MaxNamespaceDepth {
		return 0, errors.Errorf("namespace path '%s' has more than %d levels: %w", path, MaxNamespaceDepth, faults.ErrFormat)
	}

	for _, name := range names {
		if len(name) > MaxNamespaceNameLength || !namespaceNamePattern.MatchString(name) {
			return 0, errors.Errorf("invalid namespace name '%s' in '%s': %w", name, path, faults.ErrFormat)
		}
		namespaceID = childNamespaceID(namespaceID, name)
	}

	return namespaceID, nil
}

// Uint64 returns the numeric value of the NamespaceID.
func (n NamespaceID) Uint64() uint64 {
	return uint64(n)
}

// Hex returns the upper case hex encoded version of the NamespaceID.
func (n NamespaceID) Hex() string {
	return uint64Hex(uint64(n))
}

// IsAlias returns true since a NamespaceID always needs to be resolved.
func (n NamespaceID) IsAlias() bool {
	return true
}

// UnresolvedAddressDTO encodes the NamespaceID as an alias of an Address of the given network.
func (n NamespaceID) UnresolvedAddressDTO(networkType NetworkType) (dto wire.UnresolvedAddressDTO) {
	dto[0] = byte(networkType) | aliasFlag
	copy(dto[1:], marshalutil.New(marshalutil.Uint64Size).WriteUint64(uint64(n)).Bytes())

	return
}

// UnresolvedMosaicIDDTO encodes the NamespaceID as an alias of a MosaicID.
func (n NamespaceID) UnresolvedMosaicIDDTO() wire.MosaicIDDTO {
	return wire.MosaicIDDTO(n)
}

// String returns a human readable version of the NamespaceID.
func (n NamespaceID) String() string {
	return "NamespaceID(" + n.Hex() + ")"
}

func childNamespaceID(parent NamespaceID, name string) NamespaceID {
	parentBytes := marshalutil.New(marshalutil.Uint64Size).WriteUint64(uint64(parent)).Bytes()
	digest := sha3.Sum256(byteutils.ConcatBytes(parentBytes, []byte(name)))

	value, _ := marshalutil.New(digest[:marshalutil.Uint64Size]).ReadUint64()

	return NamespaceID(value | namespaceFlag)
}

// code contract (make sure the type implements all required methods)
var (
	_ UnresolvedAddress  = NamespaceID(0)
	_ UnresolvedMosaicID = NamespaceID(0)
)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func uint64Hex(value uint64) string {
	return fmt.Sprintf("%016X", value)
}
