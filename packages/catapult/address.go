package catapult

import (
	"bytes"
	"encoding/base32"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the network derives addresses with ripemd160
	"golang.org/x/crypto/sha3"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

const (
	// AddressLength contains the length of a decoded address (network = 1, digest = 20, checksum = 4).
	AddressLength = wire.UnresolvedAddressDTOSize

	// AddressEncodedLength contains the length of the base32 encoded version of an address.
	AddressEncodedLength = 40

	addressDigestLength   = ripemd160.Size
	addressChecksumLength = 4
	addressPrettyGroup    = 6
)

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// Address is the concrete address of an account. It is derived from the public key of the account and the network it
// belongs to.
type Address struct {
	bytes [AddressLength]byte
}

// NewAddress derives the Address of the given public key on the given network.
func NewAddress(publicKey ed25519.PublicKey, networkType NetworkType) Address {
	publicKeyHash := sha3.Sum256(publicKey[:])

	ripemdHash := ripemd160.New()
	ripemdHash.Write(publicKeyHash[:])

	return addressFromDigest(networkType, ripemdHash.Sum(nil))
}

// AddressFromBytes unmarshals an Address from a sequence of bytes and verifies its checksum.
func AddressFromBytes(addressBytes []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(addressBytes)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromMarshalUtil unmarshals an Address using a MarshalUtil (for easier unmarshaling).
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressBytes, err := marshalUtil.ReadBytes(AddressLength)
	if err != nil {
		err = errors.Errorf("failed to parse Address (%v): %w", err, faults.ErrLength)
		return
	}
	copy(address.bytes[:], addressBytes)

	if address.bytes[0]&aliasFlag != 0 {
		err = errors.Errorf("%X is a namespace alias and not an address: %w", addressBytes, faults.ErrFormat)
		return
	}
	if !NetworkType(address.bytes[0]).Valid() {
		err = errors.Errorf("unknown network type (0x%X) in address: %w", address.bytes[0], faults.ErrFormat)
		return
	}
	if !bytes.Equal(address.checksum(), address.bytes[AddressLength-addressChecksumLength:]) {
		err = errors.Errorf("invalid checksum of address %X: %w", addressBytes, faults.ErrFormat)
		return
	}

	return
}

// AddressFromString parses an Address from its base32 encoded version. Dashes of the pretty version are ignored.
func AddressFromString(text string) (address Address, err error) {
	normalizedText := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	if len(normalizedText) != AddressEncodedLength {
		err = errors.Errorf("address '%s' must have %d characters: %w", text, AddressEncodedLength, faults.ErrFormat)
		return
	}

	decodedBytes, err := addressEncoding.DecodeString(normalizedText)
	if err != nil {
		err = errors.Errorf("failed to decode address '%s' (%v): %w", text, err, faults.ErrFormat)
		return
	}

	if address, _, err = AddressFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse address '%s': %w", text, err)
	}

	return
}

// NetworkType returns the network the Address belongs to.
func (a Address) NetworkType() NetworkType {
	return NetworkType(a.bytes[0])
}

// Bytes returns a marshaled version of the Address.
func (a Address) Bytes() []byte {
	return a.bytes[:]
}

// Plain returns the base32 encoded version of the Address.
func (a Address) Plain() string {
	return addressEncoding.EncodeToString(a.bytes[:])
}

// Pretty returns the base32 encoded version of the Address grouped in blocks of six characters.
func (a Address) Pretty() string {
	plain := a.Plain()

	groups := make([]string, 0, len(plain)/addressPrettyGroup+1)
	for start := 0; start < len(plain); start += addressPrettyGroup {
		end := start + addressPrettyGroup
		if end > len(plain) {
			end = len(plain)
		}
		groups = append(groups, plain[start:end])
	}

	return strings.Join(groups, "-")
}

// Equals returns true if both Addresses are the same.
func (a Address) Equals(other Address) bool {
	return a.bytes == other.bytes
}

// IsAlias returns false since an Address is always a concrete value.
func (a Address) IsAlias() bool {
	return false
}

// UnresolvedAddressDTO returns the wire representation of the Address. The network is already part of the Address and
// the parameter only exists to satisfy the UnresolvedAddress interface.
func (a Address) UnresolvedAddressDTO(NetworkType) wire.UnresolvedAddressDTO {
	return wire.UnresolvedAddressDTO(a.bytes)
}

// String returns a human readable version of the Address.
func (a Address) String() string {
	return "Address(" + a.Plain() + ")"
}

func (a Address) checksum() []byte {
	checksumHash := sha3.Sum256(a.bytes[:1+addressDigestLength])

	return checksumHash[:addressChecksumLength]
}

func addressFromDigest(networkType NetworkType, digest []byte) (address Address) {
	copy(address.bytes[:], byteutils.ConcatBytes([]byte{byte(networkType)}, digest))
	copy(address.bytes[1+addressDigestLength:], address.checksum())

	return
}

// code contract (make sure the type implements all required methods)
var _ UnresolvedAddress = Address{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnresolvedAddress ////////////////////////////////////////////////////////////////////////////////////////////

// UnresolvedAddress is either a concrete Address or a NamespaceID that is an alias of an Address.
type UnresolvedAddress interface {
	// IsAlias returns true if the value needs to be resolved with a receipt statement.
	IsAlias() bool

	// UnresolvedAddressDTO returns the 25 byte wire representation of the value.
	UnresolvedAddressDTO(networkType NetworkType) wire.UnresolvedAddressDTO

	// String returns a human readable version of the value.
	String() string
}

// UnresolvedAddressFromDTO decodes an UnresolvedAddress from its wire representation.
func UnresolvedAddressFromDTO(dto wire.UnresolvedAddressDTO) (UnresolvedAddress, error) {
	if dto[0]&aliasFlag == 0 {
		address, _, err := AddressFromBytes(dto[:])
		if err != nil {
			return nil, err
		}

		return address, nil
	}

	namespaceID, err := marshalutil.New(dto[1:]).ReadUint64()
	if err != nil {
		return nil, errors.Errorf("failed to parse aliased namespace (%v): %w", err, faults.ErrLength)
	}

	return NamespaceIDFromUint64(namespaceID)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
