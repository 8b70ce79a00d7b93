package catapult

import (
	"strings"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

func TestAddress(t *testing.T) {
	publicKey := ed25519.GenerateKeyPair().PublicKey
	address := NewAddress(publicKey, TestNet)

	assert.Equal(t, TestNet, address.NetworkType())
	assert.Len(t, address.Bytes(), AddressLength)
	assert.Len(t, address.Plain(), AddressEncodedLength)
	assert.True(t, strings.HasPrefix(address.Plain(), "T"))
	assert.Equal(t, address, NewAddress(publicKey, TestNet))
	assert.NotEqual(t, address, NewAddress(publicKey, MainNet))
	assert.False(t, address.IsAlias())

	restored, err := AddressFromString(address.Plain())
	require.NoError(t, err)
	assert.True(t, address.Equals(restored))

	pretty := address.Pretty()
	assert.Len(t, pretty, AddressEncodedLength+6)
	restored, err = AddressFromString(strings.ToLower(pretty))
	require.NoError(t, err)
	assert.True(t, address.Equals(restored))
}

func TestAddressFromBytes_Invalid(t *testing.T) {
	address := NewAddress(ed25519.GenerateKeyPair().PublicKey, MijinTestNet)

	corrupted := append([]byte(nil), address.Bytes()...)
	corrupted[AddressLength-1] ^= 0xFF
	_, _, err := AddressFromBytes(corrupted)
	assert.ErrorIs(t, err, faults.ErrFormat)

	aliased := append([]byte(nil), address.Bytes()...)
	aliased[0] |= 0x01
	_, _, err = AddressFromBytes(aliased)
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, _, err = AddressFromBytes(address.Bytes()[:AddressLength-1])
	assert.ErrorIs(t, err, faults.ErrLength)

	_, err = AddressFromString("TOO-SHORT")
	assert.ErrorIs(t, err, faults.ErrFormat)

	_, err = AddressFromString(strings.Repeat("1", AddressEncodedLength))
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestNamespaceIDFromName(t *testing.T) {
	root, err := NamespaceIDFromName("cat")
	require.NoError(t, err)
	child, err := NamespaceIDFromName("cat.currency")
	require.NoError(t, err)
	sameChild, err := NamespaceIDFromName("CAT.currency")
	require.NoError(t, err)

	assert.NotZero(t, root.Uint64()&namespaceFlag)
	assert.NotZero(t, child.Uint64()&namespaceFlag)
	assert.NotEqual(t, root, child)
	assert.Equal(t, child, sameChild)
	assert.Equal(t, childNamespaceID(root, "currency"), child)
	assert.Len(t, child.Hex(), 16)

	restored, err := NamespaceIDFromHex(child.Hex())
	require.NoError(t, err)
	assert.Equal(t, child, restored)

	for _, invalidName := range []string{"", "a..b", "-abc", "a.b.c.d", "white space", strings.Repeat("a", MaxNamespaceNameLength+1)} {
		_, err = NamespaceIDFromName(invalidName)
		assert.ErrorIs(t, err, faults.ErrFormat, invalidName)
	}

	_, err = NamespaceIDFromUint64(0x0123)
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestUnresolvedAddressFromDTO(t *testing.T) {
	namespaceID, err := NamespaceIDFromName("alice")
	require.NoError(t, err)

	aliasDTO := namespaceID.UnresolvedAddressDTO(TestNet)
	assert.Equal(t, byte(TestNet)|0x01, aliasDTO[0])
	assert.Equal(t, make([]byte, AddressLength-9), aliasDTO[9:])

	unresolved, err := UnresolvedAddressFromDTO(aliasDTO)
	require.NoError(t, err)
	assert.True(t, unresolved.IsAlias())
	assert.Equal(t, namespaceID, unresolved)

	address := NewAddress(ed25519.GenerateKeyPair().PublicKey, TestNet)
	unresolved, err = UnresolvedAddressFromDTO(address.UnresolvedAddressDTO(MainNet))
	require.NoError(t, err)
	assert.False(t, unresolved.IsAlias())
	assert.Equal(t, address, unresolved)

	_, err = UnresolvedAddressFromDTO(wire.UnresolvedAddressDTO{byte(TestNet), 0x01})
	assert.ErrorIs(t, err, faults.ErrFormat)
}

func TestMosaicID(t *testing.T) {
	owner := NewAddress(ed25519.GenerateKeyPair().PublicKey, TestNet)

	mosaicID := MosaicIDFromNonce(MosaicNonce(42), owner)
	assert.Zero(t, mosaicID.Uint64()&namespaceFlag)
	assert.Equal(t, mosaicID, MosaicIDFromNonce(MosaicNonce(42), owner))
	assert.NotEqual(t, mosaicID, MosaicIDFromNonce(MosaicNonce(43), owner))

	restored, err := MosaicIDFromHex(mosaicID.Hex())
	require.NoError(t, err)
	assert.Equal(t, mosaicID, restored)

	_, err = MosaicIDFromUint64(namespaceFlag | 1)
	assert.ErrorIs(t, err, faults.ErrFormat)

	assert.Equal(t, MosaicID(0x6BED913FA20223F8), UnresolvedMosaicIDFromUint64(0x6BED913FA20223F8))
	assert.Equal(t, NamespaceID(0xE74B99BA41F4AFEE), UnresolvedMosaicIDFromUint64(0xE74B99BA41F4AFEE))

	unresolved, err := UnresolvedMosaicIDFromHex("E74B99BA41F4AFEE")
	require.NoError(t, err)
	assert.True(t, unresolved.IsAlias())
}

func TestNetworkType(t *testing.T) {
	for _, networkType := range []NetworkType{MijinNet, MainNet, PrivateNet, MijinTestNet, TestNet, PrivateTestNet} {
		dto, err := networkType.DTO()
		require.NoError(t, err)
		assert.Equal(t, uint8(networkType), uint8(dto))

		restored, err := NetworkTypeFromDTO(dto)
		require.NoError(t, err)
		assert.Equal(t, networkType, restored)

		parsed, err := NetworkTypeFromString(networkType.String())
		require.NoError(t, err)
		assert.Equal(t, networkType, parsed)
	}

	parsed, err := NetworkTypeFromString("public-test")
	require.NoError(t, err)
	assert.Equal(t, TestNet, parsed)

	_, err = NetworkType(0x61).DTO()
	assert.ErrorIs(t, err, faults.ErrFormat)
	_, err = NetworkTypeFromString("moon")
	assert.ErrorIs(t, err, faults.ErrFormat)
}
