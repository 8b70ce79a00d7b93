package catapult

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
	"github.com/nemtech/catapult-sdk-go/packages/faults"
	"github.com/nemtech/catapult-sdk-go/packages/wire"
)

// region NetworkType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// MijinNet is a private network.
	MijinNet NetworkType = 0x60

	// MainNet is the public main network.
	MainNet NetworkType = 0x68

	// PrivateNet is a private network.
	PrivateNet NetworkType = 0x78

	// MijinTestNet is a private test network.
	MijinTestNet NetworkType = 0x90

	// TestNet is the public test network.
	TestNet NetworkType = 0x98

	// PrivateTestNet is a private test network.
	PrivateTestNet NetworkType = 0xA8
)

// NetworkType identifies the network an account or a transaction belongs to.
type NetworkType uint8

var networkTypeMapping = dtomapping.NewEnumMapping(
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: MijinNet, To: wire.MijinNetworkType},
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: MainNet, To: wire.MainNetworkType},
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: PrivateNet, To: wire.PrivateNetworkType},
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: MijinTestNet, To: wire.MijinTestNetworkType},
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: TestNet, To: wire.TestNetworkType},
	dtomapping.EnumPair[NetworkType, wire.NetworkTypeDTO]{From: PrivateTestNet, To: wire.PrivateTestNetworkType},
)

var networkTypeNames = map[NetworkType]string{
	MijinNet:       "MIJIN",
	MainNet:        "MAIN_NET",
	PrivateNet:     "PRIVATE",
	MijinTestNet:   "MIJIN_TEST",
	TestNet:        "TEST_NET",
	PrivateTestNet: "PRIVATE_TEST",
}

// NetworkTypeFromDTO returns the NetworkType of the given wire value.
func NetworkTypeFromDTO(dto wire.NetworkTypeDTO) (NetworkType, error) {
	return networkTypeMapping.Unmap(dto)
}

// NetworkTypeFromString parses a NetworkType from its name (e.g. "TEST_NET") or from one of the identifiers a node
// reports (e.g. "public-test").
func NetworkTypeFromString(name string) (NetworkType, error) {
	normalizedName := strings.ToUpper(strings.TrimSpace(name))
	switch normalizedName {
	case "PUBLIC":
		return MainNet, nil
	case "PUBLIC-TEST":
		return TestNet, nil
	case "PRIVATE-TEST":
		return PrivateTestNet, nil
	case "MIJIN-TEST":
		return MijinTestNet, nil
	}

	for networkType, networkName := range networkTypeNames {
		if networkName == normalizedName {
			return networkType, nil
		}
	}

	return 0, errors.Errorf("unknown network type '%s': %w", name, faults.ErrFormat)
}

// Valid returns true if the NetworkType is a known network.
func (n NetworkType) Valid() bool {
	_, err := networkTypeMapping.Map(n)

	return err == nil
}

// DTO returns the wire value of the NetworkType.
func (n NetworkType) DTO() (wire.NetworkTypeDTO, error) {
	return networkTypeMapping.Map(n)
}

// String returns a human readable version of the NetworkType.
func (n NetworkType) String() string {
	if name, exists := networkTypeNames[n]; exists {
		return name
	}

	return "UNKNOWN"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
