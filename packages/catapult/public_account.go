package catapult

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// PublicAccount is the public key of an account together with the Address it has on a network.
type PublicAccount struct {
	publicKey ed25519.PublicKey
	address   Address
}

// NewPublicAccount creates the PublicAccount of a public key on the given network.
func NewPublicAccount(publicKey ed25519.PublicKey, networkType NetworkType) PublicAccount {
	return PublicAccount{
		publicKey: publicKey,
		address:   NewAddress(publicKey, networkType),
	}
}

// PublicAccountFromHex creates a PublicAccount from a hex encoded public key.
func PublicAccountFromHex(publicKeyHex string, networkType NetworkType) (publicAccount PublicAccount, err error) {
	publicKeyBytes, err := hex.DecodeString(strings.TrimSpace(publicKeyHex))
	if err != nil {
		err = errors.Errorf("failed to decode public key '%s' (%v): %w", publicKeyHex, err, faults.ErrFormat)
		return
	}
	if len(publicKeyBytes) != ed25519.PublicKeySize {
		err = errors.Errorf("public key must have %d bytes: %w", ed25519.PublicKeySize, faults.ErrLength)
		return
	}

	var publicKey ed25519.PublicKey
	copy(publicKey[:], publicKeyBytes)

	return NewPublicAccount(publicKey, networkType), nil
}

// PublicKey returns the public key of the account.
func (p PublicAccount) PublicKey() ed25519.PublicKey {
	return p.publicKey
}

// Address returns the Address of the account.
func (p PublicAccount) Address() Address {
	return p.address
}

// Hex returns the upper case hex encoded version of the public key.
func (p PublicAccount) Hex() string {
	return strings.ToUpper(hex.EncodeToString(p.publicKey[:]))
}

// Equals returns true if both PublicAccounts share the public key and the network.
func (p PublicAccount) Equals(other PublicAccount) bool {
	return p.publicKey == other.publicKey && p.address.Equals(other.address)
}

// String returns a human readable version of the PublicAccount.
func (p PublicAccount) String() string {
	return stringify.Struct("PublicAccount",
		stringify.StructField("publicKey", p.Hex()),
		stringify.StructField("address", p.address.Plain()),
	)
}
