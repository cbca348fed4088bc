// Package identity provides the identifier a node uses to receive mining
// rewards.
package identity

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// New returns the node identifier. With a key path the identifier is the
// account address of the ECDSA key stored there, so it survives restarts.
// Without one a random identifier is generated.
func New(keyPath string) (string, error) {
	if keyPath == "" {
		return Random(), nil
	}

	return FromKeyFile(keyPath)
}

// Random returns a random identifier made of 32 hex characters.
func Random() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FromKeyFile loads the ECDSA private key at the path and returns its
// account address.
func FromKeyFile(path string) (string, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return "", fmt.Errorf("unable to load private key for node: %w", err)
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}

// Generate creates a new ECDSA private key, stores it at the path and
// returns the account address for it.
func Generate(path string) (string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	if err := crypto.SaveECDSA(path, privateKey); err != nil {
		return "", fmt.Errorf("saving key: %w", err)
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}
