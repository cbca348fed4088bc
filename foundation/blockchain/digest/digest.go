// Package digest provides the hashing support every node must agree on
// bit for bit.
package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns the hex encoded SHA-256 of the canonical encoding of the value.
func Hash(value any) string {
	data, err := Canonical(value)
	if err != nil {
		return ZeroHash
	}

	return Sum(data)
}

// Sum returns the hex encoded SHA-256 of the data.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Canonical produces a JSON encoding of the value with every object's keys
// sorted. Numbers keep their literal text so a value decoded from a peer
// re-encodes to the same bytes.
func Canonical(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Decoding into generic values turns every object into a map, and the
	// encoder always writes map keys in sorted order.
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
