// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte BLAKE3 key. The values are the ASCII domain
// name, zero-padded; changing one invalidates every manifest.
type domainKey [32]byte

var (
	inputDomainKey = domainKey{
		't', 'a', 'g', 'f', 'o', 'r', 'g', 'e', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's',
		't', '.', 'i', 'n', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	outputDomainKey = domainKey{
		't', 'a', 'g', 'f', 'o', 'r', 'g', 'e', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's',
		't', '.', 'o', 'u', 't', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// HashInput digests the bytes of a schema document.
func HashInput(data []byte) Hash {
	return keyedHash(inputDomainKey, data)
}

// HashOutput digests the bytes of a generated file.
func HashOutput(data []byte) Hash {
	return keyedHash(outputDomainKey, data)
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character hex string.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("manifest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// MarshalText encodes the hash as hex for JSON output.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hex hash.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
