// Package types defines the account-state shapes understood by the
// upgradeable loader codec and the catalog describing their byte layout.
//
// These are plain Go values with no serialization behaviour of their own.
// The hand-written codec in the root package walks the catalog to
// produce and consume bytes; the cramberry-tagged Record is provided for
// consumers that move decoded state over a cramberry transport.
package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize is the length of a Pubkey in bytes.
const PubkeySize = 32

// Pubkey is an opaque 32-byte account address.
type Pubkey [PubkeySize]byte

// String returns the base58 form of the key.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// ParsePubkey decodes a base58 address.
func ParsePubkey(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("pubkey %q: %w", s, err)
	}
	if len(b) != PubkeySize {
		return Pubkey{}, fmt.Errorf("pubkey %q: decoded to %d bytes, want %d", s, len(b), PubkeySize)
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// MustParsePubkey is like ParsePubkey but panics on error.
// Intended for package-level literals and tests.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Ptr returns a pointer to a copy of p, for filling optional fields.
func (p Pubkey) Ptr() *Pubkey {
	return &p
}
