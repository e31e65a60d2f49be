// Package loaderstate encodes and decodes the account state of the
// upgradeable program loader in the exact byte layout the runtime stores
// on chain (bincode: little-endian, 4-byte variant tag, 1-byte option flag).
//
// The layout of every variant is declared once in the types package
// catalog. The encoder and decoder are hand-written walks over that
// catalog, so the bytes produced here are an explicit contract rather
// than a property of a reflection-based serializer.
//
// All functions are pure: they keep no state and never retain the
// buffers passed to them, so they are safe for concurrent use.
package loaderstate

import "github.com/blockberries/loaderstate/types"

// Codec converts loader states to and from their on-chain bytes.
type Codec interface {
	// Encode returns the canonical encoding of state. It never fails.
	Encode(state types.UpgradeableLoaderState) []byte

	// Decode reads one state from the front of data. Bytes after the
	// decoded record are ignored.
	Decode(data []byte) (types.UpgradeableLoaderState, error)
}

// Compile-time interface check.
var _ Codec = Binary{}

// Binary is the Codec implementing the on-chain layout.
type Binary struct{}

func (Binary) Encode(state types.UpgradeableLoaderState) []byte { return Encode(state) }

func (Binary) Decode(data []byte) (types.UpgradeableLoaderState, error) { return Decode(data) }
