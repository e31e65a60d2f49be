package loaderstatetest

import (
	"sync/atomic"

	"github.com/blockberries/loaderstate"
	"github.com/blockberries/loaderstate/types"
)

// Compile-time interface check.
var _ loaderstate.Codec = (*MockCodec)(nil)

// MockCodec is a configurable Codec for testing code that consumes one.
// Unconfigured methods fall through to loaderstate.Binary. Calls are
// counted and MockCodec is safe for concurrent use.
type MockCodec struct {
	EncodeFn func(types.UpgradeableLoaderState) []byte
	DecodeFn func([]byte) (types.UpgradeableLoaderState, error)

	encodes atomic.Int64
	decodes atomic.Int64
}

func (m *MockCodec) Encode(state types.UpgradeableLoaderState) []byte {
	m.encodes.Add(1)
	if m.EncodeFn != nil {
		return m.EncodeFn(state)
	}
	return loaderstate.Encode(state)
}

func (m *MockCodec) Decode(data []byte) (types.UpgradeableLoaderState, error) {
	m.decodes.Add(1)
	if m.DecodeFn != nil {
		return m.DecodeFn(data)
	}
	return loaderstate.Decode(data)
}

// EncodeCalls returns how many times Encode was called.
func (m *MockCodec) EncodeCalls() int64 { return m.encodes.Load() }

// DecodeCalls returns how many times Decode was called.
func (m *MockCodec) DecodeCalls() int64 { return m.decodes.Load() }
