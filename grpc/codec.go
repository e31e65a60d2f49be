// Package loadergrpc plugs the loader account layout into gRPC as a
// message codec, so services exchanging raw loader accounts can send
// decoded states and let the codec produce the on-chain bytes.
// RecordCodec carries the same states as cramberry-serialized records
// for services that already speak cramberry.
//
// The package does no networking of its own.
package loadergrpc

import (
	"fmt"

	"github.com/blockberries/loaderstate"
	"github.com/blockberries/loaderstate/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Name is the gRPC content-subtype the codec registers under.
const Name = "loaderstate"

// Codec implements grpc/encoding.Codec over a loaderstate.Codec.
// Messages are types.UpgradeableLoaderState values (or pointers to them).
type Codec struct {
	// Inner performs the conversion. Nil = loaderstate.Binary.
	Inner loaderstate.Codec
}

// Compile-time interface check.
var _ encoding.Codec = Codec{}

func (c Codec) inner() loaderstate.Codec {
	if c.Inner == nil {
		return loaderstate.Binary{}
	}
	return c.Inner
}

func (c Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case types.UpgradeableLoaderState:
		return c.inner().Encode(m), nil
	case *types.UpgradeableLoaderState:
		if m == nil || *m == nil {
			return nil, fmt.Errorf("loaderstate marshal: nil state")
		}
		return c.inner().Encode(*m), nil
	case nil:
		return nil, fmt.Errorf("loaderstate marshal: nil message")
	default:
		return nil, fmt.Errorf("loaderstate marshal: unsupported message %T", v)
	}
}

func (c Codec) Unmarshal(data []byte, v any) error {
	out, ok := v.(*types.UpgradeableLoaderState)
	if !ok || out == nil {
		return fmt.Errorf("loaderstate unmarshal: want *types.UpgradeableLoaderState, got %T", v)
	}
	state, err := c.inner().Decode(data)
	if err != nil {
		return fmt.Errorf("loaderstate unmarshal: %w", err)
	}
	*out = state
	return nil
}

func (Codec) Name() string { return Name }

// CallOption forces the codec on a client call or connection.
func CallOption() grpc.CallOption {
	return grpc.ForceCodec(Codec{})
}

// ServerOption forces the codec for every message a server handles.
func ServerOption() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec{})
}

func init() {
	encoding.RegisterCodec(Codec{})
}
