package loadergrpc

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/blockberries/loaderstate/types"
	"google.golang.org/grpc/encoding"
)

// RecordName is the gRPC content-subtype RecordCodec registers under.
const RecordName = "loaderstate-record"

// RecordCodec implements grpc/encoding.Codec by carrying loader states
// as cramberry-serialized types.Record values. Use it between services
// that already speak cramberry; the on-chain layout is Codec.
type RecordCodec struct{}

// Compile-time interface check.
var _ encoding.Codec = RecordCodec{}

func (RecordCodec) Marshal(v any) ([]byte, error) {
	var rec types.Record
	switch m := v.(type) {
	case types.UpgradeableLoaderState:
		rec = types.ToRecord(m)
	case *types.UpgradeableLoaderState:
		if m == nil || *m == nil {
			return nil, fmt.Errorf("cramberry marshal: nil state")
		}
		rec = types.ToRecord(*m)
	case types.Record:
		rec = m
	case *types.Record:
		if m == nil {
			return nil, fmt.Errorf("cramberry marshal: nil record")
		}
		rec = *m
	default:
		return nil, fmt.Errorf("cramberry marshal: unsupported message %T", v)
	}
	data, err := cramberry.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (RecordCodec) Unmarshal(data []byte, v any) error {
	var rec types.Record
	if err := cramberry.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("cramberry unmarshal: %w", err)
	}
	switch out := v.(type) {
	case *types.UpgradeableLoaderState:
		if out == nil {
			break
		}
		state, err := rec.State()
		if err != nil {
			return fmt.Errorf("cramberry unmarshal: %w", err)
		}
		*out = state
		return nil
	case *types.Record:
		if out == nil {
			break
		}
		// Validate before handing the record out.
		if _, err := rec.State(); err != nil {
			return fmt.Errorf("cramberry unmarshal: %w", err)
		}
		*out = rec
		return nil
	}
	return fmt.Errorf("cramberry unmarshal: unsupported target %T", v)
}

func (RecordCodec) Name() string { return RecordName }

func init() {
	encoding.RegisterCodec(RecordCodec{})
}
