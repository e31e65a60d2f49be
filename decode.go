package loaderstate

import (
	"encoding/binary"
	"fmt"

	"github.com/blockberries/loaderstate/types"
)

const stateField = "UpgradeableLoaderState"

// Decode reads one state from the front of data. Bytes following the
// record (such as raw program data after a Buffer or ProgramData header)
// are ignored.
//
// Errors are *TruncatedInputError or *UnknownDiscriminantError. No
// partial state is returned alongside an error.
func Decode(data []byte) (types.UpgradeableLoaderState, error) {
	state, _, err := DecodePrefix(data)
	return state, err
}

// DecodePrefix is like Decode but also reports how many bytes the record
// occupied.
func DecodePrefix(data []byte) (types.UpgradeableLoaderState, int, error) {
	r := reader{buf: data}

	tag, err := r.u32(stateField)
	if err != nil {
		return nil, 0, err
	}
	shape, ok := types.LookupShape(types.Discriminant(tag))
	if !ok {
		return nil, 0, NewUnknownDiscriminantError(stateField, 0, tag)
	}

	values := make([]types.FieldValue, len(shape.Fields))
	for i, f := range shape.Fields {
		v, err := r.field(shape.Name+"."+f.Name, f.Kind)
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
	}

	state, err := types.Assemble(shape.Discriminant, values)
	if err != nil {
		// Values were read from the same shape; this is a catalog bug.
		panic(err)
	}
	return state, r.off, nil
}

// reader consumes a buffer front to back.
type reader struct {
	buf []byte
	off int
}

func (r *reader) next(field string, n int) ([]byte, error) {
	if have := len(r.buf) - r.off; have < n {
		return nil, NewTruncatedInputError(field, r.off, n, have)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u32(field string) (uint32, error) {
	b, err := r.next(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) field(name string, kind types.FieldKind) (types.FieldValue, error) {
	v := types.FieldValue{Kind: kind}
	switch kind {
	case types.KindU64:
		b, err := r.next(name, 8)
		if err != nil {
			return v, err
		}
		v.U64 = binary.LittleEndian.Uint64(b)

	case types.KindPubkey:
		b, err := r.next(name, types.PubkeySize)
		if err != nil {
			return v, err
		}
		copy(v.Pubkey[:], b)

	case types.KindOptionalPubkey:
		off := r.off
		flag, err := r.next(name, 1)
		if err != nil {
			return v, err
		}
		switch flag[0] {
		case types.OptionNone:
			return v, nil
		case types.OptionSome:
		default:
			return v, NewUnknownDiscriminantError(name, off, uint32(flag[0]))
		}
		b, err := r.next(name, types.PubkeySize)
		if err != nil {
			return v, err
		}
		copy(v.Pubkey[:], b)
		v.Present = true

	default:
		panic(fmt.Sprintf("loaderstate: no decoding rule for field kind %s", kind))
	}
	return v, nil
}
