package loaderstate

import (
	"encoding/binary"
	"fmt"

	"github.com/blockberries/loaderstate/types"
)

// Encode returns the on-chain encoding of state: the 4-byte little-endian
// variant tag followed by the payload fields in catalog order.
//
// Encode panics if state is nil.
func Encode(state types.UpgradeableLoaderState) []byte {
	return AppendEncode(make([]byte, 0, EncodedSize(state)), state)
}

// AppendEncode appends the encoding of state to dst and returns the
// extended slice.
func AppendEncode(dst []byte, state types.UpgradeableLoaderState) []byte {
	shape := mustShape(state)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(shape.Discriminant))
	for _, v := range types.FieldValues(state) {
		dst = appendField(dst, v)
	}
	return dst
}

// EncodedSize returns len(Encode(state)) without encoding.
func EncodedSize(state types.UpgradeableLoaderState) int {
	mustShape(state)
	n := types.DiscriminantSize
	for _, v := range types.FieldValues(state) {
		n += v.Width()
	}
	return n
}

func appendField(dst []byte, v types.FieldValue) []byte {
	switch v.Kind {
	case types.KindU64:
		return binary.LittleEndian.AppendUint64(dst, v.U64)
	case types.KindPubkey:
		return append(dst, v.Pubkey[:]...)
	case types.KindOptionalPubkey:
		if !v.Present {
			return append(dst, types.OptionNone)
		}
		dst = append(dst, types.OptionSome)
		return append(dst, v.Pubkey[:]...)
	}
	panic(fmt.Sprintf("loaderstate: no encoding rule for field kind %s", v.Kind))
}

func mustShape(state types.UpgradeableLoaderState) types.Shape {
	if state == nil {
		panic("loaderstate: cannot encode nil state")
	}
	shape, ok := types.LookupShape(state.Discriminant())
	if !ok {
		panic(fmt.Sprintf("loaderstate: %T has no catalog entry", state))
	}
	return shape
}
