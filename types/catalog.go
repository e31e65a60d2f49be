package types

import "fmt"

// Discriminant is the 32-bit wire tag selecting an UpgradeableLoaderState
// variant. Ordinals are fixed; never renumber them.
type Discriminant uint32

const (
	DiscriminantUninitialized Discriminant = 0
	DiscriminantBuffer        Discriminant = 1
	DiscriminantProgram       Discriminant = 2
	DiscriminantProgramData   Discriminant = 3
)

// DiscriminantSize is the width of the variant tag in bytes.
const DiscriminantSize = 4

// String returns the variant name.
func (d Discriminant) String() string {
	if s, ok := LookupShape(d); ok {
		return s.Name
	}
	return fmt.Sprintf("Discriminant(%d)", uint32(d))
}

// FieldKind identifies the layout rule applied to a payload field.
type FieldKind uint8

const (
	// KindU64 is a little-endian 64-bit unsigned integer.
	KindU64 FieldKind = iota + 1
	// KindPubkey is a raw 32-byte key with no length prefix.
	KindPubkey
	// KindOptionalPubkey is a 0x00/0x01 presence byte followed, when
	// present, by a raw 32-byte key.
	KindOptionalPubkey
)

// OptionNone and OptionSome are the presence flag values of an optional field.
const (
	OptionNone byte = 0x00
	OptionSome byte = 0x01
)

func (k FieldKind) String() string {
	switch k {
	case KindU64:
		return "u64"
	case KindPubkey:
		return "pubkey"
	case KindOptionalPubkey:
		return "option<pubkey>"
	default:
		return fmt.Sprintf("FieldKind(%d)", uint8(k))
	}
}

// MinWidth is the fewest bytes a field of this kind occupies on the wire.
func (k FieldKind) MinWidth() int {
	switch k {
	case KindU64:
		return 8
	case KindPubkey:
		return PubkeySize
	case KindOptionalPubkey:
		return 1
	}
	return 0
}

// MaxWidth is the most bytes a field of this kind occupies on the wire.
func (k FieldKind) MaxWidth() int {
	if k == KindOptionalPubkey {
		return 1 + PubkeySize
	}
	return k.MinWidth()
}

// Field is one entry of a variant payload, in declaration order.
type Field struct {
	Name string
	Kind FieldKind
}

// Shape is the layout of one variant: the tag, then Fields in order,
// with no padding or separators.
type Shape struct {
	Discriminant Discriminant
	Name         string
	Fields       []Field
}

// MinSize is the shortest encoding of the variant, tag included.
func (s Shape) MinSize() int {
	n := DiscriminantSize
	for _, f := range s.Fields {
		n += f.Kind.MinWidth()
	}
	return n
}

// MaxSize is the longest encoding of the variant, tag included. For
// Buffer and ProgramData accounts this is where the raw program bytes start.
func (s Shape) MaxSize() int {
	n := DiscriminantSize
	for _, f := range s.Fields {
		n += f.Kind.MaxWidth()
	}
	return n
}

// catalog is indexed by Discriminant.
var catalog = [...]Shape{
	DiscriminantUninitialized: {
		Discriminant: DiscriminantUninitialized,
		Name:         "Uninitialized",
	},
	DiscriminantBuffer: {
		Discriminant: DiscriminantBuffer,
		Name:         "Buffer",
		Fields: []Field{
			{Name: "authority_address", Kind: KindOptionalPubkey},
		},
	},
	DiscriminantProgram: {
		Discriminant: DiscriminantProgram,
		Name:         "Program",
		Fields: []Field{
			{Name: "programdata_address", Kind: KindPubkey},
		},
	},
	DiscriminantProgramData: {
		Discriminant: DiscriminantProgramData,
		Name:         "ProgramData",
		Fields: []Field{
			{Name: "slot", Kind: KindU64},
			{Name: "upgrade_authority_address", Kind: KindOptionalPubkey},
		},
	},
}

// LookupShape returns the layout registered for d.
func LookupShape(d Discriminant) (Shape, bool) {
	if uint64(d) >= uint64(len(catalog)) {
		return Shape{}, false
	}
	return catalog[d], true
}

// Shapes returns every known layout in ordinal order.
func Shapes() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog[:])
	return out
}

// FieldValue holds one payload field. Which members are meaningful
// depends on Kind: U64 for KindU64, Pubkey for KindPubkey, and
// Present plus Pubkey for KindOptionalPubkey.
type FieldValue struct {
	Kind    FieldKind
	U64     uint64
	Pubkey  Pubkey
	Present bool
}

// Width is the number of bytes the value occupies on the wire.
func (v FieldValue) Width() int {
	if v.Kind == KindOptionalPubkey && v.Present {
		return v.Kind.MaxWidth()
	}
	return v.Kind.MinWidth()
}

func optional(p *Pubkey) FieldValue {
	if p == nil {
		return FieldValue{Kind: KindOptionalPubkey}
	}
	return FieldValue{Kind: KindOptionalPubkey, Pubkey: *p, Present: true}
}

func (v FieldValue) pubkeyPtr() *Pubkey {
	if !v.Present {
		return nil
	}
	p := v.Pubkey
	return &p
}

// FieldValues flattens state into its payload fields, in the order its
// Shape declares them.
func FieldValues(state UpgradeableLoaderState) []FieldValue {
	switch s := state.(type) {
	case Uninitialized:
		return nil
	case Buffer:
		return []FieldValue{optional(s.AuthorityAddress)}
	case Program:
		return []FieldValue{{Kind: KindPubkey, Pubkey: s.ProgramDataAddress}}
	case ProgramData:
		return []FieldValue{
			{Kind: KindU64, U64: s.Slot},
			optional(s.UpgradeAuthorityAddress),
		}
	}
	panic(fmt.Sprintf("loaderstate: unsupported state %T", state))
}

// Assemble builds the variant selected by d from its payload fields.
// The values must match the variant's Shape field for field.
func Assemble(d Discriminant, values []FieldValue) (UpgradeableLoaderState, error) {
	shape, ok := LookupShape(d)
	if !ok {
		return nil, fmt.Errorf("assemble: unknown discriminant %d", uint32(d))
	}
	if len(values) != len(shape.Fields) {
		return nil, fmt.Errorf("assemble %s: got %d fields, want %d", shape.Name, len(values), len(shape.Fields))
	}
	for i, f := range shape.Fields {
		if values[i].Kind != f.Kind {
			return nil, fmt.Errorf("assemble %s.%s: got %s, want %s", shape.Name, f.Name, values[i].Kind, f.Kind)
		}
	}

	switch d {
	case DiscriminantUninitialized:
		return Uninitialized{}, nil
	case DiscriminantBuffer:
		return Buffer{AuthorityAddress: values[0].pubkeyPtr()}, nil
	case DiscriminantProgram:
		return Program{ProgramDataAddress: values[0].Pubkey}, nil
	default:
		return ProgramData{Slot: values[0].U64, UpgradeAuthorityAddress: values[1].pubkeyPtr()}, nil
	}
}
