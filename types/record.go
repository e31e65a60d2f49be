package types

import "fmt"

// Record is a flattened UpgradeableLoaderState for cramberry transports.
// Fields that the variant does not carry are left zero.
//
// Record is not the on-chain layout; use the root package codec for that.
// The grpc package's RecordCodec marshals it with cramberry.
type Record struct {
	Kind Discriminant `cramberry:"1"`
	// Set for Buffer and ProgramData when an authority exists.
	Authority *Pubkey `cramberry:"2"`
	// Set for Program only.
	ProgramDataAddress *Pubkey `cramberry:"3"`
	// Meaningful for ProgramData only.
	Slot uint64 `cramberry:"4"`
}

// ToRecord flattens state.
func ToRecord(state UpgradeableLoaderState) Record {
	switch s := state.(type) {
	case Uninitialized:
		return Record{Kind: DiscriminantUninitialized}
	case Buffer:
		return Record{Kind: DiscriminantBuffer, Authority: clonePubkey(s.AuthorityAddress)}
	case Program:
		return Record{Kind: DiscriminantProgram, ProgramDataAddress: s.ProgramDataAddress.Ptr()}
	case ProgramData:
		return Record{
			Kind:      DiscriminantProgramData,
			Authority: clonePubkey(s.UpgradeAuthorityAddress),
			Slot:      s.Slot,
		}
	}
	panic(fmt.Sprintf("loaderstate: unsupported state %T", state))
}

// State rebuilds the variant described by r. Records carrying fields
// their variant does not have are rejected.
func (r Record) State() (UpgradeableLoaderState, error) {
	switch r.Kind {
	case DiscriminantUninitialized:
		if r.Authority != nil || r.ProgramDataAddress != nil || r.Slot != 0 {
			return nil, fmt.Errorf("record %s: unexpected payload", r.Kind)
		}
		return Uninitialized{}, nil
	case DiscriminantBuffer:
		if r.ProgramDataAddress != nil || r.Slot != 0 {
			return nil, fmt.Errorf("record %s: unexpected payload", r.Kind)
		}
		return Buffer{AuthorityAddress: clonePubkey(r.Authority)}, nil
	case DiscriminantProgram:
		if r.ProgramDataAddress == nil {
			return nil, fmt.Errorf("record %s: missing programdata address", r.Kind)
		}
		if r.Authority != nil || r.Slot != 0 {
			return nil, fmt.Errorf("record %s: unexpected payload", r.Kind)
		}
		return Program{ProgramDataAddress: *r.ProgramDataAddress}, nil
	case DiscriminantProgramData:
		if r.ProgramDataAddress != nil {
			return nil, fmt.Errorf("record %s: unexpected payload", r.Kind)
		}
		return ProgramData{Slot: r.Slot, UpgradeAuthorityAddress: clonePubkey(r.Authority)}, nil
	default:
		return nil, fmt.Errorf("record: unknown kind %s", r.Kind)
	}
}

func clonePubkey(p *Pubkey) *Pubkey {
	if p == nil {
		return nil
	}
	return p.Ptr()
}
