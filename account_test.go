package loaderstate_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blockberries/loaderstate"
	loaderstatetest "github.com/blockberries/loaderstate/testing"
	"github.com/blockberries/loaderstate/types"
	"github.com/google/go-cmp/cmp"
)

var elf = []byte{0x7F, 'E', 'L', 'F', 0x02, 0x01, 0x01}

// account lays out an on-chain account: the encoded state padded to the
// variant's metadata size, then program bytes.
func account(state types.UpgradeableLoaderState, program []byte) []byte {
	shape, _ := types.LookupShape(state.Discriminant())
	data := loaderstate.Encode(state)
	data = append(data, make([]byte, shape.MaxSize()-len(data))...)
	return append(data, program...)
}

func TestProgramBytes(t *testing.T) {
	cases := []struct {
		name  string
		state types.UpgradeableLoaderState
		start int
	}{
		{"buffer_no_authority", types.Buffer{}, 37},
		{"buffer_authority", types.Buffer{AuthorityAddress: authority.Ptr()}, 37},
		{"programdata_no_authority", types.ProgramData{Slot: 9}, 45},
		{"programdata_authority", types.ProgramData{Slot: 9, UpgradeAuthorityAddress: authority.Ptr()}, 45},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := account(c.state, elf)
			if len(data) != c.start+len(elf) {
				t.Fatalf("account length %d, want %d", len(data), c.start+len(elf))
			}
			state, program, err := loaderstate.ProgramBytes(data)
			if err != nil {
				t.Fatalf("ProgramBytes: %v", err)
			}
			if diff := cmp.Diff(c.state, state); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
			if !bytes.Equal(program, elf) {
				t.Errorf("program bytes: got %x, want %x", program, elf)
			}
		})
	}
}

func TestProgramBytes_NoProgramData(t *testing.T) {
	for _, state := range []types.UpgradeableLoaderState{
		types.Uninitialized{},
		types.Program{ProgramDataAddress: pdAddress},
	} {
		data := append(loaderstate.Encode(state), elf...)
		got, program, err := loaderstate.ProgramBytes(data)
		if err != nil {
			t.Fatalf("%s: ProgramBytes: %v", state.Discriminant(), err)
		}
		if program != nil {
			t.Errorf("%s: expected nil program bytes, got %x", state.Discriminant(), program)
		}
		if diff := cmp.Diff(state, got); diff != "" {
			t.Errorf("%s: state mismatch (-want +got):\n%s", state.Discriminant(), diff)
		}
	}
}

func TestProgramBytes_ShortMetadata(t *testing.T) {
	// Without an authority these decode from 5 and 13 bytes, but their
	// metadata regions are 37 and 45 bytes.
	cases := []struct {
		state      types.UpgradeableLoaderState
		field      string
		need, have int
	}{
		{types.Buffer{}, "Buffer metadata", 37, 5},
		{types.ProgramData{Slot: 116855505}, "ProgramData metadata", 45, 13},
	}
	for _, c := range cases {
		data := loaderstate.Encode(c.state)
		state, program, err := loaderstate.ProgramBytes(data)
		e, ok := loaderstate.IsTruncated(err)
		if !ok {
			t.Fatalf("%s: expected TruncatedInputError, got %v", c.field, err)
		}
		if e.Field != c.field || e.Need != c.need || e.Have != c.have {
			t.Errorf("%s: unexpected error detail: %+v", c.field, e)
		}
		if state != nil || program != nil {
			t.Errorf("%s: expected no results on failure", c.field)
		}
	}
}

func TestDecodeAll(t *testing.T) {
	vectors := loaderstatetest.Vectors()
	accounts := make([][]byte, 0, len(vectors)*4)
	var want []types.UpgradeableLoaderState
	for i := 0; i < 4; i++ {
		for _, v := range vectors {
			accounts = append(accounts, append(v.Bytes(), elf...))
			want = append(want, v.State)
		}
	}

	got, err := loaderstate.DecodeAll(context.Background(), accounts)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DecodeAll mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAll_Error(t *testing.T) {
	accounts := [][]byte{
		loaderstate.Encode(types.Uninitialized{}),
		{0x04, 0x00, 0x00, 0x00},
		loaderstate.Encode(types.Buffer{}),
	}
	got, err := loaderstate.DecodeAll(context.Background(), accounts)
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Fatalf("expected no results on failure, got %d", len(got))
	}
	if _, ok := loaderstate.IsUnknownDiscriminant(err); !ok {
		t.Fatalf("expected UnknownDiscriminantError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "account 1: ") {
		t.Errorf("error does not name the failing account: %v", err)
	}
}

func TestDecodeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	accounts := [][]byte{loaderstate.Encode(types.Uninitialized{})}
	if _, err := loaderstate.DecodeAll(ctx, accounts); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeAll_Empty(t *testing.T) {
	got, err := loaderstate.DecodeAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
