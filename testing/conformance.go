package loaderstatetest

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/blockberries/loaderstate"
	"github.com/google/go-cmp/cmp"
)

// RunConformanceSuite checks a Codec against the on-chain layout:
// exact bytes for every vector, round-trips, tolerance of trailing
// program data, and the two failure kinds.
func RunConformanceSuite(t *testing.T, codec loaderstate.Codec) {
	t.Helper()

	t.Run("encode_vectors", func(t *testing.T) {
		for _, v := range Vectors() {
			got := codec.Encode(v.State)
			if want := v.Bytes(); !bytes.Equal(got, want) {
				t.Errorf("%s: encoding mismatch\n got: %x\nwant: %x", v.Name, got, want)
			}
		}
	})

	t.Run("decode_vectors", func(t *testing.T) {
		for _, v := range Vectors() {
			got, err := codec.Decode(v.Bytes())
			if err != nil {
				t.Errorf("%s: Decode failed: %v", v.Name, err)
				continue
			}
			if diff := cmp.Diff(v.State, got); diff != "" {
				t.Errorf("%s: decoded state mismatch (-want +got):\n%s", v.Name, diff)
			}
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		for _, v := range Vectors() {
			got, err := codec.Decode(codec.Encode(v.State))
			if err != nil {
				t.Errorf("%s: Decode(Encode) failed: %v", v.Name, err)
				continue
			}
			if diff := cmp.Diff(v.State, got); diff != "" {
				t.Errorf("%s: round-trip mismatch (-want +got):\n%s", v.Name, diff)
			}
		}
	})

	t.Run("trailing_bytes_ignored", func(t *testing.T) {
		trailer := bytes.Repeat([]byte{0x7F, 0x45, 0x4C, 0x46}, 16)
		for _, v := range Vectors() {
			data := append(v.Bytes(), trailer...)
			got, err := codec.Decode(data)
			if err != nil {
				t.Errorf("%s: Decode with trailer failed: %v", v.Name, err)
				continue
			}
			if diff := cmp.Diff(v.State, got); diff != "" {
				t.Errorf("%s: trailer changed result (-want +got):\n%s", v.Name, diff)
			}
		}
	})

	t.Run("truncated_prefixes", func(t *testing.T) {
		for _, v := range Vectors() {
			full := v.Bytes()
			for n := 0; n < len(full); n++ {
				got, err := codec.Decode(full[:n])
				if _, ok := loaderstate.IsTruncated(err); !ok {
					t.Errorf("%s[:%d]: expected TruncatedInputError, got %v", v.Name, n, err)
				}
				if got != nil {
					t.Errorf("%s[:%d]: expected no state on failure, got %+v", v.Name, n, got)
				}
			}
		}
	})

	t.Run("unknown_discriminant", func(t *testing.T) {
		for _, tag := range []uint32{4, 5, 0x100, 0xFFFFFFFF} {
			data := binary.LittleEndian.AppendUint32(nil, tag)
			data = append(data, make([]byte, 64)...)
			got, err := codec.Decode(data)
			e, ok := loaderstate.IsUnknownDiscriminant(err)
			if !ok {
				t.Errorf("tag %d: expected UnknownDiscriminantError, got %v", tag, err)
				continue
			}
			if e.Value != tag {
				t.Errorf("tag %d: error reports %d", tag, e.Value)
			}
			if got != nil {
				t.Errorf("tag %d: expected no state on failure, got %+v", tag, got)
			}
		}
	})

	t.Run("invalid_presence_flag", func(t *testing.T) {
		data := ReferenceVector.Bytes()
		data[12] = 0x02
		if _, err := codec.Decode(data); err == nil {
			t.Error("expected presence flag 0x02 to be rejected")
		} else if _, ok := loaderstate.IsUnknownDiscriminant(err); !ok {
			t.Errorf("expected UnknownDiscriminantError, got %v", err)
		}
	})

	t.Run("concurrent_use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, v := range Vectors() {
					if !bytes.Equal(codec.Encode(v.State), v.Bytes()) {
						t.Errorf("%s: concurrent encoding mismatch", v.Name)
					}
					if _, err := codec.Decode(v.Bytes()); err != nil {
						t.Errorf("%s: concurrent Decode failed: %v", v.Name, err)
					}
				}
			}()
		}
		wg.Wait()
	})
}
