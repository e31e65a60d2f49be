package loadergrpc_test

import (
	"testing"

	"github.com/blockberries/cramberry/pkg/cramberry"
	loadergrpc "github.com/blockberries/loaderstate/grpc"
	loaderstatetest "github.com/blockberries/loaderstate/testing"
	"github.com/blockberries/loaderstate/types"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/encoding"
)

func TestRecordCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(loadergrpc.RecordName)
	if c == nil {
		t.Fatalf("codec %q not registered", loadergrpc.RecordName)
	}
	if c.Name() != loadergrpc.RecordName {
		t.Fatalf("unexpected name %q", c.Name())
	}
}

func TestRecordCodec_StateRoundTrip(t *testing.T) {
	c := loadergrpc.RecordCodec{}
	for _, v := range loaderstatetest.Vectors() {
		data, err := c.Marshal(v.State)
		if err != nil {
			t.Fatalf("%s: Marshal: %v", v.Name, err)
		}
		var got types.UpgradeableLoaderState
		if err := c.Unmarshal(data, &got); err != nil {
			t.Fatalf("%s: Unmarshal: %v", v.Name, err)
		}
		if diff := cmp.Diff(v.State, got); diff != "" {
			t.Fatalf("%s: round-trip mismatch (-want +got):\n%s", v.Name, diff)
		}
	}
}

func TestRecordCodec_MatchesCramberry(t *testing.T) {
	state := loaderstatetest.ReferenceVector.State
	data, err := loadergrpc.RecordCodec{}.Marshal(&state)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var rec types.Record
	if err := cramberry.Unmarshal(data, &rec); err != nil {
		t.Fatalf("cramberry.Unmarshal: %v", err)
	}
	if diff := cmp.Diff(types.ToRecord(state), rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	var out types.Record
	if err := (loadergrpc.RecordCodec{}).Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal into Record: %v", err)
	}
	if diff := cmp.Diff(rec, out); diff != "" {
		t.Fatalf("Unmarshal record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordCodec_InvalidRecord(t *testing.T) {
	// A Program record without its address is not a valid state.
	data, err := cramberry.Marshal(types.Record{Kind: types.DiscriminantProgram})
	if err != nil {
		t.Fatalf("cramberry.Marshal: %v", err)
	}
	var got types.UpgradeableLoaderState
	if err := (loadergrpc.RecordCodec{}).Unmarshal(data, &got); err == nil {
		t.Fatal("expected error for invalid record")
	}
	if got != nil {
		t.Fatalf("target written on failure: %+v", got)
	}
	var rec types.Record
	if err := (loadergrpc.RecordCodec{}).Unmarshal(data, &rec); err == nil {
		t.Fatal("expected error for invalid record target")
	}
}

func TestRecordCodec_Unsupported(t *testing.T) {
	c := loadergrpc.RecordCodec{}
	if _, err := c.Marshal(42); err == nil {
		t.Error("expected Marshal error for int message")
	}
	var empty types.UpgradeableLoaderState
	if _, err := c.Marshal(&empty); err == nil {
		t.Error("expected Marshal error for pointer to nil state")
	}
	data, err := c.Marshal(types.Uninitialized{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var wrong types.Buffer
	if err := c.Unmarshal(data, &wrong); err == nil {
		t.Error("expected Unmarshal error for concrete target")
	}
}
