package registry

import (
	"testing"

	"github.com/marwahaha/avrocodec"
)

func TestInMemoryRegisterAndLookup(t *testing.T) {
	r := New()
	schema := avrocodec.NewPrimitiveSchema(avrocodec.TypeString)

	id, err := r.Register("widget-value", schema)
	if err != nil {
		t.Fatalf("Register: %s", err)
	}

	got, ok := r.Lookup(id)
	if !ok {
		t.Fatalf("Lookup(%d) = not found", id)
	}
	if got.String() != schema.String() {
		t.Fatalf("Lookup(%d) = %s, want %s", id, got.String(), schema.String())
	}
}

func TestInMemoryLatestIDTracksMostRecent(t *testing.T) {
	r := New()
	first, _ := r.Register("widget-value", avrocodec.NewPrimitiveSchema(avrocodec.TypeString))
	second, _ := r.Register("widget-value", avrocodec.NewPrimitiveSchema(avrocodec.TypeLong))

	latest, ok := r.LatestID("widget-value")
	if !ok || latest != second {
		t.Fatalf("LatestID = %d, want %d", latest, second)
	}

	if _, ok := r.Lookup(first); !ok {
		t.Fatalf("Lookup(%d) should still resolve the superseded id", first)
	}
}

func TestInMemoryLookupUnknownID(t *testing.T) {
	r := New()
	if _, ok := r.Lookup(42); ok {
		t.Fatalf("Lookup(42) should not resolve on an empty registry")
	}
}
