package avrocodec

import (
	"testing"

	"github.com/google/uuid"
)

func TestExtractPrimitives(t *testing.T) {
	api := DefaultConfig.Freeze()

	cases := []struct {
		schema Schema
		value  interface{}
		want   interface{}
	}{
		{NewPrimitiveSchema(TypeBoolean), true, true},
		{NewPrimitiveSchema(TypeInt), int32(7), int32(7)},
		{NewPrimitiveSchema(TypeLong), int64(9000), int64(9000)},
		{NewPrimitiveSchema(TypeString), "hello", "hello"},
		{NewPrimitiveSchema(TypeBytes), []byte("ab"), []byte("ab")},
	}
	for _, c := range cases {
		got, err := api.Extract([]Schema{c.schema}, c.value)
		if err != nil {
			t.Fatalf("Extract(%v): %s", c.value, err)
		}
		if b, ok := got.([]byte); ok {
			if string(b) != string(c.want.([]byte)) {
				t.Fatalf("Extract(%v) = %v, want %v", c.value, got, c.want)
			}
			continue
		}
		if got != c.want {
			t.Fatalf("Extract(%v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestExtractOptionNilPointer(t *testing.T) {
	api := DefaultConfig.Freeze()
	candidates := []Schema{NewPrimitiveSchema(TypeNull), NewPrimitiveSchema(TypeInt)}

	var nilPtr *int32
	got, err := api.Extract(candidates, nilPtr)
	if err != nil {
		t.Fatalf("Extract(nil): %s", err)
	}
	if got != nil {
		t.Fatalf("Extract(nil) = %v, want nil", got)
	}

	three := int32(3)
	got, err = api.Extract(candidates, &three)
	if err != nil {
		t.Fatalf("Extract(&3): %s", err)
	}
	wrapped, ok := got.(map[string]interface{})
	if !ok || wrapped["int"] != int32(3) {
		t.Fatalf("Extract(&3) = %v", got)
	}
}

func TestExtractUUID(t *testing.T) {
	api := DefaultConfig.Freeze()
	u := uuid.New()
	got, err := api.Extract([]Schema{&FixedSchema{Name: "UUIDFixed", Size: 16}}, u)
	if err != nil {
		t.Fatalf("Extract(uuid): %s", err)
	}
	b, ok := got.([]byte)
	if !ok || len(b) != 16 {
		t.Fatalf("Extract(uuid) = %v", got)
	}
	roundTripped, err := uuid.FromBytes(b)
	if err != nil || roundTripped != u {
		t.Fatalf("uuid round trip failed: %s, %s", roundTripped, err)
	}
}

func TestExtractEnumRejectsUnknownSymbol(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema := &EnumSchema{Name: "colors", Symbols: []string{"red", "green", "blue"}}
	if _, err := api.Extract([]Schema{schema}, "brown"); err == nil {
		t.Fatalf("expected error for unknown enum symbol")
	}
	got, err := api.Extract([]Schema{schema}, "green")
	if err != nil || got != "green" {
		t.Fatalf("Extract(green) = %v, %s", got, err)
	}
}

func TestExtractArrayAndMap(t *testing.T) {
	api := DefaultConfig.Freeze()

	arr, err := api.Extract([]Schema{&ArraySchema{Items: NewPrimitiveSchema(TypeInt)}}, []int32{1, 2, 3})
	if err != nil {
		t.Fatalf("Extract(array): %s", err)
	}
	items, ok := arr.([]interface{})
	if !ok || len(items) != 3 {
		t.Fatalf("Extract(array) = %v", arr)
	}

	m, err := api.Extract([]Schema{&MapSchema{Values: NewPrimitiveSchema(TypeString)}}, map[string]string{"a": "x"})
	if err != nil {
		t.Fatalf("Extract(map): %s", err)
	}
	mv, ok := m.(map[string]interface{})
	if !ok || mv["a"] != "x" {
		t.Fatalf("Extract(map) = %v", m)
	}
}

func TestExtractFixedIntAndLong(t *testing.T) {
	api := DefaultConfig.Freeze()

	intFixed := &FixedSchema{Name: "IntFixed", Size: 4}
	intFixed.SetProp("logicalType", string(LogicalInt))
	got, err := api.Extract([]Schema{intFixed}, int32(258))
	if err != nil {
		t.Fatalf("Extract(fixed-int): %s", err)
	}
	b := got.([]byte)
	if len(b) != 4 || b[2] != 1 || b[3] != 2 {
		t.Fatalf("Extract(fixed-int) = %v", b)
	}

	longFixed := &FixedSchema{Name: "LongFixed", Size: 8}
	longFixed.SetProp("logicalType", string(LogicalLong))
	got, err = api.Extract([]Schema{longFixed}, int64(1))
	if err != nil {
		t.Fatalf("Extract(fixed-long): %s", err)
	}
	b = got.([]byte)
	if len(b) != 8 || b[7] != 1 {
		t.Fatalf("Extract(fixed-long) = %v", b)
	}
}
