package avrocodec

import (
	"testing"

	"github.com/google/uuid"
)

func TestReadFixedUUID(t *testing.T) {
	api := DefaultConfig.Freeze()
	u := uuid.New()
	bin, err := u.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %s", err)
	}
	schema := &FixedSchema{Name: "IDFixed", Size: 16}
	schema.SetProp("logicalType", string(LogicalUUID))

	got, err := api.ReadValue(schema, bin)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	readBack, ok := got.(uuid.UUID)
	if !ok || readBack != u {
		t.Fatalf("Read(uuid) = %v, want %s", got, u)
	}
}

func TestReadFixedStringTrimsPadding(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema := &FixedSchema{Name: "CodeFixed", Size: 8}
	schema.SetProp("logicalType", string(LogicalString))

	padded := []byte("ab\x00\x00\x00\x00\x00\x00")
	got, err := api.ReadValue(schema, padded)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	if got != "ab" {
		t.Fatalf("Read(padded string) = %q, want %q", got, "ab")
	}
}

func TestReadFixedUnknownLogicalTypePassesThrough(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema := &FixedSchema{Name: "MysteryFixed", Size: 4}
	schema.SetProp("logicalType", "com.example.Unknown")

	raw := []byte{1, 2, 3, 4}
	got, err := api.ReadValue(schema, raw)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	b, ok := got.([]byte)
	if !ok || len(b) != 4 {
		t.Fatalf("Read(unknown logicalType) = %v", got)
	}
}

func TestReadFixedUnknownLogicalTypeErrorsWhenConfigured(t *testing.T) {
	api := (&Config{OnUnresolvedLogicalType: UnresolvedLogicalTypeError}).Freeze()
	schema := &FixedSchema{Name: "MysteryFixed", Size: 4}
	schema.SetProp("logicalType", "com.example.Unknown")

	if _, err := api.ReadValue(schema, []byte{1, 2, 3, 4}); err == nil {
		t.Fatalf("expected DecodeError for unresolved logicalType")
	}
}

func TestReadUnionNullAndWrapped(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema := &UnionSchema{Types: []Schema{NewPrimitiveSchema(TypeNull), NewPrimitiveSchema(TypeInt)}}

	got, err := api.ReadValue(schema, nil)
	if err != nil || got != nil {
		t.Fatalf("Read(null) = %v, %s", got, err)
	}

	got, err = api.ReadValue(schema, map[string]interface{}{"int": int32(42)})
	if err != nil {
		t.Fatalf("Read(wrapped): %s", err)
	}
	if got != int32(42) {
		t.Fatalf("Read(wrapped) = %v, want 42", got)
	}
}

func TestReadRecordAppliesDefaultForMissingField(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema := &RecordSchema{
		Name: "Widget",
		Fields: []*SchemaField{
			{Name: "id", Type: NewPrimitiveSchema(TypeLong)},
			{Name: "label", Type: NewPrimitiveSchema(TypeString), HasDefault: true, Default: "unnamed"},
		},
	}
	got, err := api.ReadValue(schema, map[string]interface{}{"id": int64(7)})
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("Read = %T, want map[string]interface{}", got)
	}
	if m["label"] != "unnamed" {
		t.Fatalf("label = %v, want unnamed", m["label"])
	}
}

func TestReadArrayRespectsHostContainerShapeProperty(t *testing.T) {
	api := DefaultConfig.Freeze()
	schema, err := api.InferSchema(&ListDescriptor{Elem: &PrimitiveDescriptor{Prim: PrimInt32}, Shape: ShapeSet})
	if err != nil {
		t.Fatalf("InferSchema: %s", err)
	}

	got, err := api.ReadValue(schema, []interface{}{int32(1), int32(2)})
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	items, ok := got.([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("Read(set-shaped array) = %v", got)
	}
}

func TestReadArrayAndMap(t *testing.T) {
	api := DefaultConfig.Freeze()

	arr, err := api.ReadValue(&ArraySchema{Items: NewPrimitiveSchema(TypeInt)}, []interface{}{int32(1), int32(2)})
	if err != nil {
		t.Fatalf("Read(array): %s", err)
	}
	items, ok := arr.([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("Read(array) = %v", arr)
	}

	m, err := api.ReadValue(&MapSchema{Values: NewPrimitiveSchema(TypeString)}, map[string]interface{}{"a": "x"})
	if err != nil {
		t.Fatalf("Read(map): %s", err)
	}
	mv, ok := m.(map[string]interface{})
	if !ok || mv["a"] != "x" {
		t.Fatalf("Read(map) = %v", m)
	}
}
