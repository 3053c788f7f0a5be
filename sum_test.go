package avrocodec

import "testing"

type shapeCircle struct {
	Radius float64
}

func (shapeCircle) AvroVariantFQN() string { return "com.example.Circle" }

type shapeSquare struct {
	Side float64
}

func (shapeSquare) AvroVariantFQN() string { return "com.example.Square" }

func shapeSumDescriptor() *SumDescriptor {
	circle := &RecordDescriptor{
		FQN:    "com.example.Circle",
		Fields: []*Field{{Position: 0, Name: "radius", Type: &PrimitiveDescriptor{Prim: PrimFloat64}}},
		New: func(args []interface{}) (interface{}, error) {
			return shapeCircle{Radius: args[0].(float64)}, nil
		},
		Values: func(value interface{}) ([]interface{}, error) {
			return []interface{}{value.(shapeCircle).Radius}, nil
		},
	}
	square := &RecordDescriptor{
		FQN:    "com.example.Square",
		Fields: []*Field{{Position: 0, Name: "side", Type: &PrimitiveDescriptor{Prim: PrimFloat64}}},
		New: func(args []interface{}) (interface{}, error) {
			return shapeSquare{Side: args[0].(float64)}, nil
		},
		Values: func(value interface{}) ([]interface{}, error) {
			return []interface{}{value.(shapeSquare).Side}, nil
		},
	}
	return &SumDescriptor{
		FQN: "com.example.Shape",
		Variants: []Variant{
			{UnionIndex: 0, Type: square},
			{UnionIndex: 1, Type: circle},
		},
	}
}

func TestSumRoundTripThroughExtractAndRead(t *testing.T) {
	api := DefaultConfig.Freeze()
	sd := shapeSumDescriptor()

	schema, err := api.InferSchema(sd)
	if err != nil {
		t.Fatalf("InferSchema: %s", err)
	}
	u := schema.(*UnionSchema)

	circle := shapeCircle{Radius: 2.5}
	native, err := api.Extract(u.Types, circle)
	if err != nil {
		t.Fatalf("Extract: %s", err)
	}

	got, err := api.ReadValue(schema, native)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	gotCircle, ok := got.(shapeCircle)
	if !ok || gotCircle != circle {
		t.Fatalf("Read() = %v, want %v", got, circle)
	}
}

func TestSumRejectsNonSumVariantValue(t *testing.T) {
	api := DefaultConfig.Freeze()
	sd := shapeSumDescriptor()
	schema, err := api.InferSchema(sd)
	if err != nil {
		t.Fatalf("InferSchema: %s", err)
	}
	u := schema.(*UnionSchema)

	if _, err := api.Extract(u.Types, 42); err == nil {
		t.Fatalf("expected error extracting a non-SumVariant, non-shape-matching value")
	}
}
