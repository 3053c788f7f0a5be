package avrocodec

import "testing"

func TestPrimitiveSchemaString(t *testing.T) {
	s := NewPrimitiveSchema(TypeLong)
	if got, want := s.String(), `"long"`; got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}

func TestPrimitiveSchemaWithLogicalType(t *testing.T) {
	s := NewPrimitiveSchema(TypeString)
	s.SetProp("logicalType", "com.example.Email")
	logical, ok := logicalTypeOf(s)
	if !ok || logical != "com.example.Email" {
		t.Fatalf("logicalTypeOf = %q, %v", logical, ok)
	}
}

func TestUnionSchemaIsNullable(t *testing.T) {
	u := &UnionSchema{Types: []Schema{NewPrimitiveSchema(TypeNull), NewPrimitiveSchema(TypeString)}}
	inner, ok := u.IsNullable()
	if !ok {
		t.Fatalf("expected nullable union")
	}
	if inner.Type() != TypeString {
		t.Fatalf("inner = %s, want string", inner.Type())
	}

	notNullable := &UnionSchema{Types: []Schema{NewPrimitiveSchema(TypeInt), NewPrimitiveSchema(TypeString)}}
	if _, ok := notNullable.IsNullable(); ok {
		t.Fatalf("expected non-nullable union")
	}
}

func TestRecordSchemaFullName(t *testing.T) {
	rs := &RecordSchema{Name: "Widget", Namespace: "com.example"}
	if got, want := rs.FullName(), "com.example.Widget"; got != want {
		t.Fatalf("FullName() = %s, want %s", got, want)
	}

	noNamespace := &RecordSchema{Name: "Widget"}
	if got, want := noNamespace.FullName(), "Widget"; got != want {
		t.Fatalf("FullName() = %s, want %s", got, want)
	}
}

func TestRecordSchemaFieldByName(t *testing.T) {
	rs := &RecordSchema{Fields: []*SchemaField{
		{Name: "id", Type: NewPrimitiveSchema(TypeLong)},
		{Name: "name", Type: NewPrimitiveSchema(TypeString)},
	}}
	if f := rs.FieldByName("name"); f == nil || f.Type.Type() != TypeString {
		t.Fatalf("FieldByName(name) = %+v", f)
	}
	if f := rs.FieldByName("missing"); f != nil {
		t.Fatalf("FieldByName(missing) = %+v, want nil", f)
	}
}

func TestArraySchemaString(t *testing.T) {
	s := &ArraySchema{Items: NewPrimitiveSchema(TypeInt)}
	want := `{"items":"int","type":"array"}`
	if got := s.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
