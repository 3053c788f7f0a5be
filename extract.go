package avrocodec

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Extract converts a host value into the generic Avro in-memory form
// goavro expects, against the given candidate field schemas (spec.md
// §4.2). candidates has length 1 for a non-union field and >=2 for a
// union field (Option or Sum); dispatch is driven by the runtime shape of
// value, exactly as spec.md describes, with two Go-specific adaptations
// documented in DESIGN.md: a nil/non-nil pointer stands in for
// None/Some(x), and Sum variants identify themselves via the SumVariant
// interface rather than isInstanceOf-style runtime type tests.
func (api *frozenAPI) Extract(candidates []Schema, value interface{}) (interface{}, error) {
	if len(candidates) == 0 {
		return nil, encodeErrorf("<none>", "no candidate schemas supplied")
	}

	if value == nil || isNilValue(value) {
		return extractNull(candidates)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		// A non-nil pointer stands in for Some(x): dereference to the
		// wrapped value but keep the full candidate list (including the
		// null member) so the union-wrapping step below still applies --
		// goavro's non-null union values must be handed over as
		// map[string]interface{}{typeName: value}, never bare.
		value = rv.Elem().Interface()
		rv = reflect.ValueOf(value)
	}

	if u, ok := value.(uuid.UUID); ok {
		return api.extractUUID(candidates, u)
	}

	if len(candidates) > 1 {
		return api.extractUnion(candidates, value, rv)
	}

	return api.extractAgainst(candidates[0], value, rv)
}

func isNilValue(value interface{}) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func extractNull(candidates []Schema) (interface{}, error) {
	for _, c := range candidates {
		if c.Type() == TypeNull {
			return nil, nil
		}
	}
	return nil, encodeErrorf(candidates[0].String(), "no member schema types support datum: received nil")
}


// extractUnion handles Option (2 candidates, one null) and Sum (N record
// candidates) fields once the nil/pointer and null cases are already
// ruled out -- value is known non-nil here.
func (api *frozenAPI) extractUnion(candidates []Schema, value interface{}, rv reflect.Value) (interface{}, error) {
	u, err := buildUnionIndex(candidates)
	if err != nil {
		return nil, err
	}

	if sv, ok := value.(SumVariant); ok {
		member, idx, err := u.mustByName(sv.AvroVariantFQN())
		if err != nil {
			return nil, wrapEncodeError(candidates[0].String(), err)
		}
		inner, err := api.extractAgainst(member, value, rv)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{unionMemberName(candidates[idx]): inner}, nil
	}

	// Option(primitive/record/...): the value's own runtime shape picks
	// the matching non-null member, which is then wrapped in goavro's
	// single-keyed union form.
	for i, c := range candidates {
		if shapeCompatible(c, rv) {
			inner, err := api.extractAgainst(c, value, rv)
			if err != nil {
				continue
			}
			return map[string]interface{}{unionMemberName(candidates[i]): inner}, nil
		}
	}
	return nil, encodeErrorf(candidates[0].String(), "no member schema types support datum: allowed types: %v; received: %T", u.allowedTypeNames(), value)
}

func shapeCompatible(s Schema, rv reflect.Value) bool {
	switch s.Type() {
	case TypeBoolean:
		return rv.Kind() == reflect.Bool
	case TypeInt, TypeLong:
		return rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Uint64
	case TypeFloat, TypeDouble:
		return rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
	case TypeString:
		return rv.Kind() == reflect.String
	case TypeBytes:
		return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
	case TypeArray:
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case TypeMap:
		return rv.Kind() == reflect.Map
	case TypeRecord:
		return rv.Kind() == reflect.Struct
	case TypeEnum:
		return rv.Kind() == reflect.String
	default:
		return false
	}
}

// extractUUID encodes a UUID as a 16-byte big-endian fixed value
// (spec.md §3, §4.2).
func (api *frozenAPI) extractUUID(candidates []Schema, u uuid.UUID) (interface{}, error) {
	bin, err := u.MarshalBinary()
	if err != nil {
		return nil, wrapEncodeError(candidates[0].String(), err)
	}
	if len(candidates) == 1 {
		return bin, nil
	}
	ui, err := buildUnionIndex(candidates)
	if err != nil {
		return nil, err
	}
	for i, c := range candidates {
		if c.Type() == TypeFixed {
			return map[string]interface{}{unionMemberName(candidates[i]): bin}, nil
		}
	}
	return nil, encodeErrorf(candidates[0].String(), "no fixed member for uuid; allowed types: %v", ui.allowedTypeNames())
}

// extractAgainst extracts value against a single, already-resolved schema
// (no union ambiguity left).
func (api *frozenAPI) extractAgainst(schema Schema, value interface{}, rv reflect.Value) (interface{}, error) {
	switch s := schema.(type) {
	case *PrimitiveSchema:
		return extractPrimitive(s, rv)

	case *FixedSchema:
		return extractFixed(s, rv)

	case *EnumSchema:
		return extractEnum(s, rv)

	case *ArraySchema:
		return api.extractArray(s, rv)

	case *MapSchema:
		return api.extractMap(s, rv)

	case *RecordSchema:
		return api.extractRecord(s, value, rv)

	default:
		return nil, encodeErrorf(schema.String(), "unsupported schema type %T for value %T", schema, value)
	}
}

func extractPrimitive(s *PrimitiveSchema, rv reflect.Value) (interface{}, error) {
	switch s.T {
	case TypeBoolean:
		if rv.Kind() != reflect.Bool {
			return nil, encodeErrorf(s.String(), "expected bool, got %s", rv.Kind())
		}
		return rv.Bool(), nil
	case TypeInt:
		return int32(rv.Convert(reflect.TypeOf(int64(0))).Int()), nil
	case TypeLong:
		return rv.Convert(reflect.TypeOf(int64(0))).Int(), nil
	case TypeFloat:
		return float32(rv.Convert(reflect.TypeOf(float64(0))).Float()), nil
	case TypeDouble:
		return rv.Convert(reflect.TypeOf(float64(0))).Float(), nil
	case TypeString:
		if rv.Kind() != reflect.String {
			return nil, encodeErrorf(s.String(), "expected string, got %s", rv.Kind())
		}
		return rv.String(), nil
	case TypeBytes:
		if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, encodeErrorf(s.String(), "expected []byte, got %s", rv.Kind())
		}
		return rv.Bytes(), nil
	case TypeNull:
		return nil, nil
	default:
		return nil, encodeErrorf(s.String(), "unsupported primitive type %s", s.T)
	}
}

// extractFixed implements the Fixed encoding rules of spec.md §3/§4.2: a
// logical uuid/int/long fixed reinterprets a native value as big-endian
// bytes; a logical/raw string is zero-padded to Size; a []byte must
// already be exactly Size bytes long.
func extractFixed(s *FixedSchema, rv reflect.Value) (interface{}, error) {
	logical, _ := logicalTypeOf(s)
	switch LogicalType(logical) {
	case LogicalInt:
		v := int32(rv.Convert(reflect.TypeOf(int64(0))).Int())
		buf := make([]byte, 4)
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)
		return buf, nil
	case LogicalLong:
		v := rv.Convert(reflect.TypeOf(int64(0))).Int()
		buf := make([]byte, 8)
		for i := 7; i >= 0; i-- {
			buf[i] = byte(v)
			v >>= 8
		}
		return buf, nil
	case LogicalUUID:
		u, ok := rv.Interface().(uuid.UUID)
		if !ok {
			return nil, encodeErrorf(s.String(), "expected uuid.UUID, got %T", rv.Interface())
		}
		return u.MarshalBinary()
	default:
		switch rv.Kind() {
		case reflect.String:
			return padFixedString(rv.String(), s.Size)
		case reflect.Slice:
			if rv.Type().Elem().Kind() != reflect.Uint8 {
				return nil, encodeErrorf(s.String(), "expected []byte, got %s", rv.Kind())
			}
			b := rv.Bytes()
			if len(b) != s.Size {
				return nil, encodeErrorf(s.String(), "fixed size mismatch: want %d, got %d", s.Size, len(b))
			}
			return b, nil
		default:
			return nil, encodeErrorf(s.String(), "unsupported fixed value kind %s", rv.Kind())
		}
	}
}

func padFixedString(v string, size int) ([]byte, error) {
	b := []byte(v)
	if len(b) > size {
		return nil, fmt.Errorf("string %q (%d bytes) exceeds fixed size %d", v, len(b), size)
	}
	out := make([]byte, size)
	copy(out, b)
	return out, nil
}

func extractEnum(s *EnumSchema, rv reflect.Value) (interface{}, error) {
	if rv.Kind() != reflect.String {
		return nil, encodeErrorf(s.String(), "expected string enum symbol, got %s", rv.Kind())
	}
	symbol := rv.String()
	for _, sym := range s.Symbols {
		if sym == symbol {
			return symbol, nil
		}
	}
	return nil, encodeErrorf(s.String(), "value ought to be member of symbols: %v; %q", s.Symbols, symbol)
}

func (api *frozenAPI) extractArray(s *ArraySchema, rv reflect.Value) (interface{}, error) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, encodeErrorf(s.String(), "expected a sequence, got %s", rv.Kind())
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		v, err := api.Extract([]Schema{s.Items}, elem.Interface())
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (api *frozenAPI) extractMap(s *MapSchema, rv reflect.Value) (interface{}, error) {
	if rv.Kind() != reflect.Map {
		return nil, encodeErrorf(s.String(), "expected a map, got %s", rv.Kind())
	}
	if rv.Type().Key().Kind() != reflect.String {
		return nil, encodeErrorf(s.String(), "map key must be string, got %s", rv.Type().Key().Kind())
	}
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		v, err := api.Extract([]Schema{s.Values}, iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (api *frozenAPI) extractRecord(s *RecordSchema, value interface{}, rv reflect.Value) (interface{}, error) {
	if rv.Kind() != reflect.Struct {
		return nil, encodeErrorf(s.String(), "expected a record-shaped value, got %s", rv.Kind())
	}
	d, ok := api.cache.DescriptorByFQN(s.FullName())
	if !ok {
		return nil, encodeErrorf(s.String(), "no registered descriptor for record %s", s.FullName())
	}
	rd, ok := d.(*RecordDescriptor)
	if !ok {
		return nil, encodeErrorf(s.String(), "descriptor for %s is not a record descriptor", s.FullName())
	}
	args, err := rd.Values(value)
	if err != nil {
		return nil, wrapEncodeError(s.String(), err)
	}
	if len(args) != len(s.Fields) {
		return nil, encodeErrorf(s.String(), "record %s: %d values for %d fields", s.FullName(), len(args), len(s.Fields))
	}
	out := make(map[string]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		candidates := fieldCandidates(f.Type)
		v, err := api.Extract(candidates, args[i])
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// fieldCandidates returns the candidate schema list Extract should be
// given for a field's declared type: the union's own members if the field
// is a union, else the single field schema (spec.md §4.2).
func fieldCandidates(fieldType Schema) []Schema {
	if u, ok := fieldType.(*UnionSchema); ok {
		return u.Types
	}
	return []Schema{fieldType}
}
