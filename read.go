package avrocodec

import (
	"encoding/binary"
	"strings"

	"github.com/google/uuid"
)

// containerCoercer converts a decoded []interface{} (goavro's native array
// form) into the host container shape a ListDescriptor asked for --
// List/Set/Vector/IndexedSeq/Seq all decode identically off the wire, so
// this is purely a final reshaping step on the host side (spec.md §3's
// ContainerShape note, §4.3).
type containerCoercer func(elems []interface{}) interface{}

// coercerFor is given the real ContainerShape readArray recovered from the
// wire schema's hostContainerShapeProp (infer.go records it at inference
// time). Every shape currently round-trips as a plain Go slice; the
// distinction matters to callers that type-assert against a named host
// slice type of their own choosing, which they do by wrapping the
// []interface{} this returns. Kept as a per-shape seam rather than
// collapsed away so a future host-shape (e.g. a real Set type) has
// somewhere to plug in without touching read.go's recursion or losing the
// shape information that already flows end-to-end.
func coercerFor(shape ContainerShape) containerCoercer {
	// every shape round-trips identically today; see doc comment above
	return func(elems []interface{}) interface{} {
		return elems
	}
}

// ReadValue converts a decoded generic Avro value back into a host value
// against the given reader schema (spec.md §4.3). fqn-registered record
// descriptors drive Record/Sum reconstruction via their New closures;
// everything else is a direct, schema-shape-driven decode.
func (api *frozenAPI) ReadValue(schema Schema, value interface{}) (interface{}, error) {
	switch s := schema.(type) {
	case *PrimitiveSchema:
		return api.readPrimitive(s, value)

	case *FixedSchema:
		return api.readFixed(s, value)

	case *EnumSchema:
		return readEnum(s, value)

	case *ArraySchema:
		return api.readArray(s, value)

	case *MapSchema:
		return api.readMap(s, value)

	case *UnionSchema:
		return api.readUnion(s, value)

	case *RecordSchema:
		return api.readRecord(s, value)

	default:
		return nil, decodeErrorf(schema.String(), "unsupported schema type %T", schema)
	}
}

// readPrimitive decodes a primitive wire value, widening between the host
// integer/float representations goavro may hand back, and -- when the
// schema carries a logicalType fqn registered as a NewtypeDescriptor --
// reconstructing the host wrapper type via its New closure (spec.md §3,
// §4.3's "construct-or-fall-back" rule). Newtypes always wrap a primitive;
// readRecord does not consult logicalType. A logicalType that does not
// resolve to a host value is returned as the bare decoded value, or as a
// DecodeError when the frozen Config uses UnresolvedLogicalTypeError.
func (api *frozenAPI) readPrimitive(s *PrimitiveSchema, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	var decoded interface{}
	switch s.T {
	case TypeInt:
		switch v := value.(type) {
		case int32:
			decoded = v
		case int:
			decoded = int32(v)
		case int64:
			decoded = int32(v)
		default:
			return nil, decodeErrorf(s.String(), "unexpected value %T for type %s", value, s.T)
		}
	case TypeLong:
		switch v := value.(type) {
		case int64:
			decoded = v
		case int32:
			decoded = int64(v)
		case int:
			decoded = int64(v)
		default:
			return nil, decodeErrorf(s.String(), "unexpected value %T for type %s", value, s.T)
		}
	case TypeFloat:
		switch v := value.(type) {
		case float32:
			decoded = v
		case float64:
			decoded = float32(v)
		default:
			return nil, decodeErrorf(s.String(), "unexpected value %T for type %s", value, s.T)
		}
	case TypeDouble:
		switch v := value.(type) {
		case float64:
			decoded = v
		case float32:
			decoded = float64(v)
		default:
			return nil, decodeErrorf(s.String(), "unexpected value %T for type %s", value, s.T)
		}
	case TypeBoolean, TypeString, TypeBytes:
		decoded = value
	case TypeNull:
		return nil, nil
	default:
		return nil, decodeErrorf(s.String(), "unexpected value %T for type %s", value, s.T)
	}
	host, resolved := api.applyNewtype(s, decoded)
	if !resolved && api.config.OnUnresolvedLogicalType == UnresolvedLogicalTypeError {
		if logical, ok := logicalTypeOf(s); ok {
			return nil, decodeErrorf(s.String(), "unresolved logicalType %q", logical)
		}
	}
	return host, nil
}

// applyNewtype looks up a NewtypeDescriptor registered under schema's
// logicalType fqn and, if found, reconstructs the host wrapper value from
// decoded, reporting true. Any miss -- no logicalType, no registered
// descriptor, a nil New closure, or New returning an error -- returns the
// inner decoded value and false, per the NewtypeDescriptor.New doc
// (spec.md §3 invariants, §9 Open Question 2).
func (api *frozenAPI) applyNewtype(s Schema, decoded interface{}) (interface{}, bool) {
	fqn, ok := logicalTypeOf(s)
	if !ok {
		return decoded, false
	}
	nt, ok := api.cache.NewtypeByFQN(fqn)
	if !ok || nt.New == nil {
		return decoded, false
	}
	host, err := nt.New(decoded)
	if err != nil {
		return decoded, false
	}
	return host, true
}

// readFixed decodes a fixed's []byte wire value, applying any recognized
// logicalType (spec.md §3, §4.3). An unrecognized logicalType is never an
// error -- it soft-falls-back to the raw bytes, or a DecodeError if the
// frozen Config asked for strict handling (spec.md §4.7).
func (api *frozenAPI) readFixed(s *FixedSchema, value interface{}) (interface{}, error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, decodeErrorf(s.String(), "expected []byte for fixed, got %T", value)
	}
	logical, hasLogical := logicalTypeOf(s)
	switch LogicalType(logical) {
	case LogicalInt:
		if len(b) != 4 {
			return nil, decodeErrorf(s.String(), "fixed-int requires 4 bytes, got %d", len(b))
		}
		return int32(binary.BigEndian.Uint32(b)), nil
	case LogicalLong:
		if len(b) != 8 {
			return nil, decodeErrorf(s.String(), "fixed-long requires 8 bytes, got %d", len(b))
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	case LogicalUUID:
		u, err := uuid.FromBytes(b)
		if err != nil {
			return nil, wrapDecodeError(s.String(), err)
		}
		return u, nil
	case LogicalString:
		return strings.TrimRight(string(b), "\x00"), nil
	default:
		if hasLogical {
			if nt, ok := api.cache.NewtypeByFQN(logical); ok && nt.New != nil {
				if host, err := nt.New(b); err == nil {
					return host, nil
				}
			}
			if api.config.OnUnresolvedLogicalType == UnresolvedLogicalTypeError {
				return nil, decodeErrorf(s.String(), "unresolved logicalType %q", logical)
			}
		}
		return b, nil
	}
}

func readEnum(s *EnumSchema, value interface{}) (interface{}, error) {
	symbol, ok := value.(string)
	if !ok {
		return nil, decodeErrorf(s.String(), "expected string enum symbol, got %T", value)
	}
	for _, sym := range s.Symbols {
		if sym == symbol {
			return symbol, nil
		}
	}
	return nil, decodeErrorf(s.String(), "decoded symbol %q not in %v", symbol, s.Symbols)
}

func (api *frozenAPI) readArray(s *ArraySchema, value interface{}) (interface{}, error) {
	elems, ok := value.([]interface{})
	if !ok {
		return nil, decodeErrorf(s.String(), "expected []interface{} for array, got %T", value)
	}
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		v, err := api.ReadValue(s.Items, e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	shape := ShapeList
	if name, ok := s.Prop(hostContainerShapeProp); ok {
		if n, ok := name.(string); ok {
			shape = containerShapeFromName(n)
		}
	}
	coerce := coercerFor(shape)
	return coerce(out), nil
}

func (api *frozenAPI) readMap(s *MapSchema, value interface{}) (interface{}, error) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil, decodeErrorf(s.String(), "expected map[string]interface{} for map, got %T", value)
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		rv, err := api.ReadValue(s.Values, v)
		if err != nil {
			return nil, err
		}
		out[k] = rv
	}
	return out, nil
}

// readUnion dispatches on goavro's native union decode representation:
// nil for the null branch, or a single-keyed map[string]interface{}{typeName:
// value} for every other branch (spec.md §4.3; the wire disambiguation
// itself already happened inside goavro.Codec.NativeFromBinary).
func (api *frozenAPI) readUnion(s *UnionSchema, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	wrapped, ok := value.(map[string]interface{})
	if !ok || len(wrapped) != 1 {
		return nil, decodeErrorf(s.String(), "expected single-keyed union wrapper, got %T", value)
	}
	u, err := buildUnionIndex(s.Types)
	if err != nil {
		return nil, err
	}
	for name, inner := range wrapped {
		member, _, ok := u.byName(name)
		if !ok {
			return nil, decodeErrorf(s.String(), "decoded union member %q not in %v", name, u.allowedTypeNames())
		}
		return api.ReadValue(member, inner)
	}
	return nil, decodeErrorf(s.String(), "empty union wrapper")
}

// readRecord reconstructs a host record value via its registered
// RecordDescriptor.New constructor closure (spec.md §4.3, Design Note 9's
// "constructor closures instead of reflection-based constructor
// invocation"). A record schema with no registered descriptor decodes as
// a plain map[string]interface{}, useful for ad hoc schemas that were
// never bound to a host type.
func (api *frozenAPI) readRecord(s *RecordSchema, value interface{}) (interface{}, error) {
	fields, ok := value.(map[string]interface{})
	if !ok {
		return nil, decodeErrorf(s.String(), "expected map[string]interface{} for record, got %T", value)
	}

	decoded := make(map[string]interface{}, len(s.Fields))
	positional := make([]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		raw, present := fields[f.Name]
		if !present {
			if f.HasDefault {
				decoded[f.Name] = f.Default
				positional[i] = f.Default
				continue
			}
			return nil, decodeErrorf(s.String(), "missing field %q, no default", f.Name)
		}
		v, err := api.ReadValue(f.Type, raw)
		if err != nil {
			return nil, err
		}
		decoded[f.Name] = v
		positional[i] = v
	}

	d, ok := api.cache.DescriptorByFQN(s.FullName())
	if !ok {
		return decoded, nil
	}
	rd, ok := d.(*RecordDescriptor)
	if !ok || rd.New == nil {
		return decoded, nil
	}
	host, err := rd.New(positional)
	if err != nil {
		return nil, wrapDecodeError(s.String(), err)
	}
	return host, nil
}
