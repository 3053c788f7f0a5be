package avrocodec

import (
	jsoniter "github.com/json-iterator/go"
)

// SchemaType is one of the Avro primitive or complex type names.
type SchemaType string

// Avro schema type constants, exactly as in the Avro specification.
const (
	TypeNull    SchemaType = "null"
	TypeBoolean SchemaType = "boolean"
	TypeInt     SchemaType = "int"
	TypeLong    SchemaType = "long"
	TypeFloat   SchemaType = "float"
	TypeDouble  SchemaType = "double"
	TypeString  SchemaType = "string"
	TypeBytes   SchemaType = "bytes"
	TypeFixed   SchemaType = "fixed"
	TypeEnum    SchemaType = "enum"
	TypeArray   SchemaType = "array"
	TypeMap     SchemaType = "map"
	TypeRecord  SchemaType = "record"
	TypeUnion   SchemaType = "union"
)

// LogicalType names a logicalType property value this codec recognizes.
type LogicalType string

// Logical type constants this codec gives special decode/encode treatment.
const (
	LogicalUUID   LogicalType = "uuid"
	LogicalInt    LogicalType = "int"
	LogicalLong   LogicalType = "long"
	LogicalString LogicalType = "string"
)

// Schema is a node in an Avro schema tree.
type Schema interface {
	// Type returns the Avro type this node represents.
	Type() SchemaType

	// String renders the canonical Avro JSON form of this schema, the
	// form fed to goavro.NewCodec.
	String() string

	// Prop returns a free-form schema property (e.g. "logicalType") and
	// whether it was set.
	Prop(key string) (interface{}, bool)
}

// props is embedded by every concrete schema to provide Prop/SetProp.
type props struct {
	Properties map[string]interface{} `json:"-"`
}

func (p *props) Prop(key string) (interface{}, bool) {
	if p.Properties == nil {
		return nil, false
	}
	v, ok := p.Properties[key]
	return v, ok
}

func (p *props) SetProp(key string, value interface{}) {
	if p.Properties == nil {
		p.Properties = make(map[string]interface{}, 1)
	}
	p.Properties[key] = value
}

// logicalTypeOf reads the "logicalType" property off any schema with value
// equality -- Go string comparison is always value equality, which is the
// Open Question in spec.md resolved by construction (see DESIGN.md).
func logicalTypeOf(s Schema) (string, bool) {
	v, ok := s.Prop("logicalType")
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

// PrimitiveSchema represents null, boolean, int, long, float, double,
// string, and bytes.
type PrimitiveSchema struct {
	props
	T SchemaType
}

func NewPrimitiveSchema(t SchemaType) *PrimitiveSchema { return &PrimitiveSchema{T: t} }

func (s *PrimitiveSchema) Type() SchemaType { return s.T }

func (s *PrimitiveSchema) String() string {
	if len(s.Properties) == 0 {
		return `"` + string(s.T) + `"`
	}
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *PrimitiveSchema) toWire() map[string]interface{} {
	m := map[string]interface{}{"type": string(s.T)}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// FixedSchema represents a fixed-size byte sequence, optionally carrying a
// logicalType tag (uuid, int, long, string).
type FixedSchema struct {
	props
	Name      string
	Namespace string
	Size      int
}

func (s *FixedSchema) Type() SchemaType { return TypeFixed }

func (s *FixedSchema) String() string {
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *FixedSchema) toWire() map[string]interface{} {
	m := map[string]interface{}{
		"type": "fixed",
		"name": s.Name,
		"size": s.Size,
	}
	if s.Namespace != "" {
		m["namespace"] = s.Namespace
	}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// EnumSchema represents a named set of symbols.
type EnumSchema struct {
	props
	Name      string
	Namespace string
	Symbols   []string
}

func (s *EnumSchema) Type() SchemaType { return TypeEnum }

func (s *EnumSchema) String() string {
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *EnumSchema) toWire() map[string]interface{} {
	m := map[string]interface{}{
		"type":    "enum",
		"name":    s.Name,
		"symbols": s.Symbols,
	}
	if s.Namespace != "" {
		m["namespace"] = s.Namespace
	}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// ArraySchema represents a homogeneous, variable-length sequence.
type ArraySchema struct {
	props
	Items Schema
}

func (s *ArraySchema) Type() SchemaType { return TypeArray }

func (s *ArraySchema) String() string {
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *ArraySchema) toWire() map[string]interface{} {
	m := map[string]interface{}{"type": "array", "items": rawSchema(s.Items)}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// MapSchema represents a string-keyed homogeneous map.
type MapSchema struct {
	props
	Values Schema
}

func (s *MapSchema) Type() SchemaType { return TypeMap }

func (s *MapSchema) String() string {
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *MapSchema) toWire() map[string]interface{} {
	m := map[string]interface{}{"type": "map", "values": rawSchema(s.Values)}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// UnionSchema represents an ordered set of alternative schemas. Member
// order is significant: it is either ascending unionIndex order (sum
// types) or null-first (Option/nullable types).
type UnionSchema struct {
	Types []Schema
}

func (s *UnionSchema) Type() SchemaType          { return TypeUnion }
func (s *UnionSchema) Prop(string) (interface{}, bool) { return nil, false }

func (s *UnionSchema) String() string {
	parts := make([]jsoniter.RawMessage, len(s.Types))
	for i, t := range s.Types {
		parts[i] = rawSchema(t)
	}
	b, err := schemaJSON.Marshal(parts)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// IsNullable reports whether this union is the two-member [null, T] shape,
// and if so returns T.
func (s *UnionSchema) IsNullable() (Schema, bool) {
	if len(s.Types) != 2 {
		return nil, false
	}
	if s.Types[0].Type() == TypeNull {
		return s.Types[1], true
	}
	if s.Types[1].Type() == TypeNull {
		return s.Types[0], true
	}
	return nil, false
}

// SchemaField is one field of a RecordSchema.
type SchemaField struct {
	Name    string
	Doc     string
	Aliases []string
	Type    Schema
	// HasDefault distinguishes "no default" from a legitimate nil/zero
	// default value.
	HasDefault bool
	Default    interface{}
}

// RecordSchema represents a named record with ordered fields.
type RecordSchema struct {
	props
	Name      string
	Namespace string
	Doc       string
	Aliases   []string
	Fields    []*SchemaField
}

func (s *RecordSchema) Type() SchemaType { return TypeRecord }

// FullName returns "namespace.name", or just "name" when there is no
// namespace, matching Avro's fullname rule.
func (s *RecordSchema) FullName() string {
	if s.Namespace == "" {
		return s.Name
	}
	return s.Namespace + "." + s.Name
}

func (s *RecordSchema) String() string {
	b, err := schemaJSON.Marshal(s.toWire())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (s *RecordSchema) toWire() map[string]interface{} {
	fields := make([]map[string]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		fm := map[string]interface{}{
			"name": f.Name,
			"type": rawSchema(f.Type),
		}
		if f.Doc != "" {
			fm["doc"] = f.Doc
		}
		if len(f.Aliases) > 0 {
			fm["aliases"] = f.Aliases
		}
		if f.HasDefault {
			fm["default"] = f.Default
		}
		fields[i] = fm
	}
	m := map[string]interface{}{
		"type":   "record",
		"name":   s.Name,
		"fields": fields,
	}
	if s.Namespace != "" {
		m["namespace"] = s.Namespace
	}
	if s.Doc != "" {
		m["doc"] = s.Doc
	}
	if len(s.Aliases) > 0 {
		m["aliases"] = s.Aliases
	}
	for k, v := range s.Properties {
		m[k] = v
	}
	return m
}

// FieldByName returns the field with the given name, or nil.
func (s *RecordSchema) FieldByName(name string) *SchemaField {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

var schemaJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// rawSchema returns a jsoniter.RawMessage view of a nested schema's own
// canonical JSON, so composite schemas can embed children verbatim
// without re-marshaling through Go struct tags.
func rawSchema(s Schema) jsoniter.RawMessage {
	return jsoniter.RawMessage(s.String())
}
