package avrocodec

// Kind tags the variant of a Descriptor, standing in for the host-runtime
// reflection the original system used (spec.md Design Note 9): Type
// Descriptors here are hand-built tagged unions, never derived from Go's
// own reflect package over arbitrary structs.
type Kind int

// Descriptor kind constants.
const (
	KindPrimitive Kind = iota
	KindOption
	KindList
	KindMap
	KindEnum
	KindNewtype
	KindRecord
	KindSum
	KindFixed
)

// PrimitiveKind enumerates the host primitive shapes.
type PrimitiveKind int

// Primitive kind constants.
const (
	PrimBool PrimitiveKind = iota
	PrimInt32
	PrimInt64
	PrimFloat32
	PrimFloat64
	PrimString
	PrimBytes
	PrimNull
)

// ContainerShape distinguishes the host collection shapes that all infer
// to an Avro array, so Readers know what to coerce a decoded iterable back
// into.
type ContainerShape int

// Container shape constants.
const (
	ShapeList ContainerShape = iota
	ShapeSet
	ShapeVector
	ShapeIndexedSeq
	ShapeSeq
)

// hostContainerShapeProp is the schema property key a non-default
// ContainerShape is recorded under, read back by read.go's readArray.
const hostContainerShapeProp = "x-host-container-shape"

var containerShapeNames = map[ContainerShape]string{
	ShapeSet:        "set",
	ShapeVector:     "vector",
	ShapeIndexedSeq: "indexed-seq",
	ShapeSeq:        "seq",
}

// containerShapeName returns the property value a shape should be recorded
// under, and false for ShapeList since it is the default and needs no
// schema annotation.
func containerShapeName(shape ContainerShape) (string, bool) {
	name, ok := containerShapeNames[shape]
	return name, ok
}

// containerShapeFromName is containerShapeName's inverse, defaulting to
// ShapeList for an absent or unrecognized property.
func containerShapeFromName(name string) ContainerShape {
	for shape, n := range containerShapeNames {
		if n == name {
			return shape
		}
	}
	return ShapeList
}

// Descriptor is a host-side description of a type, sufficient to drive
// schema inference, value extraction, and value reading.
type Descriptor interface {
	Kind() Kind
}

// PrimitiveDescriptor describes one of the host primitive shapes.
type PrimitiveDescriptor struct {
	Prim PrimitiveKind
}

func (*PrimitiveDescriptor) Kind() Kind { return KindPrimitive }

// OptionDescriptor describes an optional value: None, or Some(Inner).
type OptionDescriptor struct {
	Inner Descriptor
}

func (*OptionDescriptor) Kind() Kind { return KindOption }

// ListDescriptor describes a homogeneous sequence in one of several host
// container shapes (List/Set/Vector/IndexedSeq/Seq), all of which infer to
// an Avro array.
type ListDescriptor struct {
	Elem  Descriptor
	Shape ContainerShape
}

func (*ListDescriptor) Kind() Kind { return KindList }

// MapDescriptor describes a string-keyed homogeneous map.
type MapDescriptor struct {
	Value Descriptor
}

func (*MapDescriptor) Kind() Kind { return KindMap }

// EnumDescriptor describes an ordered set of symbol names.
type EnumDescriptor struct {
	FQN     string
	Symbols []string
}

func (*EnumDescriptor) Kind() Kind { return KindEnum }

// NewtypeDescriptor describes a host type that is a labeled wrapper around
// a single primitive, round-tripping as that primitive plus a logicalType
// hint naming the wrapper's fully-qualified host name.
type NewtypeDescriptor struct {
	FQN   string
	Inner *PrimitiveDescriptor
	// New reconstructs the newtype from its inner primitive value. If nil,
	// or if invoking it fails, decoding falls back to the inner value
	// (spec.md §3 invariants, §9 Open Question 2); under the default
	// Config that fallback is silent. Inner is always a primitive, so
	// record-shaped newtypes cannot be described.
	New func(inner interface{}) (interface{}, error)
}

func (*NewtypeDescriptor) Kind() Kind { return KindNewtype }

// FixedAnnotation overrides primitive inference on a field per spec.md §3.
type FixedAnnotation struct {
	Size        int
	LogicalType LogicalType // "", LogicalInt, LogicalLong, LogicalString, LogicalUUID
}

// Field is one named, positioned member of a RecordDescriptor.
type Field struct {
	Position int
	Name     string
	Type     Descriptor
	Aliases  []string
	Doc      string
	// Default produces a default value for this field, or nil if the
	// field has no default. Invoked once during schema inference.
	Default func() interface{}
	// Fixed, when non-nil, overrides ordinary primitive inference for
	// this field per the Fixed invariants in spec.md §3.
	Fixed *FixedAnnotation
}

// RecordDescriptor describes a host record type: an ordered list of Fields,
// a closure that builds a host value from positionally-ordered constructor
// arguments (spec.md Design Note 9 -- "Constructor invocation"), and the
// inverse closure Values, standing in for spec.md §4.5's
// "(hostClass, schema) → orderedMap<position, fieldAccessor>" cache: since
// descriptors here are hand-built rather than reflected, the accessor is
// written once per record type instead of computed per (class, schema)
// pair.
type RecordDescriptor struct {
	FQN    string
	Fields []*Field
	New    func(args []interface{}) (interface{}, error)
	Values func(value interface{}) ([]interface{}, error)
}

func (*RecordDescriptor) Kind() Kind { return KindRecord }

// FieldByPosition returns the i-th field, or nil if out of range.
func (r *RecordDescriptor) FieldByPosition(i int) *Field {
	if i < 0 || i >= len(r.Fields) {
		return nil
	}
	return r.Fields[i]
}

// Namespace returns the host fqn minus its trailing segment, per spec.md
// §4.1's record-inference rule.
func (r *RecordDescriptor) Namespace() string {
	ns, _ := splitFQN(r.FQN)
	return ns
}

// SimpleName returns the host fqn's trailing segment.
func (r *RecordDescriptor) SimpleName() string {
	_, name := splitFQN(r.FQN)
	return name
}

func splitFQN(fqn string) (namespace, name string) {
	last := -1
	for i := 0; i < len(fqn); i++ {
		if fqn[i] == '.' {
			last = i
		}
	}
	if last < 0 {
		return "", fqn
	}
	return fqn[:last], fqn[last+1:]
}

// SumVariant is implemented by host values that are alternatives of a Sum
// type. AvroVariantFQN must return the fully-qualified name of the variant
// the value was constructed from, matching one of the SumDescriptor's
// Variant.Type.FQN values, so Extractors can select the matching union
// member without runtime-reflecting over the sealed alternatives (spec.md
// §4.2: "select the union member whose name matches the variant's schema
// name").
type SumVariant interface {
	AvroVariantFQN() string
}

// Variant is one alternative of a SumDescriptor, carrying the total order
// (UnionIndex) that must survive host refactoring (spec.md Design Note 9).
type Variant struct {
	UnionIndex int
	Type       *RecordDescriptor
}

// SumDescriptor describes a closed set of named alternatives ("sealed
// sum"), each with a unique non-negative UnionIndex establishing Avro
// union member order.
type SumDescriptor struct {
	FQN      string
	Variants []Variant
	Sealed   bool
}

func (*SumDescriptor) Kind() Kind { return KindSum }

// isOptionShape reports whether a SumDescriptor is the {None, Some(T)}
// shape that spec.md §3 requires to map to the Avro union [null, T].
func (s *SumDescriptor) isOptionShape() (*RecordDescriptor, bool) {
	if len(s.Variants) != 2 {
		return nil, false
	}
	var none, some *RecordDescriptor
	for _, v := range s.Variants {
		if len(v.Type.Fields) == 0 {
			none = v.Type
		} else if len(v.Type.Fields) == 1 {
			some = v.Type
		}
	}
	if none != nil && some != nil {
		return some, true
	}
	return nil, false
}

// FixedDescriptor describes a fixed-size byte sequence with an optional
// logical-type interpretation.
type FixedDescriptor struct {
	FQN         string
	Size        int
	LogicalType LogicalType // "", LogicalInt, LogicalLong, LogicalString, LogicalUUID
}

func (*FixedDescriptor) Kind() Kind { return KindFixed }
