package avrocodec

import (
	"strings"

	"golang.org/x/exp/slices"
)

// InferSchema translates a Descriptor into an Avro Schema, memoized on the
// Descriptor's identity (spec.md §4.1). It is the Go-level equivalent of
// the façade's inferSchema(typeDescriptor) entry point. Inference takes a
// Descriptor only; there is no form that infers from an fqn or from a
// sample value.
func (api *frozenAPI) InferSchema(d Descriptor) (Schema, error) {
	return api.cache.schemaOf(d, func() (Schema, error) {
		return api.infer(d)
	})
}

func (api *frozenAPI) infer(d Descriptor) (Schema, error) {
	switch v := d.(type) {
	case *PrimitiveDescriptor:
		return inferPrimitive(v), nil

	case *OptionDescriptor:
		inner, err := api.InferSchema(v.Inner)
		if err != nil {
			return nil, err
		}
		return &UnionSchema{Types: []Schema{NewPrimitiveSchema(TypeNull), inner}}, nil

	case *MapDescriptor:
		values, err := api.InferSchema(v.Value)
		if err != nil {
			return nil, err
		}
		return &MapSchema{Values: values}, nil

	case *ListDescriptor:
		items, err := api.InferSchema(v.Elem)
		if err != nil {
			return nil, err
		}
		arr := &ArraySchema{Items: items}
		if name, ok := containerShapeName(v.Shape); ok {
			// Host container shape beyond the default List rides along as
			// a schema property, the same mechanism Newtype's logicalType
			// fqn uses to survive schema round-tripping (spec.md §3):
			// Avro schemas tolerate arbitrary additional attributes, and
			// readArray (read.go) consults this one to pick the matching
			// containerCoercer.
			arr.SetProp(hostContainerShapeProp, name)
		}
		return arr, nil

	case *EnumDescriptor:
		namespace, name := splitFQN(v.FQN)
		name = strings.TrimSuffix(name, "Value")
		return &EnumSchema{Name: name, Namespace: namespace, Symbols: append([]string(nil), v.Symbols...)}, nil

	case *NewtypeDescriptor:
		inner, err := api.InferSchema(v.Inner)
		if err != nil {
			return nil, err
		}
		api.cache.RegisterNewtype(v.FQN, v)
		return withLogicalTypeFQN(inner, v.FQN), nil

	case *SumDescriptor:
		return api.inferSum(v)

	case *RecordDescriptor:
		return api.inferRecord(v)

	case *FixedDescriptor:
		return fixedSchemaFor(v.FQN, v.Size, v.LogicalType), nil

	default:
		return nil, configErrorf("", "unsupported descriptor type %T", d)
	}
}

func inferPrimitive(p *PrimitiveDescriptor) Schema {
	switch p.Prim {
	case PrimBool:
		return NewPrimitiveSchema(TypeBoolean)
	case PrimInt32:
		return NewPrimitiveSchema(TypeInt)
	case PrimInt64:
		return NewPrimitiveSchema(TypeLong)
	case PrimFloat32:
		return NewPrimitiveSchema(TypeFloat)
	case PrimFloat64:
		return NewPrimitiveSchema(TypeDouble)
	case PrimString:
		return NewPrimitiveSchema(TypeString)
	case PrimBytes:
		return NewPrimitiveSchema(TypeBytes)
	default:
		return NewPrimitiveSchema(TypeNull)
	}
}

// withLogicalTypeFQN returns a copy of s with property logicalType=fqn set,
// per the Newtype invariant in spec.md §3. Schemas are immutable once
// published, so this always copies rather than mutating a cached value.
func withLogicalTypeFQN(s Schema, fqn string) Schema {
	switch v := s.(type) {
	case *PrimitiveSchema:
		cp := &PrimitiveSchema{T: v.T}
		cp.Properties = cloneProps(v.Properties)
		cp.SetProp("logicalType", fqn)
		return cp
	case *FixedSchema:
		cp := &FixedSchema{Name: v.Name, Namespace: v.Namespace, Size: v.Size}
		cp.Properties = cloneProps(v.Properties)
		cp.SetProp("logicalType", fqn)
		return cp
	default:
		// NewtypeDescriptor.Inner is a *PrimitiveDescriptor, so infer only
		// ever passes a primitive schema here; any other schema is
		// returned unchanged, without the logicalType property.
		return s
	}
}

func cloneProps(m map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(m)+1)
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func fixedSchemaFor(fqn string, size int, logical LogicalType) Schema {
	namespace, name := splitFQN(fqn)
	fs := &FixedSchema{Name: name, Namespace: namespace, Size: size}
	if logical != "" {
		fs.SetProp("logicalType", string(logical))
	}
	return fs
}

func (api *frozenAPI) inferSum(v *SumDescriptor) (Schema, error) {
	if some, ok := v.isOptionShape(); ok {
		inner, err := api.InferSchema(some.Fields[0].Type)
		if err != nil {
			return nil, err
		}
		return &UnionSchema{Types: []Schema{NewPrimitiveSchema(TypeNull), inner}}, nil
	}

	variants := append([]Variant(nil), v.Variants...)

	if api.config.StrictUnionIndex {
		seen := make(map[int]bool, len(variants))
		for _, variant := range variants {
			if variant.UnionIndex < 0 {
				return nil, configErrorf(v.FQN, "variant %s missing unionIndex", variant.Type.FQN)
			}
			if seen[variant.UnionIndex] {
				return nil, configErrorf(v.FQN, "duplicate unionIndex %d", variant.UnionIndex)
			}
			seen[variant.UnionIndex] = true
		}
	} else {
		// Non-strict mode: fall back to declaration order whenever the
		// caller-supplied indices aren't a valid total order (unset,
		// negative, or duplicated), rather than failing (spec.md §4.7
		// Config.StrictUnionIndex).
		seen := make(map[int]bool, len(variants))
		valid := true
		for _, variant := range variants {
			if variant.UnionIndex < 0 || seen[variant.UnionIndex] {
				valid = false
				break
			}
			seen[variant.UnionIndex] = true
		}
		if !valid {
			for i := range variants {
				variants[i].UnionIndex = i
			}
		}
	}
	slices.SortFunc(variants, func(a, b Variant) bool { return a.UnionIndex < b.UnionIndex })

	members := make([]Schema, len(variants))
	for i, variant := range variants {
		s, err := api.InferSchema(variant.Type)
		if err != nil {
			return nil, err
		}
		members[i] = s
	}
	return &UnionSchema{Types: members}, nil
}

func (api *frozenAPI) inferRecord(v *RecordDescriptor) (Schema, error) {
	rs := &RecordSchema{Name: v.SimpleName(), Namespace: v.Namespace()}
	api.cache.RegisterDescriptor(v.FQN, v)

	fields := make([]*SchemaField, len(v.Fields))
	for i, f := range v.Fields {
		fieldSchema, err := api.fieldSchema(f, rs.Namespace)
		if err != nil {
			return nil, err
		}
		sf := &SchemaField{
			Name:    f.Name,
			Doc:     f.Doc,
			Aliases: append([]string(nil), f.Aliases...),
			Type:    fieldSchema,
		}
		if f.Default != nil {
			defaultValue := f.Default()
			adapted, avroDefault, err := api.adaptDefault(sf.Type, defaultValue)
			if err != nil {
				return nil, configErrorf(v.FQN, "field %s: %s", f.Name, err)
			}
			sf.Type = adapted
			sf.HasDefault = true
			sf.Default = avroDefault
		}
		fields[i] = sf
	}
	rs.Fields = fields
	return rs, nil
}

func (api *frozenAPI) fieldSchema(f *Field, recordNamespace string) (Schema, error) {
	if f.Fixed == nil {
		return api.InferSchema(f.Type)
	}

	size := f.Fixed.Size
	switch f.Fixed.LogicalType {
	case LogicalInt:
		size = 4
	case LogicalLong:
		size = 8
	case LogicalUUID:
		size = 16
	case LogicalString, "":
		if size == 0 {
			return nil, configErrorf("", "field %q requires an explicit Fixed size", f.Name)
		}
	}

	fqn := recordNamespace + "." + strings.Title(f.Name) + "Fixed"
	if recordNamespace == "" {
		fqn = strings.Title(f.Name) + "Fixed"
	}
	return fixedSchemaFor(fqn, size, f.Fixed.LogicalType), nil
}
