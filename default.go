package avrocodec

import "reflect"

// adaptDefault implements spec.md §4.1/§8's default-value rule: a field
// default is always expressed in terms of the schema of the FIRST union
// member, unwrapped (not goavro's generic {typeName: value} form), so a
// union-typed field whose default doesn't naturally match member zero
// must have its member order adjusted until it does. Non-union fields are
// returned unchanged; adaptDefault only ever reorders, never drops, union
// members.
func (api *frozenAPI) adaptDefault(fieldSchema Schema, defaultValue interface{}) (Schema, interface{}, error) {
	u, ok := fieldSchema.(*UnionSchema)
	if !ok {
		avroDefault, err := jsonDefaultValue(fieldSchema, defaultValue)
		if err != nil {
			return nil, nil, err
		}
		return fieldSchema, avroDefault, nil
	}

	idx, err := matchingMemberIndex(u, defaultValue)
	if err != nil {
		return nil, nil, err
	}

	reordered := reorderUnion(u, idx)
	avroDefault, err := jsonDefaultValue(reordered.Types[0], defaultValue)
	if err != nil {
		return nil, nil, err
	}
	return reordered, avroDefault, nil
}

// matchingMemberIndex picks the union member a default value belongs to,
// using the same empty-collection shortcuts spec.md §4.1 calls out
// explicitly (an empty map/list default doesn't carry enough shape
// information to distinguish between several same-shaped members, so the
// first structurally compatible member wins).
func matchingMemberIndex(u *UnionSchema, defaultValue interface{}) (int, error) {
	if defaultValue == nil {
		for i, m := range u.Types {
			if m.Type() == TypeNull {
				return i, nil
			}
		}
		return 0, nil
	}

	rv := reflect.ValueOf(defaultValue)

	if rv.Kind() == reflect.Map && rv.Len() == 0 {
		if i, ok := firstOfType(u, TypeMap); ok {
			return i, nil
		}
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0 {
		if i, ok := firstOfType(u, TypeArray); ok {
			return i, nil
		}
	}

	for i, m := range u.Types {
		if shapeCompatible(m, rv) {
			return i, nil
		}
	}

	// Nothing matched structurally: fall back to the union's first
	// member, matching the source system's own "default adapts to first
	// member" fallback when no richer signal is available.
	return 0, nil
}

func firstOfType(u *UnionSchema, t SchemaType) (int, bool) {
	for i, m := range u.Types {
		if m.Type() == t {
			return i, true
		}
	}
	return 0, false
}

// reorderUnion returns a copy of u with member `first` moved to index 0,
// preserving the relative order of the rest (spec.md §4.1's "default
// adaptation" reordering).
func reorderUnion(u *UnionSchema, first int) *UnionSchema {
	if first == 0 {
		return u
	}
	types := make([]Schema, 0, len(u.Types))
	types = append(types, u.Types[first])
	for i, m := range u.Types {
		if i != first {
			types = append(types, m)
		}
	}
	return &UnionSchema{Types: types}
}

// jsonDefaultValue renders defaultValue as the unwrapped JSON-literal
// form Avro's "default" field property requires: unlike goavro's native
// union wrapper map[string]interface{}{type: value}, a schema default is
// written directly as the target schema's own JSON shape (spec.md §4.1).
func jsonDefaultValue(schema Schema, defaultValue interface{}) (interface{}, error) {
	if defaultValue == nil {
		return nil, nil
	}

	switch s := schema.(type) {
	case *PrimitiveSchema:
		rv := reflect.ValueOf(defaultValue)
		switch s.T {
		case TypeBoolean, TypeString:
			return defaultValue, nil
		case TypeInt, TypeLong:
			return rv.Convert(reflect.TypeOf(int64(0))).Int(), nil
		case TypeFloat, TypeDouble:
			return rv.Convert(reflect.TypeOf(float64(0))).Float(), nil
		case TypeBytes:
			return defaultValue, nil
		default:
			return nil, nil
		}

	case *EnumSchema:
		return defaultValue, nil

	case *FixedSchema:
		return defaultValue, nil

	case *ArraySchema:
		rv := reflect.ValueOf(defaultValue)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, encodeErrorf(schema.String(), "array default requires a slice, got %T", defaultValue)
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := jsonDefaultValue(s.Items, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case *MapSchema:
		rv := reflect.ValueOf(defaultValue)
		if rv.Kind() != reflect.Map {
			return nil, encodeErrorf(schema.String(), "map default requires a map, got %T", defaultValue)
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := jsonDefaultValue(s.Values, iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = v
		}
		return out, nil

	case *RecordSchema:
		rv := reflect.ValueOf(defaultValue)
		if rv.Kind() != reflect.Map {
			return nil, encodeErrorf(schema.String(), "record default requires a map, got %T", defaultValue)
		}
		out := make(map[string]interface{}, len(s.Fields))
		for _, f := range s.Fields {
			v := rv.MapIndex(reflect.ValueOf(f.Name))
			if !v.IsValid() {
				if f.HasDefault {
					out[f.Name] = f.Default
					continue
				}
				return nil, encodeErrorf(schema.String(), "record default missing field %q", f.Name)
			}
			fv, err := jsonDefaultValue(f.Type, v.Interface())
			if err != nil {
				return nil, err
			}
			out[f.Name] = fv
		}
		return out, nil

	default:
		return defaultValue, nil
	}
}
