// Adapted from cpoole-goavro's union.go (Copyright [2019] LinkedIn Corp.,
// Apache License 2.0). The original built a codecInfo lookup table to
// drive byte-level union encode/decode; that byte-pushing now belongs to
// the imported goavro.Codec (spec.md §1 Non-goals), so only the lookup
// table and the runtime-value-shape dispatch survive here, repurposed to
// resolve which member of a *generic* Avro union a host value or a
// decoded value belongs to.
package avrocodec

import (
	"fmt"
)

// unionIndex is the lookup table standing in for spec.md §4.5's
// "(type, schema) → unionReader" entry: given a union's member schemas,
// it answers "which member does this value belong to" from either side
// (encode: host value shape; decode: the Avro union's wire type name).
// extract.go and read.go build a fresh one with buildUnionIndex on every
// call; cache.unionIndexOf exists but nothing calls it, so no unionIndex
// is memoized.
type unionIndex struct {
	members      []Schema
	indexFromName map[string]int
	nullIndex     int // -1 if the union has no null member
}

// buildUnionIndex indexes a union's member schemas by their Avro type
// name, rejecting duplicate member types exactly as the teacher's
// makeCodecInfo did ("Union item %d ought to be unique type").
func buildUnionIndex(members []Schema) (*unionIndex, error) {
	u := &unionIndex{
		members:       members,
		indexFromName: make(map[string]int, len(members)),
		nullIndex:     -1,
	}
	for i, m := range members {
		name := unionMemberName(m)
		if _, dup := u.indexFromName[name]; dup {
			return nil, configErrorf("", "union item %d ought to be unique type: %s", i+1, name)
		}
		u.indexFromName[name] = i
		if m.Type() == TypeNull {
			u.nullIndex = i
		}
	}
	return u, nil
}

// unionMemberName returns the Avro type name used to key a union member:
// the primitive/complex type name, or the full name for record/enum/fixed.
func unionMemberName(s Schema) string {
	switch v := s.(type) {
	case *RecordSchema:
		return v.FullName()
	case *EnumSchema:
		if v.Namespace != "" {
			return v.Namespace + "." + v.Name
		}
		return v.Name
	case *FixedSchema:
		if v.Namespace != "" {
			return v.Namespace + "." + v.Name
		}
		return v.Name
	default:
		return string(s.Type())
	}
}

// byIndex returns the i-th member schema.
func (u *unionIndex) byIndex(i int) (Schema, bool) {
	if i < 0 || i >= len(u.members) {
		return nil, false
	}
	return u.members[i], true
}

// byName returns the member schema with the given Avro type name.
func (u *unionIndex) byName(name string) (Schema, int, bool) {
	i, ok := u.indexFromName[name]
	if !ok {
		return nil, -1, false
	}
	return u.members[i], i, true
}

// resolveNull returns the union's null member, if it has one. Matching a
// non-nil value to a member by its runtime shape is done in extract.go.
func (u *unionIndex) resolveNull() (Schema, bool) {
	if u.nullIndex < 0 {
		return nil, false
	}
	return u.members[u.nullIndex], true
}

func (u *unionIndex) allowedTypeNames() []string {
	names := make([]string, len(u.members))
	for i, m := range u.members {
		names[i] = unionMemberName(m)
	}
	return names
}

func (u *unionIndex) mustByName(name string) (Schema, int, error) {
	s, i, ok := u.byName(name)
	if !ok {
		return nil, 0, fmt.Errorf("no member schema types support datum: allowed types: %v; received: %s", u.allowedTypeNames(), name)
	}
	return s, i, nil
}
