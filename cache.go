package avrocodec

import (
	"sync"

	"golang.org/x/exp/maps"
)

// cache holds the memoization tables this module keeps from spec.md §4.5
// (DESIGN.md lists the ones it does not keep).
//
// The source system used per-thread maps because populating them involves
// host-runtime reflection that is expensive but uncontended. Go has no
// first-class thread-local storage; spec.md Design Note 9 explicitly
// sanctions the substitution made here -- a concurrent map keyed by
// descriptor/schema identity, safe because every supplier below is
// referentially transparent and a racing double-population is harmless.
//
// Two of the source's seven caches (fqn -> mirror, fqn -> ConstructorInfo)
// collapse into descriptorsByFQN: this module's descriptors are hand-built
// values carrying their own constructor closures (Design Note 9), so there
// is no separate reflection-mirror step and no separate constructor
// lookup to memoize.
type cache struct {
	descriptorsByFQN sync.Map // fqn string -> Descriptor
	newtypesByFQN    sync.Map // fqn string -> *NewtypeDescriptor
	schemaByType     sync.Map // Descriptor -> Schema
	unionByType      sync.Map // Descriptor -> *unionIndex
	projectorByPair  sync.Map // projectorKey -> *Projector
}

func newCache() *cache {
	return &cache{}
}

// RegisterDescriptor makes d resolvable by its fully-qualified name, for
// use by Readers resolving a decoded record's full name back to a host
// Descriptor (spec.md §4.3).
func (c *cache) RegisterDescriptor(fqn string, d Descriptor) {
	c.descriptorsByFQN.Store(fqn, d)
}

// DescriptorByFQN looks up a previously registered Descriptor.
func (c *cache) DescriptorByFQN(fqn string) (Descriptor, bool) {
	v, ok := c.descriptorsByFQN.Load(fqn)
	if !ok {
		return nil, false
	}
	return v.(Descriptor), true
}

// RegisterNewtype makes a NewtypeDescriptor resolvable by its logicalType
// fqn, for use by Readers reconstructing a newtype-wrapped primitive back
// into its host wrapper type (spec.md §3, §4.3).
func (c *cache) RegisterNewtype(fqn string, d *NewtypeDescriptor) {
	c.newtypesByFQN.Store(fqn, d)
}

// NewtypeByFQN looks up a previously registered NewtypeDescriptor.
func (c *cache) NewtypeByFQN(fqn string) (*NewtypeDescriptor, bool) {
	v, ok := c.newtypesByFQN.Load(fqn)
	if !ok {
		return nil, false
	}
	return v.(*NewtypeDescriptor), true
}

// KnownFQNs returns every fqn registered so far, for diagnostics.
func (c *cache) KnownFQNs() []string {
	keys := make([]string, 0)
	c.descriptorsByFQN.Range(func(k, _ interface{}) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}

func (c *cache) schemaOf(d Descriptor, compute func() (Schema, error)) (Schema, error) {
	if v, ok := c.schemaByType.Load(d); ok {
		return v.(Schema), nil
	}
	s, err := compute()
	if err != nil {
		return nil, err
	}
	actual, _ := c.schemaByType.LoadOrStore(d, s)
	return actual.(Schema), nil
}

func (c *cache) unionIndexOf(d Descriptor, compute func() (*unionIndex, error)) (*unionIndex, error) {
	if v, ok := c.unionByType.Load(d); ok {
		return v.(*unionIndex), nil
	}
	u, err := compute()
	if err != nil {
		return nil, err
	}
	actual, _ := c.unionByType.LoadOrStore(d, u)
	return actual.(*unionIndex), nil
}

type projectorKey struct {
	writer Schema
	reader Schema
}

func (c *cache) projectorOf(writer, reader Schema, compute func() *Projector) *Projector {
	key := projectorKey{writer: writer, reader: reader}
	if v, ok := c.projectorByPair.Load(key); ok {
		return v.(*Projector)
	}
	p := compute()
	actual, _ := c.projectorByPair.LoadOrStore(key, p)
	return actual.(*Projector)
}

// debugSnapshot reports how many entries each table holds, for
// diagnostics, without reaching into sync.Map internals.
func (c *cache) debugSnapshot() map[string]int {
	return map[string]int{
		"descriptors": len(maps.Keys(syncMapToMap(&c.descriptorsByFQN))),
		"newtypes":    len(maps.Keys(syncMapToMap(&c.newtypesByFQN))),
		"schemas":     len(maps.Keys(syncMapToMap(&c.schemaByType))),
		"unions":      len(maps.Keys(syncMapToMap(&c.unionByType))),
		"projectors":  len(maps.Keys(syncMapToMap(&c.projectorByPair))),
	}
}

func syncMapToMap(m *sync.Map) map[interface{}]struct{} {
	out := make(map[interface{}]struct{})
	m.Range(func(k, _ interface{}) bool {
		out[k] = struct{}{}
		return true
	})
	return out
}
