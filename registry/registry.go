// Package registry provides an in-memory implementation of
// avrocodec.Registry (spec.md §6): a collaborator that assigns integer
// ids to published schemas and resolves ids back to schemas, standing in
// for a Confluent-style schema registry without any network transport
// (spec.md §6 Non-goals -- this package never dials out).
package registry

import (
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"

	"github.com/marwahaha/avrocodec"
)

// InMemory is a concurrency-safe, process-local avrocodec.Registry.
// Subjects are identified by caller-supplied string keys (e.g. a topic
// name or a record's fully-qualified name); each new schema registered
// under a subject gets the next id in a single global sequence, matching
// Confluent's id-allocation model closely enough for testing and local
// development without requiring a running registry service.
type InMemory struct {
	bySubject sync.Map // string -> int32 (most recent id for that subject)
	byID      sync.Map // int32 -> avrocodec.Schema
	nextID    int32
}

// New returns an empty InMemory registry.
func New() *InMemory {
	return &InMemory{}
}

// Register assigns schema the next available id under subject and
// returns it. Registering the same subject again assigns a new id; the
// old id remains resolvable via Lookup, matching a real schema registry's
// append-only version history.
func (r *InMemory) Register(subject string, schema avrocodec.Schema) (int32, error) {
	id := atomic.AddInt32(&r.nextID, 1) - 1
	r.byID.Store(id, schema)
	r.bySubject.Store(subject, id)
	return id, nil
}

// Lookup resolves a previously registered schema by id.
func (r *InMemory) Lookup(id int32) (avrocodec.Schema, bool) {
	v, ok := r.byID.Load(id)
	if !ok {
		return nil, false
	}
	return v.(avrocodec.Schema), true
}

// LatestID returns the most recent id registered under subject, if any.
func (r *InMemory) LatestID(subject string) (int32, bool) {
	v, ok := r.bySubject.Load(subject)
	if !ok {
		return 0, false
	}
	return v.(int32), true
}

// Subjects returns every subject name registered so far, for diagnostics.
func (r *InMemory) Subjects() []string {
	keys := make([]string, 0)
	r.bySubject.Range(func(k, _ interface{}) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}

// DebugIDs returns every id currently resolvable, for tests.
func (r *InMemory) DebugIDs() []int32 {
	snapshot := make(map[int32]struct{})
	r.byID.Range(func(k, _ interface{}) bool {
		snapshot[k.(int32)] = struct{}{}
		return true
	})
	ids := make([]int32, 0, len(snapshot))
	for _, k := range maps.Keys(snapshot) {
		ids = append(ids, k)
	}
	return ids
}
