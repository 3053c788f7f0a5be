package avrocodec

// Registry resolves a writer schema from an integer id and assigns ids to
// newly published schemas, standing in for a Confluent-style schema
// registry collaborator (spec.md §6). The in-memory implementation lives
// in the registry subpackage; callers wanting a networked registry
// implement this interface themselves.
type Registry interface {
	Register(subject string, schema Schema) (int32, error)
	Lookup(id int32) (Schema, bool)
}

// UnresolvedLogicalTypeAction controls what happens when a Fixed or
// Newtype schema carries a logicalType this codec does not itself
// recognize (spec.md §4.7): the Avro spec treats an unrecognized
// logicalType as advisory, never an error, so the only real choice is
// what value Readers hand back.
type UnresolvedLogicalTypeAction int

const (
	// UnresolvedLogicalTypePassthrough returns the underlying primitive
	// or []byte value unchanged. This is the default.
	UnresolvedLogicalTypePassthrough UnresolvedLogicalTypeAction = iota
	// UnresolvedLogicalTypeError turns an unresolved logicalType into a
	// DecodeError instead of silently passing the raw value through.
	UnresolvedLogicalTypeError
)

// Config configures a frozen API instance (spec.md §4.7). Values are
// consulted only at Freeze time; mutating a Config after Freeze has no
// effect on the frozenAPI it already produced, mirroring hamba-avro's
// Config/API split.
type Config struct {
	// OnUnresolvedLogicalType chooses Reader behavior for a logicalType
	// this codec doesn't recognize. Zero value is
	// UnresolvedLogicalTypePassthrough.
	OnUnresolvedLogicalType UnresolvedLogicalTypeAction

	// StrictUnionIndex requires every SumDescriptor Variant to carry a
	// non-negative, unique UnionIndex, failing inference with a
	// ConfigError otherwise. When false (the default), any Sum whose
	// variants don't already form a valid total order -- unset, negative,
	// or duplicated indices -- falls back to assigning indices by
	// declaration order instead of failing.
	StrictUnionIndex bool

	// Registry resolves writer schemas by id for Read calls that are
	// only given a schema id rather than a full schema (spec.md §6). May
	// be nil if the caller never uses id-based reads.
	Registry Registry
}

// DefaultConfig is the zero-value Config: passthrough unresolved logical
// types, non-strict union indices, no registry. DefaultAPI is its frozen
// form.
var DefaultConfig = Config{}

// frozenAPI is the immutable, cache-bearing handle all of infer.go,
// extract.go, read.go, and projector.go hang their methods off of. It is
// the Go-idiomatic substitute for a mutable global codec instance: once
// Frozen, a Config's choices can never change underneath a running
// encode/decode (spec.md §4.7, §5).
type frozenAPI struct {
	config Config
	cache  *cache
}

// Freeze produces an immutable API bound to this Config's settings, with
// its own private cache (spec.md §4.7, §5: caches are never shared across
// API instances with different configuration, since a cached Schema or
// unionIndex could otherwise silently carry stale configuration-dependent
// behavior).
func (c Config) Freeze() *frozenAPI {
	return &frozenAPI{config: c, cache: newCache()}
}

// DefaultAPI is the frozen handle most callers use; equivalent to
// DefaultConfig.Freeze() computed once.
var DefaultAPI = DefaultConfig.Freeze()
