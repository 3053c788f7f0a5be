package avrocodec

import "io"

// This file implements the five façade entry points of spec.md §4.6, the
// only API most callers need: infer a schema, then write/read through a
// Projector built from it. DefaultAPI backs the package-level functions;
// call Config.Freeze yourself for a non-default configuration.

// InferSchema infers an Avro Schema from a Descriptor using the default
// configuration.
func InferSchema(d Descriptor) (Schema, error) {
	return DefaultAPI.InferSchema(d)
}

// SchemaByFQN returns a previously-registered Schema's owning Descriptor
// by fully-qualified name, if InferSchema (directly or via Write/Read)
// has already seen it.
func SchemaByFQN(fqn string) (Descriptor, bool) {
	return DefaultAPI.cache.DescriptorByFQN(fqn)
}

// Write infers value's schema from d and returns its Avro binary
// encoding.
func Write(d Descriptor, value interface{}) ([]byte, error) {
	return DefaultAPI.Write(d, value)
}

// WriteTo infers value's schema from d and appends its Avro binary
// encoding to w.
func WriteTo(w io.Writer, d Descriptor, value interface{}) error {
	return DefaultAPI.WriteTo(w, d, value)
}

// Read decodes buf against writerDescriptor, projecting into
// readerDescriptor's shape if given (nil means "same as writer").
func Read(buf []byte, writerDescriptor, readerDescriptor Descriptor) (interface{}, []byte, error) {
	return DefaultAPI.Read(buf, writerDescriptor, readerDescriptor)
}

// ReadFrom decodes exactly one Avro-binary value from r, against
// writerDescriptor, projecting into readerDescriptor's shape if given.
func ReadFrom(r io.Reader, writerDescriptor, readerDescriptor Descriptor) (interface{}, error) {
	return DefaultAPI.ReadFrom(r, writerDescriptor, readerDescriptor)
}

// Write is the frozenAPI-bound entry point: infer d's schema, build a
// same-schema Projector, and extract+encode value.
func (api *frozenAPI) Write(d Descriptor, value interface{}) ([]byte, error) {
	schema, err := api.InferSchema(d)
	if err != nil {
		return nil, err
	}
	p, err := api.NewProjector(schema, schema)
	if err != nil {
		return nil, err
	}
	return p.Write(value)
}

// WriteTo is the frozenAPI-bound streaming form of Write.
func (api *frozenAPI) WriteTo(w io.Writer, d Descriptor, value interface{}) error {
	schema, err := api.InferSchema(d)
	if err != nil {
		return err
	}
	p, err := api.NewProjector(schema, schema)
	if err != nil {
		return err
	}
	return p.WriteTo(w, value)
}

// Read is the frozenAPI-bound entry point: infer the writer (and,
// if given, reader) schema, build a Projector for the pair, and decode
// buf's leading Avro value.
func (api *frozenAPI) Read(buf []byte, writerDescriptor, readerDescriptor Descriptor) (interface{}, []byte, error) {
	writerSchema, err := api.InferSchema(writerDescriptor)
	if err != nil {
		return nil, nil, err
	}
	readerSchema := writerSchema
	if readerDescriptor != nil {
		readerSchema, err = api.InferSchema(readerDescriptor)
		if err != nil {
			return nil, nil, err
		}
	}
	p, err := api.NewProjector(writerSchema, readerSchema)
	if err != nil {
		return nil, nil, err
	}
	return p.Read(buf)
}

// ReadFrom is the frozenAPI-bound streaming form of Read.
func (api *frozenAPI) ReadFrom(r io.Reader, writerDescriptor, readerDescriptor Descriptor) (interface{}, error) {
	writerSchema, err := api.InferSchema(writerDescriptor)
	if err != nil {
		return nil, err
	}
	readerSchema := writerSchema
	if readerDescriptor != nil {
		readerSchema, err = api.InferSchema(readerDescriptor)
		if err != nil {
			return nil, err
		}
	}
	p, err := api.NewProjector(writerSchema, readerSchema)
	if err != nil {
		return nil, err
	}
	return p.ReadFrom(r)
}

// ReadByID decodes buf using the writer schema resolved from the frozen
// Config's Registry by id, projecting into readerDescriptor's shape if
// given (spec.md §6 -- registry-backed reads, as an alternative to
// passing a full writer Descriptor when only a compact id travels on the
// wire, e.g. a Confluent-style 4-byte schema id prefix already stripped
// by the caller).
func (api *frozenAPI) ReadByID(buf []byte, schemaID int32, readerDescriptor Descriptor) (interface{}, []byte, error) {
	if api.config.Registry == nil {
		return nil, nil, configErrorf("", "ReadByID requires a Config.Registry")
	}
	writerSchema, ok := api.config.Registry.Lookup(schemaID)
	if !ok {
		return nil, nil, decodeErrorf("", "no schema registered for id %d", schemaID)
	}
	readerSchema := writerSchema
	if readerDescriptor != nil {
		var err error
		readerSchema, err = api.InferSchema(readerDescriptor)
		if err != nil {
			return nil, nil, err
		}
	}
	p, err := api.NewProjector(writerSchema, readerSchema)
	if err != nil {
		return nil, nil, err
	}
	return p.Read(buf)
}
