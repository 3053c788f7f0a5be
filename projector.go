package avrocodec

import (
	"io"

	"github.com/linkedin/goavro/v2"
)

// Projector binds a writer schema and a reader schema together and
// exposes the read/write entry points spec.md §4.4 describes: Write
// extracts a host value against the writer schema and hands the result
// to goavro for binary encoding; Read does the reverse, decoding with
// goavro against the writer schema and then re-expressing the decoded
// value against the reader schema, applying reader-side defaults for any
// field the writer didn't emit (exactly the writer/reader projection
// resolution called out in go-avro's DatumProjector, adapted here to
// operate once goavro has already done the wire-level decode rather than
// decoding field-by-field by hand).
//
// A Projector is immutable once built and safe for concurrent use, since
// goavro.Codec itself is documented safe for concurrent use and every
// Projector method is otherwise stateless.
type Projector struct {
	writerSchema Schema
	readerSchema Schema
	writerCodec  *goavro.Codec
	readerCodec  *goavro.Codec
	api          *frozenAPI
}

// NewProjector builds a Projector for a (writer, reader) schema pair,
// memoized by the frozenAPI's cache so repeated calls for the same pair
// return the same instance (spec.md §4.5's projector cache).
func (api *frozenAPI) NewProjector(writerSchema, readerSchema Schema) (*Projector, error) {
	if readerSchema == nil {
		readerSchema = writerSchema
	}

	var buildErr error
	p := api.cache.projectorOf(writerSchema, readerSchema, func() *Projector {
		writerCodec, err := goavro.NewCodec(writerSchema.String())
		if err != nil {
			buildErr = configErrorf(writerSchema.String(), "building writer codec: %s", err)
			return nil
		}
		readerCodec := writerCodec
		if readerSchema != writerSchema {
			readerCodec, err = goavro.NewCodec(readerSchema.String())
			if err != nil {
				buildErr = configErrorf(readerSchema.String(), "building reader codec: %s", err)
				return nil
			}
		}
		return &Projector{
			writerSchema: writerSchema,
			readerSchema: readerSchema,
			writerCodec:  writerCodec,
			readerCodec:  readerCodec,
			api:          api,
		}
	})
	if p == nil {
		return nil, buildErr
	}
	return p, nil
}

// Write extracts value against the writer schema and returns its Avro
// binary encoding.
func (p *Projector) Write(value interface{}) ([]byte, error) {
	native, err := p.api.Extract(fieldCandidates(p.writerSchema), value)
	if err != nil {
		return nil, err
	}
	buf, err := p.writerCodec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, wrapEncodeError(p.writerSchema.String(), err)
	}
	return buf, nil
}

// WriteTo extracts value against the writer schema and appends its
// binary encoding to w, without closing or otherwise framing the stream
// (spec.md §4.4: no length-prefixing or container-file framing is added
// here; that belongs to an OCF writer, out of scope per Non-goals).
func (p *Projector) WriteTo(w io.Writer, value interface{}) error {
	buf, err := p.Write(value)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Read decodes a single Avro-binary-encoded value from the front of buf
// against the writer schema, then reads it back out against the reader
// schema, returning the host value and any unconsumed trailing bytes.
func (p *Projector) Read(buf []byte) (interface{}, []byte, error) {
	native, rest, err := p.writerCodec.NativeFromBinary(buf)
	if err != nil {
		return nil, nil, wrapDecodeError(p.writerSchema.String(), err)
	}
	host, err := p.api.ReadValue(p.readerSchema, native)
	if err != nil {
		return nil, nil, err
	}
	return host, rest, nil
}

// ReadFrom reads every remaining byte from r and decodes exactly one
// Avro-binary-encoded value from it, against the writer/reader schema
// pair, mirroring Read but for a stream rather than an in-memory buffer.
// It does not close r.
func (p *Projector) ReadFrom(r io.Reader) (interface{}, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapDecodeError(p.writerSchema.String(), err)
	}
	host, _, err := p.Read(buf)
	return host, err
}
