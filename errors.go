package avrocodec

import "fmt"

// ConfigError reports a problem detected while inferring a schema from a
// Descriptor: an unsupported descriptor shape, a missing Fixed size, a
// duplicate or missing unionIndex, or a record/constructor arity mismatch.
// It is fatal for the type in question and surfaces at first use.
type ConfigError struct {
	Descriptor string // human-readable descriptor identity, e.g. a fqn
	Msg        string
	Err        error
}

func (e *ConfigError) Error() string {
	if e.Descriptor == "" {
		return fmt.Sprintf("avrocodec: configuration error: %s", e.Msg)
	}
	return fmt.Sprintf("avrocodec: configuration error for %s: %s", e.Descriptor, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(descriptor, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Descriptor: descriptor, Msg: fmt.Sprintf(format, args...)}
}

// EncodeError reports a value that does not fit the schema it is being
// extracted against: no union member matches, or the value's shape is
// incompatible with the target schema. Fatal for the call.
type EncodeError struct {
	Schema string
	Msg    string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("avrocodec: cannot encode for schema %s: %s", e.Schema, e.Msg)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func encodeErrorf(schema, format string, args ...interface{}) *EncodeError {
	return &EncodeError{Schema: schema, Msg: fmt.Sprintf(format, args...)}
}

// DecodeError reports malformed Avro bytes, a writer/reader schema mismatch
// goavro could not resolve, or an illegal top-level Avro type. Fatal for
// the call. Soft resolution failures (an unknown logicalType fqn) are not
// errors under the default Config; only a Config with
// OnUnresolvedLogicalType set to UnresolvedLogicalTypeError reports them
// as a DecodeError — see read.go.
type DecodeError struct {
	Schema string
	Msg    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("avrocodec: cannot decode for schema %s: %s", e.Schema, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrorf(schema, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Schema: schema, Msg: fmt.Sprintf(format, args...)}
}

func wrapDecodeError(schema string, err error) *DecodeError {
	return &DecodeError{Schema: schema, Msg: err.Error(), Err: err}
}

func wrapEncodeError(schema string, err error) *EncodeError {
	return &EncodeError{Schema: schema, Msg: err.Error(), Err: err}
}
