// Package protojson converts schema-described messages to and from a generic
// JSON text representation.
//
// It provides:
//
//   - Bidirectional per-field conversion driven by field descriptors (type,
//     required/optional/repeated label, default value, enum symbol table)
//   - Enum translation between wire integers and symbolic names for
//     human-readable JSON
//   - Default-value materialization and required-field validation on decode,
//     so instances built from equivalent inputs are field-for-field identical
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - A pluggable JSON driver SPI (encoding/json by default, goccy/go-json
//     under source/gojson)
//
// Design policy:
//   - Keep public APIs in the root package; JSON drivers live under source/.
//   - Place the message-type builder under dsl/ and YAML schema loading under
//     schemadef/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	mt := protojson.MustMessageType("Node",
//	        protojson.FieldDescriptor{Name: "nodeid", Type: protojson.TypeString, Label: protojson.LabelRequired},
//	        protojson.FieldDescriptor{Name: "state", Type: protojson.TypeEnum, Enum: state, HasDefault: true, Default: int32(0)},
//	)
//	m, err := protojson.Decode(data, mt)
//	out, err := protojson.Encode(m)
//
// Embedded message fields are supported on encode (recursively) but not on
// decode, where they fail with unsupported_field_type.
package protojson
