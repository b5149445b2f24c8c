package protojson

import (
	"fmt"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// resolveEnumName translates a symbolic name from JSON into the enum's wire
// value. The name is resolved against the owning message type's symbol
// namespace, not the field's enum table (see MessageType.EnumValue).
func resolveEnumName(path string, mt *MessageType, v jsonval.Value) (int32, error) {
	s, ok := v.(jsonval.String)
	if !ok {
		return 0, typeMismatch(path, "string", v)
	}
	n, ok := mt.EnumValue(string(s))
	if !ok {
		return 0, Issues{{
			Path:    path,
			Code:    CodeEnumValueNotFound,
			Message: fmt.Sprintf("enum does not have a value %q", string(s)),
			Params:  map[string]any{"symbol": string(s)},
		}}
	}
	return n, nil
}

// resolveEnumNumber translates a wire value into the symbolic name defined by
// the field's enum table. An integer with no entry fails, which also catches
// stale values written directly onto an instance outside normal API use.
func resolveEnumNumber(path string, fd *FieldDescriptor, n int32) (string, error) {
	if fd.Enum == nil {
		return "", singleIssue(path, CodeEnumValueNotFound,
			fmt.Sprintf("field %q has no enum symbol table", fd.Name))
	}
	sym, ok := fd.Enum.NameByNumber(n)
	if !ok {
		return "", Issues{{
			Path:    path,
			Code:    CodeEnumValueNotFound,
			Message: fmt.Sprintf("enum does not have a value %d", n),
			Params:  map[string]any{"number": n},
		}}
	}
	return sym, nil
}
