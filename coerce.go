package protojson

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// coerceFunc casts a loosely-typed JSON scalar to a field's representation
// type. path locates the value for error reporting.
type coerceFunc func(path string, v jsonval.Value) (any, error)

// coercions is the static field-type -> converter table. It is initialized
// once and never mutated; membership in the table defines the scalar domain
// of the converter. Enum is listed with its pre-resolution integer form; the
// symbolic-name translation happens in the enum resolver before this table
// is consulted.
var coercions = map[FieldType]coerceFunc{
	TypeBool:   coerceBool,
	TypeFloat:  coerceFloat,
	TypeInt32:  coerceInt(32, func(n int64) any { return int32(n) }),
	TypeInt64:  coerceInt(64, func(n int64) any { return n }),
	TypeUint32: coerceUint(32, func(n uint64) any { return uint32(n) }),
	TypeUint64: coerceUint(64, func(n uint64) any { return n }),
	TypeString: coerceString,
	TypeEnum:   coerceInt(32, func(n int64) any { return int32(n) }),
}

// coercible reports whether the field type is in the coercion table's domain.
func coercible(t FieldType) bool {
	_, ok := coercions[t]
	return ok
}

// coerceScalar applies the coercion table to a JSON scalar.
func coerceScalar(path string, t FieldType, v jsonval.Value) (any, error) {
	fn, ok := coercions[t]
	if !ok {
		return nil, singleIssue(path, CodeUnsupportedType, fmt.Sprintf("field type %s not supported", t))
	}
	return fn(path, v)
}

func coerceBool(path string, v jsonval.Value) (any, error) {
	b, ok := v.(jsonval.Bool)
	if !ok {
		return nil, typeMismatch(path, "bool", v)
	}
	return bool(b), nil
}

func coerceFloat(path string, v jsonval.Value) (any, error) {
	n, ok := v.(jsonval.Number)
	if !ok {
		return nil, typeMismatch(path, "number", v)
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil, numberIssue(path, string(n), err)
	}
	return f, nil
}

func coerceInt(bits int, narrow func(int64) any) coerceFunc {
	return func(path string, v jsonval.Value) (any, error) {
		n, ok := v.(jsonval.Number)
		if !ok {
			return nil, typeMismatch(path, "number", v)
		}
		i, err := strconv.ParseInt(string(n), 10, bits)
		if err != nil {
			return nil, numberIssue(path, string(n), err)
		}
		return narrow(i), nil
	}
}

func coerceUint(bits int, narrow func(uint64) any) coerceFunc {
	return func(path string, v jsonval.Value) (any, error) {
		n, ok := v.(jsonval.Number)
		if !ok {
			return nil, typeMismatch(path, "number", v)
		}
		u, err := strconv.ParseUint(string(n), 10, bits)
		if err != nil {
			return nil, numberIssue(path, string(n), err)
		}
		return narrow(u), nil
	}
}

func coerceString(path string, v jsonval.Value) (any, error) {
	s, ok := v.(jsonval.String)
	if !ok {
		return nil, typeMismatch(path, "string", v)
	}
	return string(s), nil
}

func typeMismatch(path, want string, got jsonval.Value) Issues {
	return Issues{{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %s", want, kindName(got)),
	}}
}

// numberIssue classifies strconv failures: range errors become overflow,
// anything else is a malformed value.
func numberIssue(path, text string, err error) Issues {
	code := CodeInvalidValue
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		code = CodeOverflow
	}
	return Issues{{
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf("number %q: %v", text, err),
		Cause:   err,
	}}
}

func kindName(v jsonval.Value) string {
	if v == nil {
		return "nothing"
	}
	switch v.Kind() {
	case jsonval.KindNull:
		return "null"
	case jsonval.KindBool:
		return "bool"
	case jsonval.KindNumber:
		return "number"
	case jsonval.KindString:
		return "string"
	case jsonval.KindArray:
		return "array"
	case jsonval.KindObject:
		return "object"
	}
	return "unknown"
}
