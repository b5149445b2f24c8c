package protojson

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeDataMissing is raised when a required field is absent from the JSON
	// input and the field declares no default value.
	CodeDataMissing = "json_data_missing"
	// CodeUnsupportedType is raised when a field's schema type is outside the
	// supported set for the direction in use (decode: coercion-table scalars
	// and enum; encode: those plus embedded messages).
	CodeUnsupportedType = "unsupported_field_type"
	// CodeEnumValueNotFound is raised when a symbolic name is unknown to the
	// message type (decode) or an integer has no symbol in the enum's number
	// table (encode).
	CodeEnumValueNotFound = "enum_value_not_found"
	// CodeInvalidType is raised when a JSON value's kind does not match the
	// field's target type (for example a number for a bool field).
	CodeInvalidType = "invalid_type"
	// CodeInvalidValue is raised when a JSON value has the right kind but
	// cannot be represented in the target type (malformed number text).
	CodeInvalidValue = "invalid_value"
	// CodeOverflow is raised when a numeric value is out of range for the
	// field's integer type.
	CodeOverflow = "overflow"
	// CodeParseError wraps errors surfaced unchanged from the JSON driver and
	// schema-runtime failures that have no more specific code.
	CodeParseError = "parse_error"
)

// Issue represents a single conversion error entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /notes/2).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error (JSON syntax error, strconv failure).
	// Params carries structured parameters (e.g., {"field":"nodeid"}) for
	// observability.
	Params map[string]any
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. json_data_missing at /nodeid
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries at least one Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func singleIssue(path, code, msg string) Issues {
	return Issues{{Path: path, Code: code, Message: msg}}
}

// rebase prefixes child issue paths with base so nested errors point at the
// offending element from the root of the converted document.
func rebase(base string, err error) Issues {
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		out = append(out, Issue{Path: p, Code: it.Code, Message: it.Message, Cause: it.Cause, Params: it.Params})
	}
	return out
}
