package protojson

import (
	"fmt"
	"sort"
)

// EnumType is a bidirectional symbol table between an enum's integer wire
// values and its symbolic names.
type EnumType struct {
	name     string
	byName   map[string]int32
	byNumber map[int32]string
}

// NewEnumType builds an enum symbol table from a name->number mapping.
func NewEnumType(name string, values map[string]int32) *EnumType {
	e := &EnumType{
		name:     name,
		byName:   make(map[string]int32, len(values)),
		byNumber: make(map[int32]string, len(values)),
	}
	for sym, n := range values {
		e.byName[sym] = n
		e.byNumber[n] = sym
	}
	return e
}

// Name returns the enum type name.
func (e *EnumType) Name() string { return e.name }

// ValueByName returns the wire value for a symbolic name.
func (e *EnumType) ValueByName(sym string) (int32, bool) {
	n, ok := e.byName[sym]
	return n, ok
}

// NameByNumber returns the symbolic name for a wire value.
func (e *EnumType) NameByNumber(n int32) (string, bool) {
	sym, ok := e.byNumber[n]
	return sym, ok
}

// Symbols returns the symbolic names in ascending wire-value order.
func (e *EnumType) Symbols() []string {
	nums := make([]int, 0, len(e.byNumber))
	for n := range e.byNumber {
		nums = append(nums, int(n))
	}
	sort.Ints(nums)
	out := make([]string, 0, len(nums))
	for _, n := range nums {
		out = append(out, e.byNumber[int32(n)])
	}
	return out
}

// FieldDescriptor is the static metadata for one field of a message type.
// Enum must be set when Type is TypeEnum; Message must be set when Type is
// TypeMessage. Default carries the typed default value when HasDefault is
// true (int32 for enum fields).
type FieldDescriptor struct {
	Name       string
	Type       FieldType
	Label      Label
	HasDefault bool
	Default    any
	Enum       *EnumType
	Message    *MessageType
}

// MessageType is a named, ordered set of field descriptors. Field order is
// declaration order and determines output key order on encode; field access
// is by name. A MessageType is immutable after construction and safe for
// concurrent use.
type MessageType struct {
	name   string
	fields []FieldDescriptor
	byName map[string]int
	// symbols is the flat enum symbol namespace of the message type: the
	// union of all enum fields' name->number tables. Symbolic names in JSON
	// are resolved here, not against the field's own enum type. The first
	// field to register a symbol wins.
	symbols map[string]int32

	binding *structBinding // set when the type is bound to a Go struct
}

// NewMessageType builds a message type from descriptors in declaration order.
// Descriptors are copied; later mutation of the arguments has no effect.
func NewMessageType(name string, fields ...FieldDescriptor) (*MessageType, error) {
	if name == "" {
		return nil, singleIssue("/", CodeParseError, "message type name must not be empty")
	}
	mt := &MessageType{
		name:    name,
		fields:  make([]FieldDescriptor, 0, len(fields)),
		byName:  make(map[string]int, len(fields)),
		symbols: map[string]int32{},
	}
	for _, fd := range fields {
		if fd.Name == "" {
			return nil, singleIssue("/", CodeParseError, fmt.Sprintf("message %s: field name must not be empty", name))
		}
		if _, dup := mt.byName[fd.Name]; dup {
			return nil, singleIssue("/"+fd.Name, CodeParseError, fmt.Sprintf("message %s: duplicate field %q", name, fd.Name))
		}
		switch fd.Type {
		case TypeEnum:
			if fd.Enum == nil {
				return nil, singleIssue("/"+fd.Name, CodeParseError, fmt.Sprintf("message %s: enum field %q has no symbol table", name, fd.Name))
			}
			for _, sym := range fd.Enum.Symbols() {
				if _, taken := mt.symbols[sym]; !taken {
					n, _ := fd.Enum.ValueByName(sym)
					mt.symbols[sym] = n
				}
			}
		case TypeMessage:
			if fd.Message == nil {
				return nil, singleIssue("/"+fd.Name, CodeParseError, fmt.Sprintf("message %s: message field %q has no message type", name, fd.Name))
			}
		}
		if fd.HasDefault {
			// Normalize the default onto the field's representation type so
			// instances report it in the same shape decoded values take.
			dv, err := checkValue(&fd, fd.Default)
			if err != nil {
				return nil, toIssues(err)
			}
			fd.Default = dv
		}
		mt.byName[fd.Name] = len(mt.fields)
		mt.fields = append(mt.fields, fd)
	}
	return mt, nil
}

// MustMessageType is NewMessageType that panics on error, for package-level
// schema declarations.
func MustMessageType(name string, fields ...FieldDescriptor) *MessageType {
	mt, err := NewMessageType(name, fields...)
	if err != nil {
		panic(err)
	}
	return mt
}

// Name returns the message type name.
func (mt *MessageType) Name() string { return mt.name }

// NumFields returns the number of field descriptors.
func (mt *MessageType) NumFields() int { return len(mt.fields) }

// Field returns the i-th field descriptor in declaration order.
func (mt *MessageType) Field(i int) *FieldDescriptor { return &mt.fields[i] }

// FieldByName returns the descriptor for the named field.
func (mt *MessageType) FieldByName(name string) (*FieldDescriptor, bool) {
	i, ok := mt.byName[name]
	if !ok {
		return nil, false
	}
	return &mt.fields[i], true
}

// EnumValue resolves a symbolic name against the message type's flat symbol
// namespace. The lookup scope is deliberately the message type rather than
// any single field's enum table, mirroring generated message classes that
// expose enum values as type-level members.
func (mt *MessageType) EnumValue(sym string) (int32, bool) {
	n, ok := mt.symbols[sym]
	return n, ok
}

// New returns a fresh, empty instance of the message type. Bound types
// produce instances backed by their Go struct; otherwise a DynamicMessage is
// returned.
func (mt *MessageType) New() Message {
	if mt.binding != nil {
		return mt.binding.newInstance()
	}
	return newDynamicMessage(mt)
}
