// Package dsl provides a fluent builder for protojson message types.
//
//	state := dsl.Enum("State", map[string]int32{"PLANNED": 0, "AVAILABLE": 1})
//	node, err := dsl.Message("Node").
//	        Field("nodeid", protojson.TypeString).Required().
//	        Field("state", protojson.TypeEnum).Enum(state).Default("PLANNED").
//	        Build()
package dsl

import (
	"fmt"

	protojson "github.com/pascalhahn/protobuf-json"
)

type messageBuilder struct {
	name   string
	fields []protojson.FieldDescriptor
	errs   []error
}

type fieldStep struct {
	b *messageBuilder
}

// Message creates a new message-type builder.
func Message(name string) *messageBuilder {
	return &messageBuilder{name: name}
}

// Enum builds an enum symbol table from a name->number mapping.
func Enum(name string, values map[string]int32) *protojson.EnumType {
	return protojson.NewEnumType(name, values)
}

// Field appends a field descriptor with optional label (the default).
func (b *messageBuilder) Field(name string, t protojson.FieldType) *fieldStep {
	b.fields = append(b.fields, protojson.FieldDescriptor{Name: name, Type: t})
	return &fieldStep{b: b}
}

func (b *messageBuilder) last() *protojson.FieldDescriptor {
	return &b.fields[len(b.fields)-1]
}

// Build assembles the message type; field order is call order.
func (b *messageBuilder) Build() (*protojson.MessageType, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	return protojson.NewMessageType(b.name, b.fields...)
}

// MustBuild is Build that panics on error, for package-level declarations.
func (b *messageBuilder) MustBuild() *protojson.MessageType {
	mt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return mt
}

// Required marks the current field as required.
func (f *fieldStep) Required() *fieldStep {
	f.b.last().Label = protojson.LabelRequired
	return f
}

// Optional marks the current field as optional (the default).
func (f *fieldStep) Optional() *fieldStep {
	f.b.last().Label = protojson.LabelOptional
	return f
}

// Repeated marks the current field as repeated.
func (f *fieldStep) Repeated() *fieldStep {
	f.b.last().Label = protojson.LabelRepeated
	return f
}

// Enum attaches the symbol table to the current enum field.
func (f *fieldStep) Enum(e *protojson.EnumType) *fieldStep {
	f.b.last().Enum = e
	return f
}

// Embed attaches the embedded message type to the current message field.
func (f *fieldStep) Embed(mt *protojson.MessageType) *fieldStep {
	f.b.last().Message = mt
	return f
}

// Default records the field's default value. Enum defaults may be given as
// the symbolic name; it is resolved against the field's symbol table at
// Build time.
func (f *fieldStep) Default(v any) *fieldStep {
	fd := f.b.last()
	if fd.Type == protojson.TypeEnum {
		if sym, ok := v.(string); ok {
			if fd.Enum == nil {
				f.b.errs = append(f.b.errs, fmt.Errorf("dsl: field %q: Default(%q) before Enum(...)", fd.Name, sym))
				return f
			}
			n, ok := fd.Enum.ValueByName(sym)
			if !ok {
				f.b.errs = append(f.b.errs, fmt.Errorf("dsl: field %q: enum has no value %q", fd.Name, sym))
				return f
			}
			v = n
		}
	}
	fd.HasDefault = true
	fd.Default = v
	return f
}

// Field on a fieldStep starts the next field, allowing uninterrupted
// chaining.
func (f *fieldStep) Field(name string, t protojson.FieldType) *fieldStep {
	return f.b.Field(name, t)
}

// Build assembles the message type from a fieldStep chain.
func (f *fieldStep) Build() (*protojson.MessageType, error) { return f.b.Build() }

// MustBuild is Build that panics on error.
func (f *fieldStep) MustBuild() *protojson.MessageType { return f.b.MustBuild() }
