package protojson

import (
	"fmt"
	"reflect"
	"strings"
)

// BindStruct builds a message type whose instances are backed by the Go
// struct type T instead of a DynamicMessage. Each descriptor is resolved to
// a struct field once, at bind time, into a getter/setter pair; Decode and
// Encode then move values without walking the struct type again.
//
// Descriptors resolve to struct fields by the protojson:"name=..." tag, then
// the json tag, then the field name. Field types must match the descriptor's
// representation type up to named-type conversion (an enum field may be a
// named int32 type); repeated fields bind to slices.
func BindStruct[T any](name string, fields ...FieldDescriptor) (*MessageType, error) {
	mt, err := NewMessageType(name, fields...)
	if err != nil {
		return nil, err
	}
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, singleIssue("/", CodeParseError, fmt.Sprintf("BindStruct: %T is not a struct type", zero))
	}
	b := &structBinding{mt: mt, typ: rt, accessors: map[string]accessor{}}
	byKey := map[string]int{}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveStructKey(sf)
		if key == "-" {
			continue
		}
		byKey[key] = i
	}
	for i := 0; i < mt.NumFields(); i++ {
		fd := mt.Field(i)
		idx, ok := byKey[fd.Name]
		if !ok {
			return nil, singleIssue("/"+fd.Name, CodeParseError,
				fmt.Sprintf("BindStruct: %s has no field for %q", rt, fd.Name))
		}
		acc, err := buildAccessor(fd, rt.Field(idx), idx)
		if err != nil {
			return nil, err
		}
		b.accessors[fd.Name] = acc
	}
	mt.binding = b
	return mt, nil
}

// Wrap exposes an existing struct pointer as a Message of the bound type mt.
func Wrap[T any](mt *MessageType, v *T) (Message, error) {
	if mt == nil || mt.binding == nil {
		return nil, singleIssue("/", CodeParseError, "Wrap: message type has no struct binding")
	}
	rv := reflect.ValueOf(v)
	if rv.IsNil() {
		return nil, singleIssue("/", CodeParseError, "Wrap: nil struct pointer")
	}
	if rv.Elem().Type() != mt.binding.typ {
		return nil, singleIssue("/", CodeParseError,
			fmt.Sprintf("Wrap: %s is bound to %s, got %s", mt.Name(), mt.binding.typ, rv.Elem().Type()))
	}
	return &structMessage{b: mt.binding, v: rv.Elem()}, nil
}

// AsStruct recovers the underlying *T from a Message produced by a bound
// message type.
func AsStruct[T any](m Message) (*T, bool) {
	sm, ok := m.(*structMessage)
	if !ok {
		return nil, false
	}
	p, ok := sm.v.Addr().Interface().(*T)
	return p, ok
}

// resolveStructKey resolves a struct field's external key.
// Priority: protojson:"name=..." > json tag name > field name; "-" disables
// the field.
func resolveStructKey(sf reflect.StructField) string {
	if pt := sf.Tag.Get("protojson"); pt != "" {
		for _, p := range strings.Split(pt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

type structBinding struct {
	mt        *MessageType
	typ       reflect.Type
	accessors map[string]accessor
}

func (b *structBinding) newInstance() Message {
	return &structMessage{b: b, v: reflect.New(b.typ).Elem()}
}

type accessor struct {
	idx      int // struct field index
	get      func(sv reflect.Value) (any, error)
	set      func(sv reflect.Value, v any) error
	list     func(sv reflect.Value) ([]any, error)
	appendFn func(sv reflect.Value, vals ...any) error
}

// reprType returns the canonical Go representation type for a scalar field.
func reprType(t FieldType) (reflect.Type, bool) {
	switch t {
	case TypeBool:
		return reflect.TypeOf(false), true
	case TypeFloat:
		return reflect.TypeOf(float64(0)), true
	case TypeInt32, TypeEnum:
		return reflect.TypeOf(int32(0)), true
	case TypeInt64:
		return reflect.TypeOf(int64(0)), true
	case TypeUint32:
		return reflect.TypeOf(uint32(0)), true
	case TypeUint64:
		return reflect.TypeOf(uint64(0)), true
	case TypeString:
		return reflect.TypeOf(""), true
	}
	return nil, false
}

func buildAccessor(fd *FieldDescriptor, sf reflect.StructField, idx int) (accessor, error) {
	ft := sf.Type
	if fd.Label == LabelRepeated {
		if ft.Kind() != reflect.Slice {
			return accessor{}, singleIssue("/"+fd.Name, CodeParseError,
				fmt.Sprintf("BindStruct: repeated field %q needs a slice, have %s", fd.Name, ft))
		}
		elem, err := scalarBinding(fd, ft.Elem())
		if err != nil {
			return accessor{}, err
		}
		return accessor{
			idx: idx,
			list: func(sv reflect.Value) ([]any, error) {
				f := sv.Field(idx)
				out := make([]any, 0, f.Len())
				for i := 0; i < f.Len(); i++ {
					v, err := elem.get(f.Index(i))
					if err != nil {
						return nil, err
					}
					out = append(out, v)
				}
				return out, nil
			},
			appendFn: func(sv reflect.Value, vals ...any) error {
				f := sv.Field(idx)
				for _, v := range vals {
					ev := reflect.New(ft.Elem()).Elem()
					if err := elem.set(ev, v); err != nil {
						return err
					}
					f.Set(reflect.Append(f, ev))
				}
				return nil
			},
		}, nil
	}
	sb, err := scalarBinding(fd, ft)
	if err != nil {
		return accessor{}, err
	}
	return accessor{
		idx: idx,
		get: func(sv reflect.Value) (any, error) { return sb.get(sv.Field(idx)) },
		set: func(sv reflect.Value, v any) error { return sb.set(sv.Field(idx), v) },
	}, nil
}

// fieldBinding moves one value between its struct slot and the canonical
// representation type.
type fieldBinding struct {
	get func(fv reflect.Value) (any, error)
	set func(fv reflect.Value, v any) error
}

func scalarBinding(fd *FieldDescriptor, ft reflect.Type) (fieldBinding, error) {
	if fd.Type == TypeMessage {
		return messageBinding(fd, ft)
	}
	rt, ok := reprType(fd.Type)
	if !ok {
		return fieldBinding{}, singleIssue("/"+fd.Name, CodeUnsupportedType,
			fmt.Sprintf("BindStruct: field type %s not supported", fd.Type))
	}
	if ft.Kind() != rt.Kind() {
		return fieldBinding{}, singleIssue("/"+fd.Name, CodeParseError,
			fmt.Sprintf("BindStruct: field %q (%s) cannot bind to %s", fd.Name, fd.Type, ft))
	}
	return fieldBinding{
		get: func(fv reflect.Value) (any, error) {
			return fv.Convert(rt).Interface(), nil
		},
		set: func(fv reflect.Value, v any) error {
			rv := reflect.ValueOf(v)
			if rv.Type() != rt {
				if !rv.Type().ConvertibleTo(rt) || rv.Kind() != rt.Kind() {
					return singleIssue("/"+fd.Name, CodeInvalidType,
						fmt.Sprintf("field %q (%s) cannot hold %T", fd.Name, fd.Type, v))
				}
				rv = rv.Convert(rt)
			}
			fv.Set(rv.Convert(ft))
			return nil
		},
	}, nil
}

func messageBinding(fd *FieldDescriptor, ft reflect.Type) (fieldBinding, error) {
	inner := fd.Message.binding
	if inner == nil {
		return fieldBinding{}, singleIssue("/"+fd.Name, CodeParseError,
			fmt.Sprintf("BindStruct: embedded field %q requires %s to be struct-bound", fd.Name, fd.Message.Name()))
	}
	ptr := ft.Kind() == reflect.Pointer
	st := ft
	if ptr {
		st = ft.Elem()
	}
	if st != inner.typ {
		return fieldBinding{}, singleIssue("/"+fd.Name, CodeParseError,
			fmt.Sprintf("BindStruct: embedded field %q binds %s, struct has %s", fd.Name, inner.typ, ft))
	}
	return fieldBinding{
		get: func(fv reflect.Value) (any, error) {
			if ptr {
				if fv.IsNil() {
					return fd.Message.New(), nil
				}
				return &structMessage{b: inner, v: fv.Elem()}, nil
			}
			return &structMessage{b: inner, v: fv}, nil
		},
		set: func(fv reflect.Value, v any) error {
			sm, ok := v.(*structMessage)
			if !ok || sm.b != inner {
				return singleIssue("/"+fd.Name, CodeInvalidType,
					fmt.Sprintf("field %q expects message %s", fd.Name, fd.Message.Name()))
			}
			if ptr {
				p := reflect.New(inner.typ)
				p.Elem().Set(sm.v)
				fv.Set(p)
				return nil
			}
			fv.Set(sm.v)
			return nil
		},
	}, nil
}

// structMessage adapts a bound struct value to the Message interface.
type structMessage struct {
	b *structBinding
	v reflect.Value // addressable struct value
}

var _ Message = (*structMessage)(nil)

func (m *structMessage) Descriptor() *MessageType { return m.b.mt }

func (m *structMessage) access(name string, repeated bool) (*FieldDescriptor, accessor, error) {
	fd, ok := m.b.mt.FieldByName(name)
	if !ok {
		return nil, accessor{}, singleIssue("/"+name, CodeParseError,
			fmt.Sprintf("message %s has no field %q", m.b.mt.Name(), name))
	}
	if repeated != (fd.Label == LabelRepeated) {
		return nil, accessor{}, singleIssue("/"+name, CodeParseError,
			fmt.Sprintf("field %q of message %s is %s", name, m.b.mt.Name(), fd.Label))
	}
	return fd, m.b.accessors[name], nil
}

// Get reports the struct field's current value. Structs carry no presence
// bit, so a zero-valued field with a default reports the default, matching
// how generated message classes read unset fields.
func (m *structMessage) Get(name string) (any, error) {
	fd, acc, err := m.access(name, false)
	if err != nil {
		return nil, err
	}
	v, err := acc.get(m.v)
	if err != nil {
		return nil, err
	}
	if fd.HasDefault && m.v.Field(acc.idx).IsZero() {
		return fd.Default, nil
	}
	return v, nil
}

func (m *structMessage) Set(name string, v any) error {
	_, acc, err := m.access(name, false)
	if err != nil {
		return err
	}
	return acc.set(m.v, v)
}

func (m *structMessage) List(name string) ([]any, error) {
	_, acc, err := m.access(name, true)
	if err != nil {
		return nil, err
	}
	return acc.list(m.v)
}

func (m *structMessage) Append(name string, vals ...any) error {
	_, acc, err := m.access(name, true)
	if err != nil {
		return err
	}
	return acc.appendFn(m.v, vals...)
}

// Has reports whether the field holds a non-zero value; struct instances
// cannot distinguish unset from explicitly zero.
func (m *structMessage) Has(name string) bool {
	fd, ok := m.b.mt.FieldByName(name)
	if !ok {
		return false
	}
	acc := m.b.accessors[fd.Name]
	if fd.Label == LabelRepeated {
		vals, err := acc.list(m.v)
		return err == nil && len(vals) > 0
	}
	return !m.v.Field(acc.idx).IsZero()
}
