package protojson

import "fmt"

// Message is the runtime surface the converter needs from a message instance:
// descriptor access plus get/set by field name for scalar fields and
// get/append for repeated fields. Instances are not safe for concurrent
// mutation; each Decode call produces a fresh instance owned by the caller.
type Message interface {
	// Descriptor returns the message type the instance conforms to.
	Descriptor() *MessageType
	// Get returns the current value of a non-repeated field. Unset scalar
	// fields report their default value (or the type's zero value without
	// one); unset message fields report a fresh default instance.
	Get(name string) (any, error)
	// Set assigns a non-repeated field.
	Set(name string, v any) error
	// List returns the elements of a repeated field in order.
	List(name string) ([]any, error)
	// Append appends elements to a repeated field preserving order.
	Append(name string, vals ...any) error
	// Has reports whether the field has been explicitly set (repeated: at
	// least one element appended).
	Has(name string) bool
}

// DynamicMessage is a map-backed Message produced by MessageType.New for
// types without a struct binding.
type DynamicMessage struct {
	mt     *MessageType
	values map[string]any
}

var _ Message = (*DynamicMessage)(nil)

func newDynamicMessage(mt *MessageType) *DynamicMessage {
	return &DynamicMessage{mt: mt, values: map[string]any{}}
}

// Descriptor returns the message type.
func (m *DynamicMessage) Descriptor() *MessageType { return m.mt }

func (m *DynamicMessage) field(name string, repeated bool) (*FieldDescriptor, error) {
	fd, ok := m.mt.FieldByName(name)
	if !ok {
		return nil, singleIssue("/"+name, CodeParseError, fmt.Sprintf("message %s has no field %q", m.mt.Name(), name))
	}
	if repeated != (fd.Label == LabelRepeated) {
		return nil, singleIssue("/"+name, CodeParseError, fmt.Sprintf("field %q of message %s is %s", name, m.mt.Name(), fd.Label))
	}
	return fd, nil
}

// Get returns the field value, materializing defaults for unset fields.
func (m *DynamicMessage) Get(name string) (any, error) {
	fd, err := m.field(name, false)
	if err != nil {
		return nil, err
	}
	if v, ok := m.values[name]; ok {
		return v, nil
	}
	if fd.HasDefault {
		return fd.Default, nil
	}
	if fd.Type == TypeMessage {
		return fd.Message.New(), nil
	}
	return zeroValue(fd.Type), nil
}

// Set assigns the field after checking the value against the field type.
func (m *DynamicMessage) Set(name string, v any) error {
	fd, err := m.field(name, false)
	if err != nil {
		return err
	}
	cv, err := checkValue(fd, v)
	if err != nil {
		return err
	}
	m.values[name] = cv
	return nil
}

// List returns the repeated field's elements in append order.
func (m *DynamicMessage) List(name string) ([]any, error) {
	if _, err := m.field(name, true); err != nil {
		return nil, err
	}
	vals, _ := m.values[name].([]any)
	return vals, nil
}

// Append appends elements to the repeated field.
func (m *DynamicMessage) Append(name string, vals ...any) error {
	fd, err := m.field(name, true)
	if err != nil {
		return err
	}
	cur, _ := m.values[name].([]any)
	for _, v := range vals {
		cv, err := checkValue(fd, v)
		if err != nil {
			return err
		}
		cur = append(cur, cv)
	}
	m.values[name] = cur
	return nil
}

// Has reports whether the field was explicitly set.
func (m *DynamicMessage) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// zeroValue returns the unset-field value a scalar field reports.
func zeroValue(t FieldType) any {
	switch t {
	case TypeBool:
		return false
	case TypeFloat:
		return float64(0)
	case TypeInt32, TypeEnum:
		return int32(0)
	case TypeInt64:
		return int64(0)
	case TypeUint32:
		return uint32(0)
	case TypeUint64:
		return uint64(0)
	case TypeString:
		return ""
	default:
		return nil
	}
}

// checkValue verifies v matches the field's representation type, widening
// untyped-int friendly inputs where unambiguous.
func checkValue(fd *FieldDescriptor, v any) (any, error) {
	bad := func() (any, error) {
		return nil, singleIssue("/"+fd.Name, CodeInvalidType,
			fmt.Sprintf("field %q (%s) cannot hold %T", fd.Name, fd.Type, v))
	}
	switch fd.Type {
	case TypeBool:
		if _, ok := v.(bool); !ok {
			return bad()
		}
	case TypeFloat:
		switch n := v.(type) {
		case float64:
		case float32:
			v = float64(n)
		case int:
			v = float64(n)
		default:
			return bad()
		}
	case TypeInt32, TypeEnum:
		switch n := v.(type) {
		case int32:
		case int:
			v = int32(n)
		default:
			return bad()
		}
	case TypeInt64:
		switch n := v.(type) {
		case int64:
		case int:
			v = int64(n)
		default:
			return bad()
		}
	case TypeUint32:
		switch n := v.(type) {
		case uint32:
		case int:
			if n < 0 {
				return bad()
			}
			v = uint32(n)
		default:
			return bad()
		}
	case TypeUint64:
		switch n := v.(type) {
		case uint64:
		case int:
			if n < 0 {
				return bad()
			}
			v = uint64(n)
		default:
			return bad()
		}
	case TypeString:
		if _, ok := v.(string); !ok {
			return bad()
		}
	case TypeMessage:
		msg, ok := v.(Message)
		if !ok {
			return bad()
		}
		if msg.Descriptor() != fd.Message {
			return nil, singleIssue("/"+fd.Name, CodeInvalidType,
				fmt.Sprintf("field %q expects message %s, got %s", fd.Name, fd.Message.Name(), msg.Descriptor().Name()))
		}
	default:
		// Unsupported wire types (double, bytes) still store what the caller
		// provides; conversion rejects them later.
	}
	return v, nil
}
