// Package schemadef loads protojson message types from YAML definitions.
//
// A definition stream holds one document per message type:
//
//	message: Node
//	fields:
//	  - name: nodeid
//	    type: string
//	    label: required
//	  - name: state
//	    type: enum
//	    default: PLANNED
//	    enum:
//	      name: State
//	      values:
//	        PLANNED: 0
//	        AVAILABLE: 1
//	        FAILED: 2
//
// Embedded message fields reference a message defined by an earlier document
// in the same stream:
//
//	  - name: testmessage
//	    type: message
//	    message: TestMessage
package schemadef

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	protojson "github.com/pascalhahn/protobuf-json"
)

// Registry holds the message types loaded from one definition stream, keyed
// by message name.
type Registry struct {
	types map[string]*protojson.MessageType
	order []string
}

// Lookup returns the named message type.
func (r *Registry) Lookup(name string) (*protojson.MessageType, bool) {
	mt, ok := r.types[name]
	return mt, ok
}

// Names returns the message names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

type docMessage struct {
	Message string     `yaml:"message"`
	Fields  []docField `yaml:"fields"`
}

type docField struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Label   string   `yaml:"label"`
	Default any      `yaml:"default"`
	Enum    *docEnum `yaml:"enum"`
	Message string   `yaml:"message"`
}

type docEnum struct {
	Name   string           `yaml:"name"`
	Values map[string]int32 `yaml:"values"`
}

var typeNames = map[string]protojson.FieldType{
	"bool":    protojson.TypeBool,
	"float":   protojson.TypeFloat,
	"int32":   protojson.TypeInt32,
	"int64":   protojson.TypeInt64,
	"uint32":  protojson.TypeUint32,
	"uint64":  protojson.TypeUint64,
	"string":  protojson.TypeString,
	"enum":    protojson.TypeEnum,
	"message": protojson.TypeMessage,
	"double":  protojson.TypeDouble,
	"bytes":   protojson.TypeBytes,
}

var labelNames = map[string]protojson.Label{
	"":         protojson.LabelOptional,
	"optional": protojson.LabelOptional,
	"required": protojson.LabelRequired,
	"repeated": protojson.LabelRepeated,
}

// Load reads a multi-document YAML definition stream into a Registry.
// Documents are processed in order; embedded message references must point
// at a message defined earlier in the stream.
func Load(data []byte) (*Registry, error) {
	r := &Registry{types: map[string]*protojson.MessageType{}}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc docMessage
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, protojson.Issues{{Path: "/", Code: protojson.CodeParseError, Message: err.Error(), Cause: err}}
		}
		if doc.Message == "" {
			return nil, issue("/", protojson.CodeParseError, "document has no message name")
		}
		if _, dup := r.types[doc.Message]; dup {
			return nil, issue("/", protojson.CodeParseError, fmt.Sprintf("message %q defined twice", doc.Message))
		}
		mt, err := buildMessage(r, doc)
		if err != nil {
			return nil, err
		}
		r.types[doc.Message] = mt
		r.order = append(r.order, doc.Message)
	}
	if len(r.order) == 0 {
		return nil, issue("/", protojson.CodeParseError, "no message definitions found")
	}
	return r, nil
}

func buildMessage(r *Registry, doc docMessage) (*protojson.MessageType, error) {
	fields := make([]protojson.FieldDescriptor, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		path := "/" + doc.Message + "/" + f.Name
		ft, ok := typeNames[f.Type]
		if !ok {
			return nil, issue(path, protojson.CodeUnsupportedType, fmt.Sprintf("unknown field type %q", f.Type))
		}
		label, ok := labelNames[f.Label]
		if !ok {
			return nil, issue(path, protojson.CodeInvalidValue, fmt.Sprintf("unknown label %q", f.Label))
		}
		fd := protojson.FieldDescriptor{Name: f.Name, Type: ft, Label: label}
		if f.Enum != nil {
			fd.Enum = protojson.NewEnumType(f.Enum.Name, f.Enum.Values)
		}
		if f.Message != "" {
			ref, ok := r.Lookup(f.Message)
			if !ok {
				return nil, issue(path, protojson.CodeParseError,
					fmt.Sprintf("embedded message %q not defined before %q", f.Message, doc.Message))
			}
			fd.Message = ref
		}
		if f.Default != nil {
			dv := f.Default
			if ft == protojson.TypeEnum {
				sym, ok := dv.(string)
				if !ok {
					return nil, issue(path, protojson.CodeInvalidValue, "enum default must be a symbolic name")
				}
				if fd.Enum == nil {
					return nil, issue(path, protojson.CodeParseError, "enum default given without a symbol table")
				}
				n, ok := fd.Enum.ValueByName(sym)
				if !ok {
					return nil, issue(path, protojson.CodeEnumValueNotFound,
						fmt.Sprintf("enum does not have a value %q", sym))
				}
				dv = n
			}
			fd.HasDefault = true
			fd.Default = dv
		}
		fields = append(fields, fd)
	}
	mt, err := protojson.NewMessageType(doc.Message, fields...)
	if err != nil {
		if iss, ok := protojson.AsIssues(err); ok {
			return nil, iss
		}
		return nil, err
	}
	return mt, nil
}

func issue(path, code, msg string) protojson.Issues {
	return protojson.Issues{{Path: path, Code: code, Message: msg}}
}
