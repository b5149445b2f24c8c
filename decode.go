package protojson

import (
	"fmt"
	"strconv"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// Decode parses JSON text into a new instance of mt. Fields present in the
// input are converted in schema order; absent fields with a default are set
// to it explicitly so that instances built from semantically-equivalent
// inputs are field-for-field identical; absent required fields without a
// default fail with json_data_missing. Keys the schema does not know are
// ignored. The call is fail-fast: on any error no instance is returned.
func Decode(data []byte, mt *MessageType) (Message, error) {
	if mt == nil {
		return nil, singleIssue("/", CodeParseError, "nil message type")
	}
	v, err := getDriver().Parse(data)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return nil, singleIssue("/", CodeInvalidType,
			fmt.Sprintf("top-level JSON value must be an object, got %s", kindName(v)))
	}
	return decodeObject(obj, mt)
}

// DecodeTree converts an already-parsed JSON object into an instance of mt,
// bypassing the driver. It is the tree-level counterpart of Decode.
func DecodeTree(obj *jsonval.Object, mt *MessageType) (Message, error) {
	if mt == nil {
		return nil, singleIssue("/", CodeParseError, "nil message type")
	}
	if obj == nil {
		return nil, singleIssue("/", CodeInvalidType, "nil JSON object")
	}
	return decodeObject(obj, mt)
}

func decodeObject(obj *jsonval.Object, mt *MessageType) (Message, error) {
	m := mt.New()
	for i := 0; i < mt.NumFields(); i++ {
		fd := mt.Field(i)
		path := "/" + fd.Name
		raw, present := obj.Get(fd.Name)
		switch {
		case present:
			if fd.Label == LabelRepeated {
				arr, ok := raw.(jsonval.Array)
				if !ok {
					return nil, singleIssue(path, CodeInvalidType,
						fmt.Sprintf("repeated field %q expects a JSON array, got %s", fd.Name, kindName(raw)))
				}
				for j, el := range arr {
					val, err := convertJSONValue(path+"/"+strconv.Itoa(j), fd, mt, el)
					if err != nil {
						return nil, toIssues(err)
					}
					if err := m.Append(fd.Name, val); err != nil {
						return nil, toIssues(err)
					}
				}
			} else {
				val, err := convertJSONValue(path, fd, mt, raw)
				if err != nil {
					return nil, toIssues(err)
				}
				if err := m.Set(fd.Name, val); err != nil {
					return nil, toIssues(err)
				}
			}
		case fd.HasDefault:
			// Always set defaults explicitly; leaving a defaulted field unset
			// makes required-with-default fields ambiguous downstream.
			if err := m.Set(fd.Name, fd.Default); err != nil {
				return nil, toIssues(err)
			}
		case fd.Label == LabelRequired:
			return nil, Issues{{
				Path:    path,
				Code:    CodeDataMissing,
				Message: fmt.Sprintf("field %q is not set in json data", fd.Name),
				Params:  map[string]any{"field": fd.Name},
			}}
		}
	}
	return m, nil
}

func toIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
