package protojson

import (
	"strconv"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// Encode serializes a message instance as JSON text. Every schema field
// appears in the output, defaults included, with keys in field-descriptor
// order, so consumers can rely on the full field set regardless of producer
// version skew.
func Encode(m Message) ([]byte, error) {
	tree, err := EncodeToTree(m)
	if err != nil {
		return nil, err
	}
	b, err := getDriver().Format(tree)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return b, nil
}

// EncodeToTree converts a message instance into a JSON object tree without
// serializing it. The encoder uses it for embedded messages; callers who
// post-process the tree can use it directly.
func EncodeToTree(m Message) (*jsonval.Object, error) {
	if m == nil {
		return nil, singleIssue("/", CodeParseError, "nil message instance")
	}
	mt := m.Descriptor()
	out := jsonval.NewObject()
	for i := 0; i < mt.NumFields(); i++ {
		fd := mt.Field(i)
		path := "/" + fd.Name
		if fd.Label == LabelRepeated {
			vals, err := m.List(fd.Name)
			if err != nil {
				return nil, toIssues(err)
			}
			arr := make(jsonval.Array, 0, len(vals))
			for j, v := range vals {
				node, err := convertFieldValue(path+"/"+strconv.Itoa(j), fd, v)
				if err != nil {
					return nil, toIssues(err)
				}
				arr = append(arr, node)
			}
			out.Set(fd.Name, arr)
			continue
		}
		v, err := m.Get(fd.Name)
		if err != nil {
			return nil, toIssues(err)
		}
		node, err := convertFieldValue(path, fd, v)
		if err != nil {
			return nil, toIssues(err)
		}
		out.Set(fd.Name, node)
	}
	return out, nil
}
