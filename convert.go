package protojson

import (
	"fmt"
	"strconv"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// convertJSONValue converts one JSON scalar (or array element) into the
// field's representation type. Enum fields resolve their symbolic name via
// the owning message type; everything else goes through the coercion table.
// Embedded messages are not decodable and fail with unsupported_field_type.
func convertJSONValue(path string, fd *FieldDescriptor, mt *MessageType, v jsonval.Value) (any, error) {
	switch {
	case fd.Type == TypeEnum:
		return resolveEnumName(path, mt, v)
	case fd.Type == TypeMessage:
		return nil, singleIssue(path, CodeUnsupportedType,
			fmt.Sprintf("field type %s not supported", fd.Type))
	default:
		return coerceScalar(path, fd.Type, v)
	}
}

// convertFieldValue converts one field value (or repeated element) from an
// instance into a JSON tree node. Enum values become their symbolic names,
// coercion-table scalars pass through unchanged, and embedded messages
// recurse into the encoder.
func convertFieldValue(path string, fd *FieldDescriptor, v any) (jsonval.Value, error) {
	switch {
	case fd.Type == TypeEnum:
		n, ok := asInt32(v)
		if !ok {
			return nil, singleIssue(path, CodeInvalidType,
				fmt.Sprintf("enum field %q holds %T, want int32", fd.Name, v))
		}
		sym, err := resolveEnumNumber(path, fd, n)
		if err != nil {
			return nil, err
		}
		return jsonval.String(sym), nil
	case coercible(fd.Type):
		return scalarNode(path, fd, v)
	case fd.Type == TypeMessage:
		msg, ok := v.(Message)
		if !ok {
			return nil, singleIssue(path, CodeInvalidType,
				fmt.Sprintf("message field %q holds %T", fd.Name, v))
		}
		tree, err := EncodeToTree(msg)
		if err != nil {
			return nil, rebase(path, err)
		}
		return tree, nil
	default:
		return nil, singleIssue(path, CodeUnsupportedType,
			fmt.Sprintf("field type %s not supported", fd.Type))
	}
}

// scalarNode maps a native scalar onto its JSON node without changing the
// value. Numbers keep their exact decimal text.
func scalarNode(path string, fd *FieldDescriptor, v any) (jsonval.Value, error) {
	switch n := v.(type) {
	case bool:
		return jsonval.Bool(n), nil
	case float64:
		return jsonval.Number(strconv.FormatFloat(n, 'g', -1, 64)), nil
	case int32:
		return jsonval.Number(strconv.FormatInt(int64(n), 10)), nil
	case int64:
		return jsonval.Number(strconv.FormatInt(n, 10)), nil
	case uint32:
		return jsonval.Number(strconv.FormatUint(uint64(n), 10)), nil
	case uint64:
		return jsonval.Number(strconv.FormatUint(n, 10)), nil
	case string:
		return jsonval.String(n), nil
	default:
		return nil, singleIssue(path, CodeInvalidType,
			fmt.Sprintf("field %q (%s) holds %T", fd.Name, fd.Type, v))
	}
}

func asInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	}
	return 0, false
}
