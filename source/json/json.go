// Package json provides the default JSON driver, backed by encoding/json
// token decoding. It parses text into jsonval trees and formats trees back
// to text preserving object key insertion order.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

// Driver is the encoding/json-backed JSON driver.
type Driver struct{}

func (Driver) Name() string { return "encoding/json" }

// Parse decodes data into a jsonval tree. Numbers keep their lexical text.
func (Driver) Parse(data []byte) (jsonval.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (jsonval.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (jsonval.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return jsonval.String(v), nil
	case bool:
		return jsonval.Bool(v), nil
	case json.Number:
		return jsonval.Number(v), nil
	case nil:
		return jsonval.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (jsonval.Value, error) {
	obj := jsonval.NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
}

func parseArray(dec *json.Decoder) (jsonval.Value, error) {
	arr := jsonval.Array{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		el, err := valueFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, el)
	}
}

// Format serializes a jsonval tree. Object members are written in insertion
// order; string escaping is delegated to encoding/json.
func (Driver) Format(v jsonval.Value) ([]byte, error) {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v jsonval.Value) ([]byte, error) {
	switch n := v.(type) {
	case nil, jsonval.Null:
		return append(dst, "null"...), nil
	case jsonval.Bool:
		if n {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case jsonval.Number:
		if n == "" {
			return nil, fmt.Errorf("empty number literal")
		}
		return append(dst, n...), nil
	case jsonval.String:
		b, err := json.Marshal(string(n))
		if err != nil {
			return nil, err
		}
		return append(dst, b...), nil
	case jsonval.Array:
		dst = append(dst, '[')
		for i, el := range n {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendValue(dst, el)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case *jsonval.Object:
		dst = append(dst, '{')
		for i := 0; i < n.Len(); i++ {
			if i > 0 {
				dst = append(dst, ',')
			}
			key, val := n.At(i)
			kb, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			dst = append(dst, kb...)
			dst = append(dst, ':')
			dst, err = appendValue(dst, val)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("unknown JSON value %T", v)
}
