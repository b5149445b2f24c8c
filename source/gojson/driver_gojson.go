// Package gojson provides a JSON driver backed by goccy/go-json. Select it
// with protojson.SetDriver(gojson.Driver()).
package gojson

import (
	"bytes"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	protojson "github.com/pascalhahn/protobuf-json"
	"github.com/pascalhahn/protobuf-json/jsonval"
)

// Driver returns a protojson.Driver backed by goccy/go-json.
func Driver() protojson.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) Name() string { return "go-json" }

func (driverGoJSON) Parse(data []byte) (jsonval.Value, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
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

func parseValue(dec *j.Decoder) (jsonval.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *j.Decoder, tok j.Token) (jsonval.Value, error) {
	switch v := tok.(type) {
	case j.Delim:
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
	case j.Number:
		return jsonval.Number(v), nil
	case float64:
		// UseNumber keeps this branch cold; kept for decoder configurations
		// that hand back float64 tokens.
		b, err := j.Marshal(v)
		if err != nil {
			return nil, err
		}
		return jsonval.Number(b), nil
	case nil:
		return jsonval.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *j.Decoder) (jsonval.Value, error) {
	obj := jsonval.NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
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

func parseArray(dec *j.Decoder) (jsonval.Value, error) {
	arr := jsonval.Array{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return arr, nil
		}
		el, err := valueFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, el)
	}
}

func (driverGoJSON) Format(v jsonval.Value) ([]byte, error) {
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
		b, err := j.Marshal(string(n))
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
			kb, err := j.Marshal(key)
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
