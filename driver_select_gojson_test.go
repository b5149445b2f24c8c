package protojson_test

import (
	"bytes"
	"testing"

	protojson "github.com/pascalhahn/protobuf-json"
	"github.com/pascalhahn/protobuf-json/source/gojson"
)

// The go-json driver must be a drop-in replacement for the default driver.
func TestDriverSelect_GoJSON(t *testing.T) {
	mt := nodeType(t)
	in := []byte(`{"nodeid": "host1", "state": "AVAILABLE"}`)

	m, err := protojson.Decode(in, mt)
	if err != nil {
		t.Fatalf("decode (default driver): %v", err)
	}
	want, err := protojson.Encode(m)
	if err != nil {
		t.Fatalf("encode (default driver): %v", err)
	}

	protojson.SetDriver(gojson.Driver())
	defer protojson.UseDefaultDriver()

	m2, err := protojson.Decode(in, mt)
	if err != nil {
		t.Fatalf("decode (go-json): %v", err)
	}
	got, err := protojson.Encode(m2)
	if err != nil {
		t.Fatalf("encode (go-json): %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("drivers disagree: %s vs %s", got, want)
	}
}

func TestDriverSelect_GoJSONSyntaxError(t *testing.T) {
	protojson.SetDriver(gojson.Driver())
	defer protojson.UseDefaultDriver()

	_, err := protojson.Decode([]byte(`{"nodeid"`), nodeType(t))
	if !protojson.HasCode(err, protojson.CodeParseError) {
		t.Fatalf("err = %v, want %s", err, protojson.CodeParseError)
	}
}
