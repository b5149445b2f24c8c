package json

import (
	"testing"

	"github.com/pascalhahn/protobuf-json/jsonval"
)

func TestParse_Tree(t *testing.T) {
	v, err := Driver{}.Parse([]byte(`{"a": 1, "b": [true, null, "s"], "c": {"d": 2.5}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj, ok := v.(*jsonval.Object)
	if !ok {
		t.Fatalf("top level = %T", v)
	}
	if got, _ := obj.Get("a"); got != jsonval.Number("1") {
		t.Fatalf("a = %v", got)
	}
	arr, _ := obj.Get("b")
	b, ok := arr.(jsonval.Array)
	if !ok || len(b) != 3 || b[0] != jsonval.Bool(true) || b[1] != (jsonval.Null{}) || b[2] != jsonval.String("s") {
		t.Fatalf("b = %v", arr)
	}
	cv, _ := obj.Get("c")
	c, ok := cv.(*jsonval.Object)
	if !ok {
		t.Fatalf("c = %T", cv)
	}
	if got, _ := c.Get("d"); got != jsonval.Number("2.5") {
		t.Fatalf("d = %v", got)
	}
}

func TestParse_KeyOrderPreserved(t *testing.T) {
	v, err := Driver{}.Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	keys := v.(*jsonval.Object).Keys()
	if keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := (Driver{}).Parse([]byte(`{"a": `)); err == nil {
		t.Fatalf("truncated input must fail")
	}
	if _, err := (Driver{}).Parse([]byte(`{} trailing`)); err == nil {
		t.Fatalf("trailing data must fail")
	}
	if _, err := (Driver{}).Parse([]byte(``)); err == nil {
		t.Fatalf("empty input must fail")
	}
}

func TestFormat_InsertionOrder(t *testing.T) {
	o := jsonval.NewObject()
	o.Set("z", jsonval.Number("1"))
	o.Set("a", jsonval.String("x"))
	o.Set("keys", jsonval.Array{jsonval.Bool(true), jsonval.Null{}})
	b, err := Driver{}.Format(o)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got, want := string(b), `{"z":1,"a":"x","keys":[true,null]}`; got != want {
		t.Fatalf("format = %s, want %s", got, want)
	}
}

func TestFormat_StringEscaping(t *testing.T) {
	b, err := Driver{}.Format(jsonval.String("line\n\"quoted\""))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got, want := string(b), `"line\n\"quoted\""`; got != want {
		t.Fatalf("format = %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	in := []byte(`{"z":1,"a":["x",{"inner":false}],"n":-2.5e3}`)
	v, err := Driver{}.Parse(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Driver{}.Format(v)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("round trip = %s, want %s", out, in)
	}
}
