package protojson_test

import (
	"testing"

	protojson "github.com/pascalhahn/protobuf-json"
)

type node struct {
	NodeID string `json:"nodeid"`
	State  int32  `json:"state"`
}

func boundNodeType(t *testing.T) *protojson.MessageType {
	t.Helper()
	state := protojson.NewEnumType("State", map[string]int32{
		"PLANNED":   0,
		"AVAILABLE": 1,
		"FAILED":    2,
	})
	mt, err := protojson.BindStruct[node]("Node",
		protojson.FieldDescriptor{Name: "nodeid", Type: protojson.TypeString, Label: protojson.LabelRequired},
		protojson.FieldDescriptor{Name: "state", Type: protojson.TypeEnum, Enum: state, HasDefault: true, Default: int32(0)},
	)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return mt
}

func TestBindStruct_Decode(t *testing.T) {
	m, err := protojson.Decode([]byte(`{"nodeid": "host1", "state": "AVAILABLE"}`), boundNodeType(t))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	n, ok := protojson.AsStruct[node](m)
	if !ok {
		t.Fatalf("instance is not backed by node")
	}
	if n.NodeID != "host1" || n.State != 1 {
		t.Fatalf("node = %+v", n)
	}
}

func TestBindStruct_Encode(t *testing.T) {
	mt := boundNodeType(t)
	m, err := protojson.Wrap(mt, &node{NodeID: "testnode", State: 1})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	out, err := protojson.Encode(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(out), `{"nodeid":"testnode","state":"AVAILABLE"}`; got != want {
		t.Fatalf("encode = %s, want %s", got, want)
	}
}

// A zero enum field with a default reports the default: struct instances
// carry no presence bit.
func TestBindStruct_ZeroReportsDefault(t *testing.T) {
	mt := boundNodeType(t)
	m, err := protojson.Wrap(mt, &node{NodeID: "testnode"})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	out, err := protojson.Encode(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(out), `{"nodeid":"testnode","state":"PLANNED"}`; got != want {
		t.Fatalf("encode = %s, want %s", got, want)
	}
}

func TestBindStruct_Repeated(t *testing.T) {
	type noteList struct {
		Notes []string `json:"notes"`
	}
	mt, err := protojson.BindStruct[noteList]("TestMessage",
		protojson.FieldDescriptor{Name: "notes", Type: protojson.TypeString, Label: protojson.LabelRepeated},
	)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	m, err := protojson.Decode([]byte(`{"notes": ["a", "b"]}`), mt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	n, _ := protojson.AsStruct[noteList](m)
	if len(n.Notes) != 2 || n.Notes[0] != "a" || n.Notes[1] != "b" {
		t.Fatalf("notes = %v", n.Notes)
	}
	out, err := protojson.Encode(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(out), `{"notes":["a","b"]}`; got != want {
		t.Fatalf("encode = %s, want %s", got, want)
	}
}

func TestBindStruct_Embedded(t *testing.T) {
	type inner struct {
		Test string `json:"test"`
	}
	type outer struct {
		TestMessage *inner `json:"testmessage"`
	}
	imt, err := protojson.BindStruct[inner]("Inner",
		protojson.FieldDescriptor{Name: "test", Type: protojson.TypeString, HasDefault: true, Default: "test"},
	)
	if err != nil {
		t.Fatalf("bind inner: %v", err)
	}
	omt, err := protojson.BindStruct[outer]("TestMessage",
		protojson.FieldDescriptor{Name: "testmessage", Type: protojson.TypeMessage, Message: imt},
	)
	if err != nil {
		t.Fatalf("bind outer: %v", err)
	}
	out, err := protojson.Encode(omt.New())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(out), `{"testmessage":{"test":"test"}}`; got != want {
		t.Fatalf("encode = %s, want %s", got, want)
	}
}

func TestBindStruct_FieldTypeMismatch(t *testing.T) {
	type bad struct {
		NodeID int `json:"nodeid"`
	}
	_, err := protojson.BindStruct[bad]("Node",
		protojson.FieldDescriptor{Name: "nodeid", Type: protojson.TypeString},
	)
	if err == nil {
		t.Fatalf("expected bind error for int field bound to string descriptor")
	}
}

func TestBindStruct_MissingField(t *testing.T) {
	type bad struct{}
	_, err := protojson.BindStruct[bad]("Node",
		protojson.FieldDescriptor{Name: "nodeid", Type: protojson.TypeString},
	)
	if err == nil {
		t.Fatalf("expected bind error for missing struct field")
	}
}
