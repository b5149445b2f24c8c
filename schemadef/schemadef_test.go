package schemadef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protojson "github.com/pascalhahn/protobuf-json"
	"github.com/pascalhahn/protobuf-json/schemadef"
)

const nodeDefs = `
message: Node
fields:
  - name: nodeid
    type: string
    label: required
  - name: state
    type: enum
    default: PLANNED
    enum:
      name: State
      values:
        PLANNED: 0
        AVAILABLE: 1
        FAILED: 2
---
message: TestMessage
fields:
  - name: notes
    type: string
    label: repeated
`

func TestLoad(t *testing.T) {
	r, err := schemadef.Load([]byte(nodeDefs))
	require.NoError(t, err)
	assert.Equal(t, []string{"Node", "TestMessage"}, r.Names())

	mt, ok := r.Lookup("Node")
	require.True(t, ok)
	fd, ok := mt.FieldByName("state")
	require.True(t, ok)
	assert.True(t, fd.HasDefault)
	assert.Equal(t, int32(0), fd.Default)

	_, ok = r.Lookup("Missing")
	assert.False(t, ok)
}

func TestLoad_TypesConvert(t *testing.T) {
	r, err := schemadef.Load([]byte(nodeDefs))
	require.NoError(t, err)
	mt, _ := r.Lookup("Node")

	m, err := protojson.Decode([]byte(`{"nodeid": "host1", "state": "AVAILABLE"}`), mt)
	require.NoError(t, err)
	out, err := protojson.Encode(m)
	require.NoError(t, err)
	assert.Equal(t, `{"nodeid":"host1","state":"AVAILABLE"}`, string(out))

	_, err = protojson.Decode([]byte(`{}`), mt)
	assert.True(t, protojson.HasCode(err, protojson.CodeDataMissing))
}

func TestLoad_EmbeddedReference(t *testing.T) {
	defs := `
message: Inner
fields:
  - name: test
    type: string
    default: test
---
message: Outer
fields:
  - name: testmessage
    type: message
    message: Inner
`
	r, err := schemadef.Load([]byte(defs))
	require.NoError(t, err)
	mt, _ := r.Lookup("Outer")

	out, err := protojson.Encode(mt.New())
	require.NoError(t, err)
	assert.Equal(t, `{"testmessage":{"test":"test"}}`, string(out))
}

func TestLoad_Errors(t *testing.T) {
	_, err := schemadef.Load([]byte("message: M\nfields:\n  - name: x\n    type: wat\n"))
	assert.True(t, protojson.HasCode(err, protojson.CodeUnsupportedType))

	_, err = schemadef.Load([]byte("message: M\nfields:\n  - name: x\n    type: string\n    label: sometimes\n"))
	assert.True(t, protojson.HasCode(err, protojson.CodeInvalidValue))

	_, err = schemadef.Load([]byte("message: Outer\nfields:\n  - name: m\n    type: message\n    message: NotYet\n"))
	assert.True(t, protojson.HasCode(err, protojson.CodeParseError))

	_, err = schemadef.Load([]byte(""))
	assert.Error(t, err)

	_, err = schemadef.Load([]byte("message: M\nfields:\n  - name: s\n    type: enum\n    default: NOPE\n    enum:\n      name: E\n      values:\n        OK: 0\n"))
	assert.True(t, protojson.HasCode(err, protojson.CodeEnumValueNotFound))
}

func TestLoad_DuplicateMessage(t *testing.T) {
	defs := "message: M\nfields:\n  - name: a\n    type: string\n---\nmessage: M\nfields:\n  - name: a\n    type: string\n"
	_, err := schemadef.Load([]byte(defs))
	assert.Error(t, err)
}
