package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protojson "github.com/pascalhahn/protobuf-json"
	"github.com/pascalhahn/protobuf-json/dsl"
)

func TestMessage_Build(t *testing.T) {
	state := dsl.Enum("State", map[string]int32{"PLANNED": 0, "AVAILABLE": 1, "FAILED": 2})
	mt, err := dsl.Message("Node").
		Field("nodeid", protojson.TypeString).Required().
		Field("state", protojson.TypeEnum).Enum(state).Default("PLANNED").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Node", mt.Name())
	assert.Equal(t, 2, mt.NumFields())

	fd, ok := mt.FieldByName("nodeid")
	require.True(t, ok)
	assert.Equal(t, protojson.LabelRequired, fd.Label)

	fd, ok = mt.FieldByName("state")
	require.True(t, ok)
	assert.True(t, fd.HasDefault)
	assert.Equal(t, int32(0), fd.Default)

	n, ok := mt.EnumValue("AVAILABLE")
	require.True(t, ok)
	assert.Equal(t, int32(1), n)
}

func TestMessage_FieldOrderIsCallOrder(t *testing.T) {
	mt := dsl.Message("M").
		Field("b", protojson.TypeString).
		Field("a", protojson.TypeString).
		MustBuild()
	assert.Equal(t, "b", mt.Field(0).Name)
	assert.Equal(t, "a", mt.Field(1).Name)
}

func TestMessage_RepeatedAndEmbed(t *testing.T) {
	inner := dsl.Message("Inner").
		Field("test", protojson.TypeString).Default("test").
		MustBuild()
	mt, err := dsl.Message("TestMessage").
		Field("notes", protojson.TypeString).Repeated().
		Field("testmessage", protojson.TypeMessage).Embed(inner).
		Build()
	require.NoError(t, err)

	fd, _ := mt.FieldByName("notes")
	assert.Equal(t, protojson.LabelRepeated, fd.Label)
	fd, _ = mt.FieldByName("testmessage")
	assert.Same(t, inner, fd.Message)
}

func TestMessage_EnumDefaultErrors(t *testing.T) {
	_, err := dsl.Message("M").
		Field("state", protojson.TypeEnum).Default("PLANNED").
		Build()
	assert.Error(t, err, "Default before Enum must fail")

	state := dsl.Enum("State", map[string]int32{"PLANNED": 0})
	_, err = dsl.Message("M").
		Field("state", protojson.TypeEnum).Enum(state).Default("WROONG").
		Build()
	assert.Error(t, err, "unknown symbolic default must fail")
}

func TestMessage_BuiltTypeConverts(t *testing.T) {
	state := dsl.Enum("State", map[string]int32{"PLANNED": 0, "AVAILABLE": 1})
	mt := dsl.Message("Node").
		Field("nodeid", protojson.TypeString).Required().
		Field("state", protojson.TypeEnum).Enum(state).Default("PLANNED").
		MustBuild()

	m, err := protojson.Decode([]byte(`{"nodeid": "host1"}`), mt)
	require.NoError(t, err)
	out, err := protojson.Encode(m)
	require.NoError(t, err)
	assert.Equal(t, `{"nodeid":"host1","state":"PLANNED"}`, string(out))
}
