package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/schema"
)

type Nested struct {
	Host string `oconf:"host"`
}

type Opts struct {
	Port    int64   `oconf:"port,required"`
	Host    string  `oconf:"host"`
	Debug   bool    `oconf:"debug"`
	Tags    []int64 `oconf:"tags"`
	Limits  map[string]int64
	Sub     Nested
	Skipped string `oconf:"-"`
}

func TestFromStructAndBind(t *testing.T) {
	s, err := schema.FromStruct(Opts{Host: "localhost", Debug: true})
	require.NoError(t, err)

	f, ok := s.FieldByName("port")
	require.True(t, ok)
	assert.True(t, f.Required)

	f, ok = s.FieldByName("host")
	require.True(t, ok)
	assert.Equal(t, "localhost", f.Default)

	_, ok = s.FieldByName("Skipped")
	assert.False(t, ok)

	c, binding, err := schema.Bind(s)
	require.NoError(t, err)
	assert.True(t, node.IsStruct(c))

	portNode, ok := c.Get(node.StringKey("port"))
	require.True(t, ok)
	assert.True(t, portNode.(*node.Scalar).IsMissing())

	hostNode, ok := c.Get(node.StringKey("host"))
	require.True(t, ok)
	assert.Equal(t, "localhost", hostNode.(*node.Scalar).Value())

	assert.Same(t, binding, c.SchemaRef.(*schema.Binding))

	subNode, ok := c.Get(node.StringKey("Sub"))
	require.True(t, ok)
	subContainer, ok := subNode.(*node.MapContainer)
	require.True(t, ok)
	assert.True(t, node.IsStruct(subContainer))

	limitsNode, ok := c.Get(node.StringKey("Limits"))
	require.True(t, ok)
	limitsContainer, ok := limitsNode.(*node.MapContainer)
	require.True(t, ok)
	assert.False(t, node.IsStruct(limitsContainer))
}

func TestStructModeRejectsUnknownKey(t *testing.T) {
	s, err := schema.FromStruct(Opts{})
	require.NoError(t, err)

	c, _, err := schema.Bind(s)
	require.NoError(t, err)

	err = c.Insert(node.StringKey("extra"), node.NewScalar(node.KindInt, false))
	assert.ErrorIs(t, err, node.ErrStructViolation)
}

func TestUnionFieldValidation(t *testing.T) {
	s := schema.NewSchema("U", schema.Field{
		Name: "value",
		Union: []schema.Field{
			{Kind: node.KindInt},
			{Kind: node.KindString},
		},
	})

	c, _, err := schema.Bind(s)
	require.NoError(t, err)

	valNode, _ := c.Get(node.StringKey("value"))
	require.NoError(t, valNode.(*node.Scalar).Set(int64(5)))
	assert.NoError(t, schema.Validate(c))

	require.NoError(t, valNode.(*node.Scalar).Set("hello"))
	assert.NoError(t, schema.Validate(c))

	valNode.(*node.Scalar).Set(true) //nolint:errcheck
	assert.Error(t, schema.Validate(c))
}

func TestJSONSchema(t *testing.T) {
	s, err := schema.FromStruct(Opts{Host: "localhost"})
	require.NoError(t, err)

	_, binding, err := schema.Bind(s)
	require.NoError(t, err)

	js := binding.JSONSchema()
	assert.Equal(t, "object", js.Type)
	assert.Contains(t, js.Required, "port")
	assert.Contains(t, js.Properties, "host")
	assert.Equal(t, "integer", js.Properties["port"].Type)
}
