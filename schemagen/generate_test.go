package schemagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layeredconf/oconf"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/schema"
	"github.com/layeredconf/oconf/schemagen"
)

func mustLoad(t *testing.T, src string) *oconf.Config {
	t.Helper()

	cfg, err := oconf.LoadYAML([]byte(src))
	require.NoError(t, err)

	return cfg
}

func TestGenerateStructuralInference(t *testing.T) {
	cfg := mustLoad(t, `
host: localhost
port: 8080
ratio: 0.5
debug: true
tags:
  - a
  - b
nested:
  name: svc
`)

	g := schemagen.NewGenerator()
	js, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, "object", js.Type)
	assert.Equal(t, "string", js.Properties["host"].Type)
	assert.Equal(t, "integer", js.Properties["port"].Type)
	assert.Equal(t, "number", js.Properties["ratio"].Type)
	assert.Equal(t, "boolean", js.Properties["debug"].Type)
	assert.Equal(t, "array", js.Properties["tags"].Type)
	assert.Equal(t, "string", js.Properties["tags"].Items.Type)
	assert.Equal(t, "object", js.Properties["nested"].Type)
	assert.Equal(t, "string", js.Properties["nested"].Properties["name"].Type)
}

func TestGenerateUnionMergeAcrossConfigs(t *testing.T) {
	a := mustLoad(t, `count: 1`)
	b := mustLoad(t, `count: 1.5`)

	g := schemagen.NewGenerator()
	js, err := g.Generate(a, b)
	require.NoError(t, err)

	assert.Equal(t, "number", js.Properties["count"].Type)
}

func TestGenerateStrictAdditionalProperties(t *testing.T) {
	cfg := mustLoad(t, `host: localhost`)

	g := schemagen.NewGenerator(schemagen.WithStrict(true))
	js, err := g.Generate(cfg)
	require.NoError(t, err)

	require.NotNil(t, js.AdditionalProperties)
	assert.NotNil(t, js.AdditionalProperties.Not)
}

func TestGenerateDelegatesToSchemaBinding(t *testing.T) {
	s := schema.NewSchema("opts", schema.Field{
		Name:     "port",
		Kind:     node.KindInt,
		Required: true,
	})

	root, _, err := schema.Bind(s)
	require.NoError(t, err)

	cfg := oconf.FromNode(root)

	g := schemagen.NewGenerator()
	js, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, js.Required, "port")
}
