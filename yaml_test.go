package oconf_test

import (
	"testing"

	"github.com/layeredconf/oconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLBasic(t *testing.T) {
	cfg, err := oconf.LoadYAML([]byte("a: 1\nb:\n  c: hello\nd:\n  - 1\n  - 2\n"))
	require.NoError(t, err)

	v, err := cfg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = cfg.Get("b.c")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = cfg.Get("d[1]")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestLoadYAMLEmptyDocumentYieldsEmptyMap(t *testing.T) {
	cfg, err := oconf.LoadYAML([]byte(""))
	require.NoError(t, err)

	out, err := cfg.ToContainer(true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)
}

func TestLoadYAMLDuplicateKeyIsError(t *testing.T) {
	_, err := oconf.LoadYAML([]byte("a: 1\na: 2\n"))
	require.ErrorIs(t, err, oconf.ErrYAML)
}

func TestLoadYAMLMissingLiteral(t *testing.T) {
	cfg, err := oconf.LoadYAML([]byte("a: ???\n"))
	require.NoError(t, err)

	_, err = cfg.Get("a")
	require.ErrorIs(t, err, oconf.ErrMissingMandatory)
}

func TestSaveYAMLRoundTripsMissingAndInterpolation(t *testing.T) {
	cfg, err := oconf.LoadYAML([]byte("a: ???\nb: \"${a}\"\n"))
	require.NoError(t, err)

	out, err := cfg.SaveYAML()
	require.NoError(t, err)

	reloaded, err := oconf.LoadYAML(out)
	require.NoError(t, err)

	_, err = reloaded.Get("a")
	require.ErrorIs(t, err, oconf.ErrMissingMandatory)

	raw, err := reloaded.SelectRaw("b")
	require.NoError(t, err)
	assert.NotNil(t, raw)
}
