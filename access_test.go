package oconf_test

import (
	"testing"

	"github.com/layeredconf/oconf"
	"github.com/layeredconf/oconf/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{
		"server": map[string]any{
			"host":  "localhost",
			"ports": []any{int64(80), int64(443)},
		},
	})
	require.NoError(t, err)

	v, err := cfg.Get("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", v)

	v, err = cfg.Get("server.ports[1]")
	require.NoError(t, err)
	assert.Equal(t, int64(443), v)

	require.NoError(t, cfg.Set("server.host", "example.com"))

	v, err = cfg.Get("server.host")
	require.NoError(t, err)
	assert.Equal(t, "example.com", v)
}

func TestGetOutOfRangeIndexIsKeyError(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{"list": []any{int64(1)}})
	require.NoError(t, err)

	_, err = cfg.Get("list[5]")
	require.ErrorIs(t, err, oconf.ErrKey)
}

func TestSelectDefaultsOnMissingKey(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{"a": int64(1)})
	require.NoError(t, err)

	v, err := cfg.Select("b.c", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}

func TestUpdateRejectsUnknownFieldInStructMode(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{"a": int64(1)})
	require.NoError(t, err)

	cfg.Root().(node.Container).Flags().Struct = node.True

	err = cfg.Set("b", int64(2))
	require.Error(t, err)
}

func TestUpdateForceAddCreatesIntermediateContainers(t *testing.T) {
	cfg := oconf.New()

	require.NoError(t, cfg.Update("a.b.c", int64(7), oconf.WithForceAdd()))

	v, err := cfg.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestUpdateOnInterpolationStringIsLazy(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{
		"a": int64(5),
		"b": int64(0),
	})
	require.NoError(t, err)

	require.NoError(t, cfg.Set("b", "${a}"))

	v, err := cfg.Get("b")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestHasReportsPresence(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{"a": int64(1)})
	require.NoError(t, err)

	ok, err := cfg.Has("a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cfg.Has("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
