package oconf_test

import (
	"testing"

	"github.com/layeredconf/oconf"
	"github.com/layeredconf/oconf/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenScopeLiftsReadOnlyForDuration(t *testing.T) {
	cfg, err := oconf.FromNative(map[string]any{"a": int64(1)})
	require.NoError(t, err)

	cfg.Root().(node.Container).Flags().ReadOnly = node.True

	err = cfg.Set("a", int64(2))
	require.Error(t, err)

	err = cfg.OpenScope("", func() error {
		return cfg.Set("a", int64(2))
	})
	require.NoError(t, err)

	v, err := cfg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	// Restored after scope exit.
	err = cfg.Set("a", int64(3))
	require.Error(t, err)
}
