package resolver_test

import (
	"os"
	"testing"

	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReplaceSemantics(t *testing.T) {
	r := resolver.New()
	require.NoError(t, r.Register("f", resolver.PlainFunc(func(args []any) (any, error) { return 1, nil }), false, false))

	err := r.Register("f", resolver.PlainFunc(func(args []any) (any, error) { return 2, nil }), false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrAlreadyRegistered)

	require.NoError(t, r.Register("f", resolver.PlainFunc(func(args []any) (any, error) { return 2, nil }), true, false))

	snap := r.Snapshot()
	v, err := snap.Call(resolver.Context{}, "f", nil, "")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestRegisterRejectsInvalidFunc(t *testing.T) {
	r := resolver.New()
	err := r.Register("bad", func() {}, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrInvalidFunc)
}

func TestClearAndHas(t *testing.T) {
	r := resolver.New()
	require.NoError(t, r.Register("f", resolver.PlainFunc(func(args []any) (any, error) { return nil, nil }), false, false))
	assert.True(t, r.Has("f"))
	assert.True(t, r.Clear("f"))
	assert.False(t, r.Has("f"))
	assert.False(t, r.Clear("f"))
}

func TestCacheKeyedByNormalizedText(t *testing.T) {
	r := resolver.New()
	calls := 0
	require.NoError(t, r.Register("f", resolver.PlainFunc(func(args []any) (any, error) {
		calls++

		return calls, nil
	}), false, true))

	snap := r.Snapshot()

	v1, err := snap.Call(resolver.Context{}, "f", []any{"0", "1"}, "0,1")
	require.NoError(t, err)
	v2, err := snap.Call(resolver.Context{}, "f", []any{"0", "1"}, "0,1")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, calls)

	_, err = snap.Call(resolver.Context{}, "f", []any{"2", "3"}, "2,3")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSnapshotIsStableAcrossRegistryMutation(t *testing.T) {
	r := resolver.New()
	require.NoError(t, r.Register("f", resolver.PlainFunc(func(args []any) (any, error) { return "v1", nil }), false, false))

	snap := r.Snapshot()
	r.Clear("f")
	require.NoError(t, r.Register("g", resolver.PlainFunc(func(args []any) (any, error) { return "v2", nil }), false, false))

	assert.True(t, snap.Has("f"))
	assert.False(t, snap.Has("g"))
}

func TestBuiltinEnvLookup(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	require.NoError(t, os.Setenv("OCONF_TEST_VAR", "hello"))
	defer os.Unsetenv("OCONF_TEST_VAR")

	v, err := snap.Call(resolver.Context{}, "oc.env", []any{"OCONF_TEST_VAR"}, "OCONF_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestBuiltinEnvLookupDefaultNull(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	os.Unsetenv("OCONF_TEST_VAR_ABSENT")

	v, err := snap.Call(resolver.Context{}, "oc.env", []any{"OCONF_TEST_VAR_ABSENT", "null"}, "OCONF_TEST_VAR_ABSENT,null")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestBuiltinEnvLookupDefaultString(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	os.Unsetenv("OCONF_TEST_VAR_ABSENT2")

	v, err := snap.Call(resolver.Context{}, "oc.env", []any{"OCONF_TEST_VAR_ABSENT2", "password"}, "OCONF_TEST_VAR_ABSENT2,password")
	require.NoError(t, err)
	assert.Equal(t, "password", v)
}

func TestBuiltinDecodePrimitive(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	v, err := snap.Call(resolver.Context{}, "oc.decode", []any{"42"}, `"42"`)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestBuiltinDecodeList(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	v, err := snap.Call(resolver.Context{}, "oc.decode", []any{"[1, 2, true]"}, `"[1, 2, true]"`)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), true}, v)
}

func TestBuiltinSubconfig(t *testing.T) {
	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	v, err := snap.Call(resolver.Context{}, "oc.subconfig", []any{map[string]any{"a": int64(1)}}, "")
	require.NoError(t, err)

	m, ok := v.(*node.MapContainer)
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestBuiltinSelectWithDefault(t *testing.T) {
	root := node.NewMapContainer(node.FlagSet{})
	child := node.NewScalar(node.KindInt, false)
	require.NoError(t, child.Set(int64(7)))
	require.NoError(t, root.InsertForce(node.StringKey("a"), child))

	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	v, err := snap.Call(resolver.Context{Parent: root}, "oc.select", []any{"a", "fallback"}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v2, err := snap.Call(resolver.Context{Parent: root}, "oc.select", []any{"missing", "fallback"}, "")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v2)
}

func TestBuiltinDictKeysAndValues(t *testing.T) {
	m := node.NewMapContainer(node.FlagSet{})
	a := node.NewScalar(node.KindInt, false)
	require.NoError(t, a.Set(int64(1)))
	require.NoError(t, m.InsertForce(node.StringKey("a"), a))

	r := resolver.NewWithBuiltins()
	snap := r.Snapshot()

	keys, err := snap.Call(resolver.Context{}, "oc.dict.keys", []any{m}, "")
	require.NoError(t, err)
	keysList := keys.(*node.ListContainer)
	assert.Equal(t, 1, keysList.Len())

	values, err := snap.Call(resolver.Context{}, "oc.dict.values", []any{m}, "")
	require.NoError(t, err)
	valuesList := values.(*node.ListContainer)
	assert.Equal(t, 1, valuesList.Len())
}
