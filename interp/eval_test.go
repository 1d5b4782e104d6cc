package interp_test

import (
	"os"
	"testing"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/interp"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, s *node.Scalar, v any) {
	t.Helper()
	require.NoError(t, s.Set(v))
}

func interpScalar(t *testing.T, raw string) *node.Scalar {
	t.Helper()

	_, err := grammar.ParseText(raw)
	require.NoError(t, err)

	s := node.NewScalar(node.KindAny, true)
	mustSet(t, s, node.Interpolation{Raw: raw})

	return s
}

// buildTree constructs:
//
//	database_server: {port: 1234}
//	database_client: {server_port: "${database_server.port}"}
func buildServerClientTree(t *testing.T) *node.MapContainer {
	t.Helper()

	root := node.NewMapContainer(node.FlagSet{})

	dbServer := node.NewMapContainer(node.FlagSet{})
	port := node.NewScalar(node.KindInt, false)
	mustSet(t, port, int64(1234))
	require.NoError(t, dbServer.InsertForce(node.StringKey("port"), port))
	require.NoError(t, root.InsertForce(node.StringKey("database_server"), dbServer))

	dbClient := node.NewMapContainer(node.FlagSet{})
	serverPort := interpScalar(t, "${database_server.port}")
	require.NoError(t, dbClient.InsertForce(node.StringKey("server_port"), serverPort))
	require.NoError(t, root.InsertForce(node.StringKey("database_client"), dbClient))

	return root
}

func TestResolveTextInterpolationPreservesType(t *testing.T) {
	root := buildServerClientTree(t)
	dbClient, _ := root.Get(node.StringKey("database_client"))
	serverPort, _ := dbClient.(*node.MapContainer).Get(node.StringKey("server_port"))

	ev := interp.New(resolver.NewWithBuiltins())
	v, err := ev.Resolve(serverPort.(*node.Scalar))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), v)
}

// TestResolveRelativeNested builds:
//
//	plans: {A: "plan A", B: "plan B"}
//	selected_plan: "A"
//	plan: "${plans[${selected_plan}]}"
//
// and checks that mutating selected_plan changes what plan resolves to.
func TestResolveRelativeNested(t *testing.T) {
	root := node.NewMapContainer(node.FlagSet{})

	plans := node.NewMapContainer(node.FlagSet{})
	a := node.NewScalar(node.KindString, false)
	mustSet(t, a, "plan A")
	require.NoError(t, plans.InsertForce(node.StringKey("A"), a))
	b := node.NewScalar(node.KindString, false)
	mustSet(t, b, "plan B")
	require.NoError(t, plans.InsertForce(node.StringKey("B"), b))
	require.NoError(t, root.InsertForce(node.StringKey("plans"), plans))

	selected := node.NewScalar(node.KindString, false)
	mustSet(t, selected, "A")
	require.NoError(t, root.InsertForce(node.StringKey("selected_plan"), selected))

	plan := interpScalar(t, "${plans[${selected_plan}]}")
	require.NoError(t, root.InsertForce(node.StringKey("plan"), plan))

	ev := interp.New(resolver.NewWithBuiltins())

	v, err := ev.Resolve(plan)
	require.NoError(t, err)
	assert.Equal(t, "plan A", v)

	mustSet(t, selected, "B")

	v, err = ev.Resolve(plan)
	require.NoError(t, err)
	assert.Equal(t, "plan B", v)
}

func TestResolveEnvLookupWithDefault(t *testing.T) {
	require.NoError(t, os.Unsetenv("DB_PASSWORD"))

	root := node.NewMapContainer(node.FlagSet{})

	pw1 := interpScalar(t, "${oc.env:DB_PASSWORD,password}")
	require.NoError(t, root.InsertForce(node.StringKey("pw1"), pw1))

	pw3 := interpScalar(t, "${oc.env:DB_PASSWORD,null}")
	require.NoError(t, root.InsertForce(node.StringKey("pw3"), pw3))

	ev := interp.New(resolver.NewWithBuiltins())

	v1, err := ev.Resolve(pw1)
	require.NoError(t, err)
	assert.Equal(t, "password", v1)

	v3, err := ev.Resolve(pw3)
	require.NoError(t, err)
	assert.Nil(t, v3)
}

func TestResolveCycleDetected(t *testing.T) {
	root := node.NewMapContainer(node.FlagSet{})

	a := interpScalar(t, "${b}")
	require.NoError(t, root.InsertForce(node.StringKey("a"), a))
	b := interpScalar(t, "${a}")
	require.NoError(t, root.InsertForce(node.StringKey("b"), b))

	ev := interp.New(resolver.NewWithBuiltins())
	_, err := ev.Resolve(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, interp.ErrCycle)
}

func TestResolveMissingReferenceIsInterpolationToMissing(t *testing.T) {
	root := node.NewMapContainer(node.FlagSet{})
	ref := interpScalar(t, "${nope}")
	require.NoError(t, root.InsertForce(node.StringKey("ref"), ref))

	ev := interp.New(resolver.NewWithBuiltins())
	_, err := ev.Resolve(ref)
	require.Error(t, err)
	assert.ErrorIs(t, err, interp.ErrToMissing)
}
