package path_test

import (
	"testing"

	"github.com/layeredconf/oconf/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeMixedNotation(t *testing.T) {
	segs, err := path.Tokenize("a.b[0].c")
	require.NoError(t, err)
	assert.Equal(t, []path.Segment{
		{Kind: path.SegKey, Key: "a"},
		{Kind: path.SegKey, Key: "b"},
		{Kind: path.SegIndex, Index: 0},
		{Kind: path.SegKey, Key: "c"},
	}, segs)
}

func TestTokenizeQuotedBracketKey(t *testing.T) {
	segs, err := path.Tokenize(`a["weird.key"]`)
	require.NoError(t, err)
	assert.Equal(t, []path.Segment{
		{Kind: path.SegKey, Key: "a"},
		{Kind: path.SegKey, Key: "weird.key"},
	}, segs)
}

func TestTokenizeEmpty(t *testing.T) {
	segs, err := path.Tokenize("")
	require.NoError(t, err)
	assert.Nil(t, segs)
}

func TestTokenizeRejectsEmptyComponent(t *testing.T) {
	_, err := path.Tokenize("a..b")
	require.Error(t, err)
	assert.ErrorIs(t, err, path.ErrPath)
}

func TestTokenizeRejectsUnterminatedBracket(t *testing.T) {
	_, err := path.Tokenize("a[0")
	require.Error(t, err)
	assert.ErrorIs(t, err, path.ErrPath)
}

func TestJoinRoundTrip(t *testing.T) {
	segs, err := path.Tokenize("a.b[0].c")
	require.NoError(t, err)
	assert.Equal(t, "a.b[0].c", path.Join(segs))
}
