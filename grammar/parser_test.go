package grammar_test

import (
	"testing"

	"github.com/layeredconf/oconf/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextLiteral(t *testing.T) {
	txt, err := grammar.ParseText("hello world")
	require.NoError(t, err)
	require.Len(t, txt.Fragments, 1)
	assert.Equal(t, grammar.FragLiteral, txt.Fragments[0].Kind)
	assert.Equal(t, "hello world", txt.Fragments[0].Literal)
	assert.False(t, txt.SingleInterp)
}

func TestParseTextEscape(t *testing.T) {
	txt, err := grammar.ParseText(`price: \$5`)
	require.NoError(t, err)

	var sawEscape bool
	for _, f := range txt.Fragments {
		if f.Kind == grammar.FragEscape {
			sawEscape = true
			assert.Equal(t, '$', f.Escape)
		}
	}
	assert.True(t, sawEscape)
}

func TestParseTextInvalidEscape(t *testing.T) {
	_, err := grammar.ParseText(`\q`)
	require.Error(t, err)
	assert.ErrorIs(t, err, grammar.ErrParse)
}

func TestParseTextSingleInterp(t *testing.T) {
	txt, err := grammar.ParseText("${a.b}")
	require.NoError(t, err)
	assert.True(t, txt.SingleInterp)
	require.Len(t, txt.Fragments, 1)
	require.NotNil(t, txt.Fragments[0].Interp.Ref)
	assert.Equal(t, 0, txt.Fragments[0].Interp.Ref.NumDots)
	require.Len(t, txt.Fragments[0].Interp.Ref.Segments, 2)
}

func TestParseTextEmbeddedInterp(t *testing.T) {
	txt, err := grammar.ParseText("host=${net.host}:${net.port}")
	require.NoError(t, err)
	assert.False(t, txt.SingleInterp)

	var interps int
	for _, f := range txt.Fragments {
		if f.Kind == grammar.FragInterp {
			interps++
		}
	}
	assert.Equal(t, 2, interps)
}

func TestParseNodeRefRelative(t *testing.T) {
	txt, err := grammar.ParseText("${..sibling.value}")
	require.NoError(t, err)
	ref := txt.Fragments[0].Interp.Ref
	require.NotNil(t, ref)
	assert.Equal(t, 2, ref.NumDots)
	require.Len(t, ref.Segments, 2)
}

func TestParseNodeRefBracketSegment(t *testing.T) {
	txt, err := grammar.ParseText("${list[0].name}")
	require.NoError(t, err)
	ref := txt.Fragments[0].Interp.Ref
	require.Len(t, ref.Segments, 3)
}

func TestParseNodeRefDynamicBracketSegment(t *testing.T) {
	txt, err := grammar.ParseText("${list[${idx}]}")
	require.NoError(t, err)
	ref := txt.Fragments[0].Interp.Ref
	require.Len(t, ref.Segments, 2)
	assert.True(t, ref.Segments[1].SingleInterp)
}

func TestParseResolverCallSimple(t *testing.T) {
	txt, err := grammar.ParseText(`${env:HOME,"/default"}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	require.NotNil(t, call)
	require.Len(t, call.NameParts, 1)
	assert.Equal(t, "env", call.NameParts[0].Literal)
	require.Len(t, call.Args, 2)
	assert.Equal(t, grammar.ElemPrimitive, call.Args[0].Kind)
	assert.Equal(t, "HOME", call.Args[0].Primitive)
	assert.Equal(t, grammar.ElemQuoted, call.Args[1].Kind)
}

func TestParseResolverCallNestedArgInterp(t *testing.T) {
	txt, err := grammar.ParseText(`${select:${.mode},{prod: 1, dev: 0}}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	require.Len(t, call.Args, 2)
	assert.Equal(t, grammar.ElemInterp, call.Args[0].Kind)
	assert.Equal(t, grammar.ElemMap, call.Args[1].Kind)
	require.Len(t, call.Args[1].Map, 2)
}

func TestParseResolverCallTrailingComma(t *testing.T) {
	txt, err := grammar.ParseText(`${f:a,}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	assert.True(t, call.TrailingEmptyArg)
	require.Len(t, call.Args, 1)
}

func TestParseResolverCallNoArgs(t *testing.T) {
	txt, err := grammar.ParseText(`${f:}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	assert.False(t, call.TrailingEmptyArg)
	assert.Len(t, call.Args, 0)
}

func TestParseResolverCallListArg(t *testing.T) {
	txt, err := grammar.ParseText(`${f:[1, 2, "${x}"]}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	require.Len(t, call.Args, 1)
	require.Equal(t, grammar.ElemList, call.Args[0].Kind)
	require.Len(t, call.Args[0].List, 3)
	assert.Equal(t, grammar.ElemQuoted, call.Args[0].List[2].Kind)
}

func TestParseResolverCallDynamicName(t *testing.T) {
	txt, err := grammar.ParseText(`${${resolverName}:a}`)
	require.NoError(t, err)
	call := txt.Fragments[0].Interp.Call
	require.Len(t, call.NameParts, 1)
	require.NotNil(t, call.NameParts[0].Nested)
}

func TestParseUnterminatedInterp(t *testing.T) {
	_, err := grammar.ParseText("${a.b")
	require.Error(t, err)
	assert.ErrorIs(t, err, grammar.ErrParse)
}

func TestParseUnterminatedQuotedArg(t *testing.T) {
	_, err := grammar.ParseText(`${f:"unterminated}`)
	require.Error(t, err)
}
