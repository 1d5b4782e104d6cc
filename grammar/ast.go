// Package grammar implements the lexer, parser, and AST for the
// interpolation grammar: ${node.reference} and ${resolver:arg,arg} forms
// embedded in scalar text, plus the Element sub-grammar used for resolver
// arguments and inline container literals.
package grammar

// FragKind identifies the variant of a Fragment.
type FragKind int

const (
	FragLiteral FragKind = iota
	FragEscape
	FragInterp
)

// Fragment is one piece of a parsed Text: a run of literal characters, a
// single escaped character, or an interpolation.
type Fragment struct {
	Kind    FragKind
	Literal string // set when Kind == FragLiteral
	Escape  rune   // set when Kind == FragEscape: the literal character the escape produced
	Interp  *Interp
}

// Text is the result of parsing the Text production: a sequence of
// fragments. SingleInterp is true when Text is exactly one top-level
// interpolation with no surrounding literal text, in which case the
// evaluator preserves the referent's type instead of stringifying it.
type Text struct {
	Fragments    []Fragment
	SingleInterp bool
}

// Interp is an interpolation: either a node reference or a resolver call.
// Exactly one of Ref or Call is non-nil.
type Interp struct {
	Ref  *NodeRef
	Call *ResolverCall
}

// NodeRef is a `${[.[.[...]]]segment[.segment|[segment]]*}` reference.
type NodeRef struct {
	// NumDots is the count of leading dots: 0 means the path is absolute
	// (resolved from the evaluation root), N means ascend N parents from
	// the anchor node before resolving the remaining segments.
	NumDots int
	// Segments are evaluated left to right; each is itself a Text so that
	// bracket segments can embed nested interpolations for dynamic key
	// lookup (§4.2).
	Segments []*Text
}

// ResolverCall is a `${name[.name]*:arg[,arg]*}` call.
type ResolverCall struct {
	// NameParts are dot-joined; each part is either a literal identifier
	// or (for dynamic resolver selection) a nested interpolation.
	NameParts []NamePart
	Args      []Element
	// TrailingEmptyArg is true when the argument list ends with a bare
	// comma (e.g. "${f:a,}"), a deprecated but accepted form (§4.3, §9).
	TrailingEmptyArg bool
}

// NamePart is one dot-separated component of a resolver name.
type NamePart struct {
	Literal string
	Nested  *Text // non-nil for an inline interpolation name component
}

// ElementKind identifies the variant of an Element.
type ElementKind int

const (
	ElemPrimitive ElementKind = iota
	ElemQuoted
	ElemList
	ElemMap
	ElemInterp
)

// Element is one value in the resolver-argument / inline-container
// sub-grammar: a primitive literal, a quoted string (itself a Text, so it
// may embed interpolations), a bracketed list, a braced map, or a bare
// interpolation.
type Element struct {
	Kind      ElementKind
	Primitive string      // set when Kind == ElemPrimitive (whitespace-trimmed)
	Quoted    *Text       // set when Kind == ElemQuoted
	List      []Element   // set when Kind == ElemList
	Map       []MapEntry  // set when Kind == ElemMap
	Interp    *Interp     // set when Kind == ElemInterp
}

// MapEntry is one key/value pair of an inline map literal.
type MapEntry struct {
	Key   string
	Value Element
}
