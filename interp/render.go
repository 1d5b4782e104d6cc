package interp

import "github.com/layeredconf/oconf/grammar"

// canonicalCall renders a resolver call to normalized source text, used as
// the resolver cache key (§4.3): two spellings that parse to the same AST
// produce the same key. The rendering logic lives in package grammar
// (grammar.RenderResolverCall), shared with other callers (e.g. the root
// package's dotlist assignment) that need to reconstruct source text from
// an AST that did not retain its original substring.
func canonicalCall(call *grammar.ResolverCall) string {
	return grammar.RenderResolverCall(call)
}
