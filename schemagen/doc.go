// Package schemagen generates a JSON Schema (Draft 7) from a live
// *oconf.Config tree or a *schema.Binding, on a best-effort, fail-open
// basis: it never assumes a config tree is a complete representation of
// the schema. Its pipeline — structural inference over the tree, union
// merge across multiple inputs by type-widening, deterministic property
// order — is adapted directly from the teacher's magicschema package,
// retargeted from walking a goccy/go-yaml AST to walking a node.Node
// tree. Structured-schema-bound subtrees (node.MapContainer.SchemaRef of
// type *schema.Binding) are projected authoritatively via
// [schema.Binding.JSONSchema] instead of inferred structurally.
package schemagen
