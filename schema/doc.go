// Package schema implements structured-schema binding: projecting a
// user-declared record type (ordered named fields with type hints,
// optionality, defaults, and default-factories) onto a node.MapContainer,
// so that subsequent mutation and merge are validated against the
// record's field metadata (§4.7).
package schema
