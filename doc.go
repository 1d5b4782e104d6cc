// Package oconf implements the hierarchical configuration engine's
// public facade: the Config access/mutation API (§4.5), the layered
// merge engine (§4.6), and container utilities (§4.8), built on top of
// package node's tree model, package grammar's interpolation parser, and
// package interp's evaluator.
package oconf
