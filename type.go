// Package fathom implements a declarative engine for extracting and
// classifying regions of a DOM-shaped document. A ruleset is an unordered
// collection of rules (LHS → RHS); binding a ruleset to a document and
// querying it runs the smallest sufficient subset of rules in a correct
// order, caching intermediate state along the way.
package fathom

// Type is a user-chosen label forming the namespace over which scores,
// notes, and LHS selection are keyed. Types are plain strings so callers
// never need a registry to mint one.
type Type string
