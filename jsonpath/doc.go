// Package jsonpath evaluates Goessner-style JsonPath expressions against
// value.Value trees.
//
// An expression compiles into an ordered chain of segments. Evaluation feeds
// the root through the chain: each segment maps every candidate node to the
// nodes it selects, and the next segment consumes that output.
//
// Supported syntax:
//   - `$` root, required first character
//   - `.name`, `['name']`, `["a","b"]` child members; `\.` escapes a dot in a dotted name
//   - `..name`, `..['a','b']` members at any depth
//   - `.*`, `[*]` child wildcard; `..*`, `..[*]` every descendant
//   - `[i]`, `[i,j]`, `[start:end:step]` indexes and slices, comma combinable,
//     also recursive as `..[...]`
//   - `[?(<expr>)]` filters, only with WithFilters
//
// Slices follow Python rules: negative bounds count from the end, an
// explicit end is exclusive, an omitted end runs through the last element.
//
// Result order for recursive segments is depth-first pre-order. For `..name`
// and `..*` a match is emitted right before its own subtree is searched. For
// recursive index, slice and filter segments, the selected elements of an
// array are emitted together before the search descends into that array.
//
// Script expressions `[(...)]` are parsed and always rejected with
// ErrNotSupported.
package jsonpath
