// Package transformity resolves the unit emergy value to use for each input
// flow of a total-emergy calculation.
//
// Resolution precedence per flow:
//  1. a manual override supplied with the calculation request
//  2. the session's transformity table
//  3. otherwise the flow is unresolved
//
// Resolution is all-or-nothing: any unresolved flow fails the whole request
// with every missing flow named, because a total-emergy calculation cannot
// proceed with partial transformities. Overrides arrive as typed
// (flow, value) pairs; parsing the raw string parameter bag, including the
// sanitized transformity_<flow> key convention, is the caller's boundary
// concern (see internal/engine).
package transformity
