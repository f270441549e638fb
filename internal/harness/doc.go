// Package harness provides a YAML-driven conformance harness for the
// calculation engine.
//
// A scenario describes one end-to-end run: an optional inline session, a
// sequence of edit steps against the inventory store, one calculation, and
// the expected outcome. Expectations cover per-process values, index values,
// summary lines, and failure classes. Rendered reports can additionally be
// compared against golden files for byte-exact regression coverage.
//
// Scenarios run with a fixed run token so traces and reports are
// deterministic and safe to commit as golden files.
package harness
