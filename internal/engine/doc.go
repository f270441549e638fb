// Package engine implements the emergy calculation engine.
//
// The engine is stateless request/response: Calculate takes a typed Request
// (mode plus mode-specific inputs), reads a live snapshot of the inventory
// store, and returns a fresh *Results bundle or an error - never both, and
// never a bundle mixing data from two runs.
//
// CALCULATION MODES:
//
// direct_inputs_sum:
// Per-process column sums of the dense LCI matrix. An empty axis is not an
// error; it yields zero (or empty) sums with an explanatory summary line.
//
// total_emergy:
// Resolves a transformity per input flow (manual overrides win over the
// table; any unresolved flow aborts the run), then computes
// contribution[flow, process] = lci[flow, process] * transformity[flow] and
// per-process totals. A completely empty matrix is a hard failure; a matrix
// with processes but no flows succeeds with all-zero totals.
//
// emergy_indices:
// Pure scalar computation over R (renewable), N (non-renewable), F
// (purchased), and optional Y (yield, defaulting to R+N+F). EYR, ELR, and
// ESI follow the exact branch logic of the reference formulas, including the
// +Inf and NaN edge combinations; callers must not reinterpret those
// branches.
//
// ERROR HANDLING:
//
// All failures are terminal for the current run only. Parameter problems are
// collected and reported together (*ParamError, *MalformedOverrideError);
// missing transformities are reported together (*UnresolvedError); structural
// inconsistency between matrix and transformity vector is reported as a
// *CalcError rather than panicking.
package engine
