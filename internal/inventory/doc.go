// Package inventory implements the Life-Cycle Inventory (LCI) store.
//
// The store owns three pieces of session state:
//   - the LCI matrix: named rows (input flows) by named columns
//     (processes/products), each cell either a finite float64 or unset
//   - unit metadata for flows and processes
//   - the transformity table (flow name -> unit emergy value)
//
// DATA MODEL:
//
// Unset vs zero:
// Cells live in a presence map keyed by (flow, process). A missing key means
// "unset", which display paths must render distinctly from 0.0. Only the
// dense matrix used for numeric aggregation materializes unset cells as 0.0.
//
// Axis identity:
// Flow and process names are insertion-ordered, unique per axis, trimmed of
// surrounding whitespace, and compared verbatim (case-sensitive). Adding an
// axis member implicitly backfills the opposite axis with unset cells;
// removing one deletes its cells and unit entry without disturbing siblings.
//
// CONCURRENCY:
//
// A Store is exclusively owned by one logical session. Mutations and reads
// are nonetheless guarded by a single reader/writer lock so a calculation
// can read a consistent snapshot if a caller does share the store.
package inventory
