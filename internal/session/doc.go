// Package session persists inventory snapshots.
//
// Two surfaces:
//
// File snapshots: EncodeJSON/DecodeJSON translate between a snapshot and the
// plain JSON record exchanged with external collaborators (matrix with null
// for unset cells, units map, transformity table). Validate checks a raw
// JSON document against the embedded CUE #Session schema before decoding.
// Decoding tolerates malformed numeric cells by coercing them to unset; it
// never aborts a whole load over one bad cell.
//
// Named sessions: Store keeps snapshots in a SQLite database (WAL mode,
// msgpack-encoded payloads) keyed by session name, with save/load/list/
// delete operations. Saving an existing name overwrites it.
//
// All failures leave caller state unchanged: loads decode fully before
// anything is returned.
package session
