package cli

import (
	"fmt"
	"os"

	"github.com/emergylab/emergia/internal/inventory"
	"github.com/emergylab/emergia/internal/session"
)

// readSnapshot reads, schema-validates, and decodes a JSON session file.
// A missing or unreadable file is a command error (exit 2); a file that
// fails validation or decoding is a data failure (exit 1).
func readSnapshot(path string) (inventory.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inventory.Snapshot{}, &IOError{Op: "read session file", Path: path, Err: err}
	}
	if err := session.Validate(data); err != nil {
		return inventory.Snapshot{}, err
	}
	snap, err := session.DecodeJSON(data)
	if err != nil {
		return inventory.Snapshot{}, err
	}
	return snap, nil
}

// loadStore builds an inventory store from a JSON session file.
func loadStore(path string) (*inventory.Store, error) {
	snap, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	st := inventory.NewStore()
	if err := st.Restore(snap); err != nil {
		return nil, fmt.Errorf("restore session from %s: %w", path, err)
	}
	return st, nil
}
