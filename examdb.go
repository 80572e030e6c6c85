package examdb

import (
	"os"
	"path/filepath"

	"github.com/gotlim/examdb/core"
	"github.com/gotlim/examdb/ps"
	"github.com/gotlim/examdb/store"
)

// Instance bundles an open database session with an optional snapshot
// history.
type Instance struct {
	Session *store.Session
	History *ps.Persistence
}

// Open opens the SQLite database file at path and bootstraps the exam
// table.
func Open(path string) (*Instance, error) {
	session, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Instance{
		Session: session,
	}, nil
}

// WithHistory attaches a snapshot history repository to the instance.
func (instance *Instance) WithHistory(persistence *ps.Persistence) *Instance {
	instance.History = persistence
	return instance
}

// Snapshot records the current bytes of the database file in the attached
// history.
func (instance *Instance) Snapshot(identity core.Identity) (ps.Transaction, error) {
	if instance.History == nil {
		return ps.Transaction{}, ps.ErrNotInitialized
	}

	data, err := os.ReadFile(instance.Session.Path())
	if err != nil {
		return ps.Transaction{}, err
	}

	return instance.History.Record(filepath.Base(instance.Session.Path()), data, identity)
}

// Close releases the database connection.
func (instance *Instance) Close() error {
	return instance.Session.Close()
}
