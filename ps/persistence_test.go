package ps

import (
	"path/filepath"
	"testing"

	"github.com/gotlim/examdb/core"
)

var testIdentity = core.Identity{Name: "test", Email: "test@test.com"}

func TestNewMemoryPersistence(t *testing.T) {
	persistence, err := NewMemoryPersistence()
	if err != nil {
		t.Fatalf("Failed to create memory persistence: %v", err)
	}

	if !persistence.IsInitialized() {
		t.Error("Expected persistence to be initialized")
	}
}

func TestPersistenceNotInitialized(t *testing.T) {
	var persistence Persistence

	if persistence.IsInitialized() {
		t.Error("Expected uninitialized persistence to return false")
	}

	err := persistence.ensureInitialized()
	if err != ErrNotInitialized {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestNewFilePersistence(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "test.history")

	persistence, err := NewFilePersistence(baseDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	if !persistence.IsInitialized() {
		t.Error("Expected persistence to be initialized")
	}
}

func TestFilePersistenceReopens(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "test.history")

	first, err := NewFilePersistence(baseDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	txn, err := first.Record("test.db", []byte("v1"), testIdentity)
	if err != nil {
		t.Fatalf("Failed to record snapshot: %v", err)
	}

	// Reopening the same directory must find the existing history.
	second, err := NewFilePersistence(baseDir)
	if err != nil {
		t.Fatalf("Failed to reopen file persistence: %v", err)
	}

	latest := second.LatestTransaction()
	if latest.Id != txn.Id {
		t.Errorf("Expected latest transaction %s after reopen, got %s", txn.Id, latest.Id)
	}
}
