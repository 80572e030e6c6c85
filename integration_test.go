package examdb

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gotlim/examdb/core"
	"github.com/gotlim/examdb/ps"
	"github.com/gotlim/examdb/store"
)

var testIdentity = core.Identity{Name: "test", Email: "test@test.com"}

func TestOpenInsertSelect(t *testing.T) {
	instance, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open instance: %v", err)
	}
	defer instance.Close()

	count, err := instance.Session.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	exams := []core.Exam{
		{Id: uint64(count) + 1, Name: "Algebra", Price: 12.5},
		{Id: uint64(count) + 2, Name: "Geometry", Price: 20},
	}
	for _, exam := range exams {
		if _, err := instance.Session.Insert(exam); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := instance.Session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}
	if result.RecordsRead != 2 {
		t.Errorf("Expected 2 records, got %d", result.RecordsRead)
	}

	var buf bytes.Buffer
	result.Display(&buf)
	if !strings.Contains(buf.String(), "Algebra") {
		t.Errorf("Expected Algebra in display output, got %q", buf.String())
	}
}

func TestSnapshotWithoutHistory(t *testing.T) {
	instance, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open instance: %v", err)
	}
	defer instance.Close()

	if _, err := instance.Snapshot(testIdentity); err != ps.ErrNotInitialized {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestSnapshotAndRetrieve(t *testing.T) {
	dir := t.TempDir()

	instance, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open instance: %v", err)
	}
	defer instance.Close()

	persistence, err := ps.NewFilePersistence(filepath.Join(dir, "test.history"))
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	instance.WithHistory(&persistence)

	if _, err := instance.Session.Insert(core.Exam{Id: 1, Name: "Final", Price: 30}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	txn, err := instance.Snapshot(testIdentity)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if txn.Id == "" {
		t.Fatal("Expected transaction id")
	}

	onDisk, err := os.ReadFile(instance.Session.Path())
	if err != nil {
		t.Fatalf("Failed to read database file: %v", err)
	}

	recorded, err := persistence.Retrieve("test.db", txn.Id)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !bytes.Equal(onDisk, recorded) {
		t.Error("Recorded snapshot bytes differ from the database file")
	}
}

func TestPushedFileOpensAgain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	instance, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open instance: %v", err)
	}
	if _, err := instance.Session.Insert(core.Exam{Id: 1, Name: "Backed up", Price: 9.5}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	instance.Close()

	target := filepath.Join(dir, "copy.db")
	if err := store.Push(context.Background(), path, target, nil); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	copied, err := Open(target)
	if err != nil {
		t.Fatalf("Failed to open pushed copy: %v", err)
	}
	defer copied.Close()

	result, err := copied.Session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll on copy failed: %v", err)
	}
	if result.RecordsRead != 1 {
		t.Errorf("Expected 1 record in copy, got %d", result.RecordsRead)
	}
}
