package store

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/gotlim/examdb/core"
)

func insertTestExams(t *testing.T, session *Session) {
	t.Helper()

	exams := []core.Exam{
		{Id: 1, Name: "Algebra", Price: 12.5, IsEdited: 1},
		{Id: 2, Name: "Geometry", Price: 20, IsDeleted: 1},
	}
	for _, exam := range exams {
		if _, err := session.Insert(exam); err != nil {
			t.Fatalf("Failed to insert exam: %v", err)
		}
	}
}

func TestCountEmpty(t *testing.T) {
	session := setupTestSession(t)

	count, err := session.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows, got %d", count)
	}
}

func TestInsertIncrementsCount(t *testing.T) {
	session := setupTestSession(t)
	insertTestExams(t, session)

	count, err := session.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows, got %d", count)
	}
}

func TestInsertReportsOneRecord(t *testing.T) {
	session := setupTestSession(t)

	result, err := session.Insert(core.Exam{Id: 1, Name: "Final"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if result.RecordsWritten != 1 {
		t.Errorf("Expected 1 record written, got %d", result.RecordsWritten)
	}
	if result.LastId != 1 {
		t.Errorf("Expected last id 1, got %d", result.LastId)
	}
	if result.Type() != CommitResultType {
		t.Errorf("Expected commit result type, got %v", result.Type())
	}
}

func TestSelectAllRoundTrip(t *testing.T) {
	session := setupTestSession(t)
	insertTestExams(t, session)

	result, err := session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}

	if result.RecordsRead != 2 {
		t.Fatalf("Expected 2 records, got %d", result.RecordsRead)
	}

	wantColumns := []string{"id", "name", "price", "is_edited", "is_deleted"}
	if len(result.Columns) != len(wantColumns) {
		t.Fatalf("Expected %d columns, got %d", len(wantColumns), len(result.Columns))
	}
	for i, name := range wantColumns {
		if result.Columns[i] != name {
			t.Errorf("Expected column %d to be %s, got %s", i, name, result.Columns[i])
		}
	}

	first := result.Data[0]
	if first[0] != "1" || first[1] != "Algebra" || first[2] != "12.5" {
		t.Errorf("Unexpected first row: %v", first)
	}
	second := result.Data[1]
	if second[0] != "2" || second[1] != "Geometry" || second[2] != "20" {
		t.Errorf("Unexpected second row: %v", second)
	}
}

func TestSelectAllDeclaredTypes(t *testing.T) {
	session := setupTestSession(t)
	insertTestExams(t, session)

	result, err := session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}

	wantTypes := []string{"INTEGER", "TEXT", "REAL", "INTEGER", "INTEGER"}
	for i, declared := range wantTypes {
		if result.Types[i] != declared {
			t.Errorf("Expected column %d declared as %s, got %s", i, declared, result.Types[i])
		}
		if result.Skip[i] {
			t.Errorf("Expected column %d to be rendered", i)
		}
	}
}

func TestDisplayFreshDatabaseHeaderOnly(t *testing.T) {
	session := setupTestSession(t)

	result, err := session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}

	var buf bytes.Buffer
	result.Display(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected header row only, got %d lines", len(lines))
	}

	// Width is the longest column name (is_deleted) plus padding.
	want := fmt.Sprintf("%12s%12s%12s%12s%12s", "id", "name", "price", "is_edited", "is_deleted")
	if lines[0] != want {
		t.Errorf("Unexpected header row:\n got %q\nwant %q", lines[0], want)
	}
}

func TestDisplayRightAlignsRows(t *testing.T) {
	session := setupTestSession(t)
	insertTestExams(t, session)

	result, err := session.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}

	var buf bytes.Buffer
	result.Display(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}

	want := fmt.Sprintf("%12s%12s%12s%12s%12s", "1", "Algebra", "12.5", "1", "0")
	if lines[1] != want {
		t.Errorf("Unexpected data row:\n got %q\nwant %q", lines[1], want)
	}
}

func TestFormatCellDispatch(t *testing.T) {
	cases := []struct {
		declared string
		value    any
		want     string
	}{
		{"REAL", float64(19.99), "19.99"},
		{"REAL", int64(20), "20"},
		{"TEXT", "Algebra", "Algebra"},
		{"TEXT", []byte("Geometry"), "Geometry"},
		{"INTEGER", int64(7), "7"},
		{"REAL", nil, ""},
		{"BLOB", int64(7), ""}, // unrecognized declared type renders nothing
	}

	for _, tc := range cases {
		got := formatCell(tc.declared, tc.value)
		if got != tc.want {
			t.Errorf("formatCell(%s, %v) = %q, want %q", tc.declared, tc.value, got, tc.want)
		}
	}
}

func TestRecognizedType(t *testing.T) {
	for _, declared := range []string{"REAL", "TEXT", "INTEGER"} {
		if !recognizedType(declared) {
			t.Errorf("Expected %s to be recognized", declared)
		}
	}
	for _, declared := range []string{"BLOB", "NUMERIC", ""} {
		if recognizedType(declared) {
			t.Errorf("Expected %s to be unrecognized", declared)
		}
	}
}
