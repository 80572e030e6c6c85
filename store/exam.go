package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gotlim/examdb/core"
)

// Count returns the current number of rows in the exam table.
func (session *Session) Count() (int64, error) {
	var count int64
	if err := session.db.QueryRow("select count(*) from exam").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count exams: %w", err)
	}
	return count, nil
}

// Insert writes one exam record immediately. No transaction wrapping.
func (session *Session) Insert(exam core.Exam) (CommitResult, error) {
	_, err := session.db.Exec(
		"insert into exam(id, name, price, is_edited, is_deleted) values(?, ?, ?, ?, ?)",
		exam.Id, exam.Name, exam.Price, exam.IsEdited, exam.IsDeleted)
	if err != nil {
		return CommitResult{}, fmt.Errorf("failed to insert exam: %w", err)
	}
	return CommitResult{LastId: exam.Id, RecordsWritten: 1}, nil
}

// SelectAll reads every row of the exam table. Cell values are formatted
// by the column's declared type; columns with an unrecognized declared
// type are marked skipped and render as nothing.
func (session *Session) SelectAll() (QueryResult, error) {
	rows, err := session.db.Query("select * from exam")
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to select exams: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to read column names: %w", err)
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to read column types: %w", err)
	}

	declared := make([]string, len(types))
	skip := make([]bool, len(types))
	for i, columnType := range types {
		declared[i] = strings.ToUpper(columnType.DatabaseTypeName())
		skip[i] = !recognizedType(declared[i])
	}

	result := QueryResult{
		Columns: columns,
		Types:   declared,
		Skip:    skip,
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return QueryResult{}, fmt.Errorf("failed to scan exam row: %w", err)
		}

		row := make([]string, len(columns))
		for i, value := range values {
			row[i] = formatCell(declared[i], value)
		}
		result.Data = append(result.Data, row)
		result.RecordsRead++
	}

	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("failed to iterate exams: %w", err)
	}

	return result, nil
}

// recognizedType reports whether cells of the given declared type are
// rendered at all.
func recognizedType(declared string) bool {
	switch declared {
	case "REAL", "TEXT", "INTEGER":
		return true
	}
	return false
}

// formatCell renders a single scanned value according to the column's
// declared type. Unrecognized types produce an empty cell.
func formatCell(declared string, value any) string {
	if value == nil {
		return ""
	}

	switch declared {
	case "REAL":
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64)
		case int64:
			return strconv.FormatFloat(float64(v), 'g', -1, 64)
		}

	case "TEXT":
		switch v := value.(type) {
		case string:
			return v
		case []byte:
			return string(v)
		}

	case "INTEGER":
		switch v := value.(type) {
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	}

	return ""
}
