// Package store provides SQLite-backed storage for exam records.
//
// The Session type is the main entry point. It holds the single database
// connection for the process lifetime and bootstraps the exam table on open.
//
// # Session Usage
//
//	session, err := store.Open("test.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	result, err := session.SelectAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Display(os.Stdout)
//
// # Result Types
//
// There are two result types:
//   - QueryResult: returned by SelectAll
//   - CommitResult: returned by Insert
//
// QueryResult carries column names, declared column types, and the
// formatted data rows. CommitResult carries the written-record count and
// the id of the last record written. Both satisfy the Result interface.
//
// The package also moves whole database files to and from remote
// locations (s3://, http(s)://, file://) via Push and Pull.
package store
