// Package examdb provides a small test harness around a SQLite3 database.
//
// The harness opens (or creates) a database file holding a single exam
// table, inserts operator-entered records, and prints the full table
// contents as a column-aligned text grid. All SQL execution, connection
// management, and type marshalling are delegated to database/sql with the
// modernc.org/sqlite driver.
//
// # Quick Start
//
//	instance, err := examdb.Open("test.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer instance.Close()
//
//	count, _ := instance.Session.Count()
//	instance.Session.Insert(core.Exam{Id: uint64(count) + 1, Name: "Final", Price: 25})
//
//	result, _ := instance.Session.SelectAll()
//	result.Display(os.Stdout)
//
// An Instance can additionally carry a snapshot history (package ps)
// recording the database file in a local Git repository.
package examdb
