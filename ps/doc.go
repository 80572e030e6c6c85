// Package ps provides the Git-backed snapshot history for examdb.
//
// Every snapshot of a database file is a Git commit holding the file's
// bytes. This gives the harness history tracking and the ability to
// revert the database to any recorded point.
//
// # Usage
//
//	persistence, err := ps.NewFilePersistence("test.history")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	txn, err := persistence.Record("test.db", data, identity)
//	...
//	data, err := persistence.Retrieve("test.db", txn.Id)
//
// Memory persistence exists for tests; file persistence is what the CLI
// uses, keeping the history repository beside the database file.
package ps
