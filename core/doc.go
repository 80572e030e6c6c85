// Package core provides core types used throughout examdb.
//
// The package defines the Exam record the harness reads and writes, and
// the Identity attached to snapshot commits.
//
// # Exam
//
// Exam is the one record type in the system. Ids are assigned by the
// caller as prior row count plus sequence number:
//
//	exam := core.Exam{
//	    Id:    4,
//	    Name:  "Midterm",
//	    Price: 19.99,
//	}
//
// # Identity
//
// Identity identifies the author of snapshot commits (Git commit author):
//
//	identity := core.Identity{
//	    Name:  "John Doe",
//	    Email: "john@example.com",
//	}
package core
