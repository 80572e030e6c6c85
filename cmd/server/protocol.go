// Package main provides a TCP server exposing the examdb store.
package main

import (
	"encoding/json"

	"github.com/gotlim/examdb/core"
)

// Request represents one client operation.
type Request struct {
	Op    string     `json:"op"`              // "auth", "insert", "select", or "snapshot"
	Token string     `json:"token,omitempty"` // JWT for "auth"
	Exam  *core.Exam `json:"exam,omitempty"`  // record for "insert"; Id is assigned server-side
}

// Response represents the server's answer to a request.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "query", "commit", or "snapshot"
	Result  json.RawMessage `json:"result,omitempty"`
}

// QueryResponse contains tabular select results.
type QueryResponse struct {
	Columns     []string   `json:"columns"`
	Data        [][]string `json:"data"`
	RecordsRead int        `json:"records_read"`
}

// CommitResponse contains insert results.
type CommitResponse struct {
	Id             uint64 `json:"id"` // id assigned to the inserted record
	RecordsWritten int    `json:"records_written"`
}

// SnapshotResponse describes a snapshot recorded in the history.
type SnapshotResponse struct {
	Id     string `json:"id"`
	Author string `json:"author"` // "Name <email>" format
}

// EncodeResponse serializes a Response to JSON with a newline.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeRequest parses a JSON request from a byte slice.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(data, &req)
	return req, err
}
