package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/gotlim/examdb"
	"github.com/gotlim/examdb/core"
	"github.com/gotlim/examdb/store"
)

// Server is a TCP server that exposes the examdb store: one JSON request
// per line, one JSON response per line.
type Server struct {
	listener   net.Listener
	instance   *examdb.Instance
	identity   core.Identity
	authConfig *AuthConfig
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewServer creates a new server around an open instance.
func NewServer(instance *examdb.Instance, identity core.Identity, authConfig *AuthConfig) *Server {
	return &Server{
		instance:   instance,
		identity:   identity,
		authConfig: authConfig,
		done:       make(chan struct{}),
	}
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("examdb server listening on %s", listener.Addr())

	if s.instance.History.IsInitialized() {
		if latest := s.instance.History.LatestTransaction(); latest.Id != "" {
			log.Printf("latest snapshot %s by %s", latest.Id, latest.Author)
		}
	}

	go s.acceptLoop()
	return nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	state := &ConnectionState{}
	if s.authConfig == nil || !s.authConfig.Enabled {
		// No auth: every connection acts as the server identity.
		state.identity = &s.identity
		state.authenticated = true
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		req, err := DecodeRequest(line)
		if err != nil {
			s.respond(conn, Response{Error: "malformed request"})
			continue
		}

		s.respond(conn, s.dispatch(state, req))
	}
}

func (s *Server) dispatch(state *ConnectionState, req Request) Response {
	switch req.Op {
	case "auth":
		if err := s.authenticate(state, req.Token); err != nil {
			return Response{Error: err.Error()}
		}
		return Response{Success: true}

	case "insert":
		if !state.IsAuthenticated() {
			return Response{Error: "not authenticated"}
		}
		if req.Exam == nil {
			return Response{Error: "insert requires an exam record"}
		}
		return s.handleInsert(*req.Exam)

	case "select":
		if !state.IsAuthenticated() {
			return Response{Error: "not authenticated"}
		}
		return s.handleSelect()

	case "snapshot":
		if !state.IsAuthenticated() {
			return Response{Error: "not authenticated"}
		}
		return s.handleSnapshot(state)

	default:
		return Response{Error: fmt.Sprintf("unknown op: %s", req.Op)}
	}
}

func (s *Server) handleInsert(exam core.Exam) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.instance.Session.Count()
	if err != nil {
		return Response{Error: err.Error()}
	}
	exam.Id = uint64(count) + 1

	result, err := s.instance.Session.Insert(exam)
	if err != nil {
		return Response{Error: err.Error()}
	}

	return encodeResult(result)
}

func (s *Server) handleSelect() Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.instance.Session.SelectAll()
	if err != nil {
		return Response{Error: err.Error()}
	}

	return encodeResult(result)
}

// handleSnapshot records the database file in the attached history,
// authored by the connection's authenticated identity. Connections without
// one (auth disabled) fall back to the server identity.
func (s *Server) handleSnapshot(state *ConnectionState) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := s.identity
	if id := state.Identity(); id != nil {
		identity = *id
	}

	txn, err := s.instance.Snapshot(identity)
	if err != nil {
		return Response{Error: err.Error()}
	}

	payload, err := json.Marshal(SnapshotResponse{Id: txn.Id, Author: txn.Author})
	if err != nil {
		return Response{Error: err.Error()}
	}

	return Response{Success: true, Type: "snapshot", Result: payload}
}

// encodeResult converts a store result into its wire response.
func encodeResult(result store.Result) Response {
	switch r := result.(type) {
	case store.QueryResult:
		payload, err := json.Marshal(QueryResponse{
			Columns:     r.Columns,
			Data:        r.Data,
			RecordsRead: r.RecordsRead,
		})
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{Success: true, Type: "query", Result: payload}

	case store.CommitResult:
		payload, err := json.Marshal(CommitResponse{
			Id:             r.LastId,
			RecordsWritten: r.RecordsWritten,
		})
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{Success: true, Type: "commit", Result: payload}

	default:
		return Response{Error: fmt.Sprintf("unknown result type: %d", result.Type())}
	}
}

func (s *Server) respond(w io.Writer, resp Response) {
	data, err := EncodeResponse(resp)
	if err != nil {
		log.Printf("encode error: %v", err)
		return
	}
	if _, err := w.Write(data); err != nil {
		log.Printf("write error: %v", err)
	}
}
