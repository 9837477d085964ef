// Package server implements the TCP listener and per-connection loop: read
// bytes, parse one RESP command, dispatch it through the command registry,
// write the response, and repeat until QUIT, EOF, or an unrecoverable I/O
// error.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/kass/spatio/internal/command"
	"github.com/kass/spatio/internal/resp"
)

// Server owns the listener and dispatches accepted connections to their own
// goroutine; each connection's loop shares no mutable state with any other
// except through the command registry's store.
type Server struct {
	registry *command.Registry
	logger   *log.Logger
}

// New builds a Server dispatching through registry, logging to logger (or
// a default stderr logger if nil).
func New(registry *command.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{registry: registry, logger: logger}
}

// ListenAndServe binds addr and serves connections until accepting fails
// (for example because the listener was closed); it returns that error.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer ln.Close()

	s.logger.Printf("listening on %s", addr)
	return s.Serve(ln)
}

// Serve accepts connections from ln until it is closed, dispatching each
// to its own goroutine. Separated from ListenAndServe so callers (and
// tests) that need the bound ephemeral address can create the listener
// themselves.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for {
		value, err := resp.Parse(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_, writeErr := io.WriteString(conn, resp.Serialize(resp.NewError("ERR "+err.Error())))
			if writeErr != nil {
				return
			}
			// A malformed value leaves the stream framing unrecoverable;
			// there is no way to resynchronize, so the connection closes.
			return
		}

		name, cmdArgs, ok := commandParts(value)
		if !ok {
			io.WriteString(conn, resp.Serialize(resp.NewError("ERR invalid request: expected array of bulk strings")))
			continue
		}

		response, shouldClose := s.registry.Execute(name, cmdArgs)
		if _, err := io.WriteString(conn, resp.Serialize(response)); err != nil {
			s.logger.Printf("write error: %v", err)
			return
		}
		if shouldClose {
			return
		}
	}
}

// commandParts extracts the command name and remaining arguments from a
// parsed RESP array value.
func commandParts(v resp.Value) (string, []resp.Value, bool) {
	if v.Kind != resp.Array || v.Null || len(v.Items) == 0 {
		return "", nil, false
	}
	first := v.Items[0]
	if first.Kind != resp.BulkString || first.Null {
		return "", nil, false
	}
	return first.Str, v.Items[1:], true
}
