// Package server implements the accept loop, the request dispatcher and the
// start/stop lifecycle of the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/request"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/router"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
	"github.com/Brownie44l1/simplehttp/internal/static"
	"github.com/Brownie44l1/simplehttp/internal/stats"
)

var (
	ErrServerStopped  = errors.New("server stopped")
	ErrAlreadyStarted = errors.New("server already started")
)

// State is the lifecycle state of a Server.
type State int32

const (
	StateInitializing State = iota
	StateListening
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateListening:
		return "listening"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Config holds the settings the server needs at runtime.
type Config struct {
	Addr           string // host:port, port 0 picks a free port
	Root           string
	MimeTypes      map[string]string
	IndexFiles     []string
	ReadTimeout    time.Duration // 0 disables the deadline
	WriteTimeout   time.Duration
	MaxConnections int // 0 means unbounded
	MaxHeaderBytes int
}

// Server accepts connections and answers exactly one request on each.
type Server struct {
	cfg     Config
	tracker *stats.Tracker
	handler servlet.Handler
	logger  logger.Logger
	newID   func() string

	mu       sync.Mutex
	state    atomic.Int32
	listener net.Listener
	conns    map[net.Conn]struct{}
	sem      chan struct{}
	quit     chan struct{}
	loopDone chan struct{}
	wg       sync.WaitGroup
}

// New creates a server that dispatches to routes and falls back to the files
// below cfg.Root. Nothing is bound until Start.
func New(cfg Config, routes *router.Router, tracker *stats.Tracker, opts ...Option) (*Server, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if routes == nil {
		routes = router.New()
	}
	if tracker == nil {
		tracker = stats.NewTracker()
	}

	files, err := static.New(cfg.Root, cfg.MimeTypes, cfg.IndexFiles)
	if err != nil {
		return nil, err
	}

	d := &dispatcher{
		routes:    routes,
		files:     files,
		errorPage: o.errorPage,
		tracker:   tracker,
		logger:    o.logger,
	}

	mws := append([]servlet.Middleware{
		LoggingMiddleware(o.logger),
		RecoveryMiddleware(o.logger),
	}, o.middleware...)

	s := &Server{
		cfg:      cfg,
		tracker:  tracker,
		handler:  servlet.Chain(d, mws...),
		logger:   o.logger,
		newID:    o.newID,
		conns:    make(map[net.Conn]struct{}),
		quit:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	if cfg.MaxConnections > 0 {
		s.sem = make(chan struct{}, cfg.MaxConnections)
	}

	return s, nil
}

// Start binds the listening socket and runs the accept loop in the
// background. A bind failure is returned and leaves the server unstarted.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.State() {
	case StateListening:
		return ErrAlreadyStarted
	case StateStopping, StateStopped:
		return ErrServerStopped
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	s.listener = ln
	s.state.Store(int32(StateListening))

	s.logger.Info("server listening", logger.F("addr", ln.Addr().String()), logger.F("root", s.cfg.Root))

	go s.acceptLoop(ln)
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) State() State {
	return State(s.state.Load())
}

// Tracker returns the statistics the server records into.
func (s *Server) Tracker() *stats.Tracker {
	return s.tracker
}

// Stop closes the listener and waits for in-flight connections to finish.
// When ctx expires first the remaining connections are closed without
// waiting for their handlers and ctx's error is returned. Stopping a server
// that never started only marks it stopped.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	switch s.State() {
	case StateInitializing:
		s.state.Store(int32(StateStopped))
		s.mu.Unlock()
		return nil
	case StateStopping, StateStopped:
		s.mu.Unlock()
		return ErrServerStopped
	}

	s.state.Store(int32(StateStopping))
	close(s.quit)
	err := s.listener.Close()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("closing listener", logger.Err(err))
	}

	<-s.loopDone

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	var stopErr error
	select {
	case <-drained:
	case <-ctx.Done():
		stopErr = ctx.Err()
		s.closeConns()
	}

	s.state.Store(int32(StateStopped))
	s.logger.Info("server stopped", logger.F("requests", s.tracker.TotalRequests()))

	return stopErr
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer close(s.loopDone)

	var backoff time.Duration

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.State() != StateListening {
				return
			}

			if backoff == 0 {
				backoff = 5 * time.Millisecond
			} else {
				backoff = min(2*backoff, time.Second)
			}

			s.logger.Warn("accept failed", logger.Err(err), logger.F("retry_in", backoff.String()))

			select {
			case <-time.After(backoff):
				continue
			case <-s.quit:
				return
			}
		}
		backoff = 0

		s.tracker.RecordRequest()

		if !s.acquire() {
			s.reject(conn)
			return
		}

		s.track(conn)
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// acquire takes a connection slot. It returns false if the server is
// stopped while waiting.
func (s *Server) acquire() bool {
	if s.sem == nil {
		return true
	}

	select {
	case s.sem <- struct{}{}:
		return true
	case <-s.quit:
		return false
	}
}

// reject answers 503 on a connection that was accepted but will not be
// served because the server is stopping.
func (s *Server) reject(conn net.Conn) {
	defer conn.Close()

	// Consume the request head so the close does not reset the connection
	// before the client reads the answer.
	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	request.ReadRequest(conn, s.cfg.MaxHeaderBytes)

	conn.SetWriteDeadline(time.Now().Add(time.Second))

	w := response.NewWriter(conn)
	if err := w.ErrorResponse(response.StatusServiceUnavailable, "server is stopping"); err != nil {
		s.logger.Debug("writing 503", logger.Err(err))
	}
}

func (s *Server) release() {
	if s.sem != nil {
		<-s.sem
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		conn.Close()
	}
}
