// Package server serves a markdown file as a live-reloading HTML page.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mdsplit/internal/ports"
	"mdsplit/internal/render"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// DefaultWriteTimeout bounds a reload write to one client.
const DefaultWriteTimeout = time.Second

const shutdownTimeout = 5 * time.Second

type reloadMessage struct {
	Action string `json:"action"`
	File   string `json:"file"`
}

// Server renders one file at / and pushes reload messages over /ws.
type Server struct {
	path     string
	html     *render.HTML
	log      zerolog.Logger
	upgrader websocket.Upgrader

	// Debounce is the quiet period after a change before clients reload.
	Debounce time.Duration
	// WriteTimeout is how long a client may take to accept a reload.
	WriteTimeout time.Duration

	writeMu sync.Mutex
	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	timer   *time.Timer
}

func New(path string, html *render.HTML, logger zerolog.Logger) *Server {
	return &Server{
		path:         path,
		html:         html,
		log:          logger.With().Str("cmp", "server").Logger(),
		Debounce:     DefaultDebounce,
		WriteTimeout: DefaultWriteTimeout,
		conns:        map[*websocket.Conn]struct{}{},
	}
}

// Handler routes /, /raw and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/raw", s.serveRaw)
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	src, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Error().Err(err).Str("file", s.path).Msg("read source")
		http.Error(w, "cannot read file", http.StatusInternalServerError)
		return
	}
	page, err := s.html.Document(filepath.Base(s.path), src, true)
	if err != nil {
		s.log.Error().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) serveRaw(w http.ResponseWriter, r *http.Request) {
	src, err := os.ReadFile(s.path)
	if err != nil {
		http.Error(w, "cannot read file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(src)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade")
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	n := len(s.conns)
	s.mu.Unlock()
	s.log.Debug().Int("clients", n).Msg("client connected")

	// Clients never send; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Reload tells every connected client to reload the page.
func (s *Server) Reload() {
	data, err := json.Marshal(reloadMessage{Action: "reload", File: filepath.Base(s.path)})
	if err != nil {
		s.log.Error().Err(err).Msg("encode reload")
		return
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	// Writes happen outside mu so a stalled tab cannot block registration;
	// writeMu keeps one writer per connection.
	s.writeMu.Lock()
	var dead []*websocket.Conn
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warn().Err(err).Msg("send reload, dropping client")
			dead = append(dead, conn)
		}
	}
	s.writeMu.Unlock()

	if len(dead) > 0 {
		s.mu.Lock()
		for _, conn := range dead {
			delete(s.conns, conn)
		}
		s.mu.Unlock()
		for _, conn := range dead {
			_ = conn.Close()
		}
	}
	s.log.Debug().Int("clients", len(conns)-len(dead)).Msg("reload sent")
}

// Watch starts watching the file's directory and returns once the watcher is
// registered. Watching the directory survives editors that save by rename.
func (s *Server) Watch(ctx context.Context) error {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				s.stopTimer()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					s.schedule()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return nil
}

func (s *Server) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.Debounce, s.Reload)
}

func (s *Server) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// ListenAndServe serves until ctx is cancelled. A zero port in addr is
// replaced with a free one; onReady receives the resulting URL.
func (s *Server) ListenAndServe(ctx context.Context, addr string, onReady func(url string)) error {
	resolved, err := ports.Resolve(addr)
	if err != nil {
		return err
	}
	l, err := net.Listen("tcp", resolved)
	if err != nil {
		return fmt.Errorf("listen %s: %w", resolved, err)
	}

	if err := s.Watch(ctx); err != nil {
		_ = l.Close()
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	url := "http://" + resolved
	s.log.Info().Str("url", url).Str("file", s.path).Msg("serving")
	if onReady != nil {
		onReady(url)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	}
}
