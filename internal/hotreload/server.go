// Package hotreload serves layout files to running apps and pushes file
// changes to them over socket.io, so a device can reload a layout the moment
// it is saved.
package hotreload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
)

// EventConnected is sent to each client right after it connects.
const EventConnected = "connected"

// Server is the hot reload server of one project.
type Server struct {
	Project string
	Root    string
	Version string
	Store   *layoutfile.Store
	// OnChange runs after a change was broadcast, e.g. to regenerate code.
	OnChange func(ctx context.Context, c Change)

	io      *socket.Server
	clients atomic.Int64
	mux     *http.ServeMux
}

// NewServer returns a server for the project rooted at root.
func NewServer(project, root, version string, store *layoutfile.Store) *Server {
	s := &Server{Project: project, Root: root, Version: version, Store: store}
	s.io = socket.NewServer(nil, nil)
	s.io.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		s.clients.Add(1)
		client.On("disconnect", func(...any) {
			s.clients.Add(-1)
		})
		client.Emit(EventConnected, map[string]any{
			"type":    EventConnected,
			"message": "Connected to hot reload server",
		})
	})

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /{$}", s.handleStatus)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /layouts", s.handleLayouts)
	s.mux.HandleFunc("GET /layout/{name...}", s.handleLayout)
	s.mux.HandleFunc("GET /style/{name...}", s.handleStyle)
	s.mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	return s
}

// Handler returns the HTTP handler serving both the routes and socket.io.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Clients returns the number of connected socket.io clients.
func (s *Server) Clients() int64 {
	return s.clients.Load()
}

// Broadcast sends c to every connected client. The event name is the change
// type.
func (s *Server) Broadcast(c Change) {
	s.io.Emit(string(c.Type), c.Map())
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}

// Serve listens on addr and, when w is not nil, broadcasts its changes until
// ctx is done.
func (s *Server) Serve(ctx context.Context, addr string, w *Watcher) error {
	logger := ctxlog.FromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	httpServer := &http.Server{Handler: s.Handler()}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("🔥 Hot reload server starting", "address", fmt.Sprintf("http://%s", ln.Addr()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if w != nil {
		go func() {
			if err := w.Run(ctx, func(c Change) { s.handleChange(ctx, c) }); err != nil {
				logger.Error("File watcher stopped", "error", err)
			}
		}()
		logger.Info("👀 Watching for file changes...")
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("hot reload server failed: %w", err)
		}
	}

	logger.Info("🔥 Shutting down hot reload server...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("hot reload server shutdown failed: %w", err)
	}
	logger.Debug("Hot reload server shut down gracefully.")
	return nil
}

func (s *Server) handleChange(ctx context.Context, c Change) {
	ctxlog.FromContext(ctx).Info("📝 File "+strings.TrimPrefix(string(c.Type), "file_"), "path", c.Path)
	s.Broadcast(c)
	if s.OnChange != nil {
		s.OnChange(ctx, c)
	}
}

type status struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Project          string `json:"project"`
	ProjectRoot      string `json:"projectRoot"`
	ConnectedClients int64  `json:"connectedClients"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, status{
		Status:           "running",
		Version:          s.Version,
		Project:          s.Project,
		ProjectRoot:      s.Root,
		ConnectedClients: s.Clients(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleLayouts(w http.ResponseWriter, _ *http.Request) {
	names, err := s.Store.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, "Layout", s.Store.LayoutsDir, r.PathValue("name"))
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, "Style", s.Store.StylesDir, r.PathValue("name"))
}

// serveFile writes the JSON file name below dir. Names may omit the
// extension; names escaping dir are not found.
func (s *Server) serveFile(w http.ResponseWriter, what, dir, name string) {
	name = strings.TrimSuffix(name, layoutfile.Ext)
	notFound := map[string]string{"error": fmt.Sprintf("%s not found: %s", what, name)}
	if dir == "" || name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)+layoutfile.Ext))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	if !json.Valid(data) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("%s is not valid JSON: %s", what, name)})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
