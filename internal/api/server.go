package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server for the web frontend.
type Server struct {
	httpServer *http.Server
	session    *service.Session
	watcher    *FileWatcher
	wsHub      *WebSocketHub
	gauge      favoritesGauge
	log        *logrus.Entry
}

// NewServer wires the session to the HTTP routes, the websocket hub and
// the favorites file watcher. If dataDir is empty, file watching is disabled.
func NewServer(session *service.Session, port int, dataDir string) *Server {
	log := logging.Component("server")

	mux := http.NewServeMux()
	NewHandler(session).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	wsHub := NewWebSocketHub(session.ID(), session.State)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)

	var watcher *FileWatcher
	if dataDir != "" {
		var err error
		watcher, err = NewFileWatcher(dataDir)
		if err != nil {
			log.WithError(err).Warn("Failed to create file watcher")
		} else {
			watcher.Subscribe(FavoritesReloader{Session: session})
		}
	}

	// Subscribed here, not in Start, so a Shutdown racing Start always
	// finds them to unsubscribe
	var gauge favoritesGauge
	session.Subscribe(wsHub)
	session.Subscribe(gauge)
	gauge.OnStateChange(session.State())

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", port),
			Handler:      Logging(Cors(mux)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		session: session,
		watcher: watcher,
		wsHub:   wsHub,
		gauge:   gauge,
		log:     log,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.log.WithError(err).Warn("Failed to start file watcher")
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.log.WithError(err).Warn("Failed to stop file watcher")
		}
	}

	s.session.Unsubscribe(s.wsHub)
	s.session.Unsubscribe(s.gauge)
	s.session.Close()
	s.wsHub.Close()

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// URL returns the address as a browser URL.
func (s *Server) URL() string {
	return "http://" + s.httpServer.Addr
}
