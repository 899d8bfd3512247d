package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

func TestServer_MetricsAndRoutes(t *testing.T) {
	paths := testutil.TempPaths(t)
	session := service.NewSession(store.NewFavoritesStore(paths), nil, service.SessionOptions{
		Generate: testutil.Sequence(testPaletteA),
	})
	session.Load()

	srv := NewServer(session, 0, paths.DataDir())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/api/v1/favorites", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the local origin", got)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, name := range []string{"swatch_favorites_saved_total", "swatch_websocket_clients"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Metrics missing %s", name)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestServer_ReloadsFavoritesFromDisk(t *testing.T) {
	paths := testutil.TempPaths(t)
	session := service.NewSession(store.NewFavoritesStore(paths), nil, service.SessionOptions{
		Generate: testutil.Sequence(testPaletteA),
	})
	session.Load()

	srv := NewServer(session, 0, paths.DataDir())
	if err := srv.watcher.Start(); err != nil {
		t.Fatalf("Watcher start failed: %v", err)
	}
	defer srv.watcher.Stop()

	// Another process saves a favorite
	testutil.WriteFavorites(t, paths, `[["#111111","#222222","#333333","#444444","#555555"]]`)

	deadline := time.Now().Add(2 * time.Second)
	for len(session.State().Favorites) == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	favorites := session.State().Favorites
	if len(favorites) != 1 || favorites[0] != testPaletteB {
		t.Errorf("Favorites = %v, want [paletteB]", favorites)
	}
}

func TestServer_URL(t *testing.T) {
	session := service.NewSession(store.NewFavoritesStore(testutil.TempPaths(t)), nil, service.SessionOptions{})
	srv := NewServer(session, 4321, "")

	if srv.URL() != "http://127.0.0.1:4321" {
		t.Errorf("URL = %q", srv.URL())
	}
	if srv.watcher != nil {
		t.Error("Empty data dir should disable watching")
	}
}

func TestCors_OnlyLoopbackOrigins(t *testing.T) {
	handler := Cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"http://127.0.0.1:8080", true},
		{"http://[::1]:3000", true},
		{"https://example.com", false},
		{"http://192.168.1.20:3000", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/state", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			got := w.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && got != tt.origin {
				t.Errorf("Expected origin echoed, got %q", got)
			}
			if !tt.allowed && got != "" {
				t.Errorf("Expected no CORS header, got %q", got)
			}
			if w.Code != http.StatusTeapot {
				t.Errorf("Request should reach the handler, got %d", w.Code)
			}
		})
	}

	req := httptest.NewRequest("OPTIONS", "/api/v1/copy", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight: expected 204, got %d", w.Code)
	}
}

func TestLogging_RecordsStatusAndBytes(t *testing.T) {
	var sw *statusWriter
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw = w.(*statusWriter)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "hello")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/palette", nil))

	if sw.status != http.StatusCreated || sw.bytes != 5 {
		t.Errorf("Recorded status %d and %d bytes, want 201 and 5", sw.status, sw.bytes)
	}
	if !isQuietPath("/metrics") || !isQuietPath("/api/v1/ws") || isQuietPath("/api/v1/state") {
		t.Error("Only API calls other than the websocket should log at info")
	}
}

func TestServer_ShutdownBeforeStartUnsubscribes(t *testing.T) {
	session := service.NewSession(store.NewFavoritesStore(testutil.TempPaths(t)), nil, service.SessionOptions{})
	srv := NewServer(session, 0, "")

	if session.SubscriberCount() != 2 {
		t.Fatalf("Expected hub and gauge subscribed on construction, got %d", session.SubscriberCount())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if session.SubscriberCount() != 0 {
		t.Errorf("Expected no subscribers after shutdown, got %d", session.SubscriberCount())
	}
	if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Start after Shutdown = %v, want http.ErrServerClosed", err)
	}
	if session.SubscriberCount() != 0 {
		t.Errorf("Start after Shutdown resubscribed %d subscribers", session.SubscriberCount())
	}
}
