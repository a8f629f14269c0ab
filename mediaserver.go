// mediaserver.go
package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// registeredMedia is one imported file exposed over the loopback server.
type registeredMedia struct {
	Path        string
	ContentType string
}

// mediaServer serves imported media files to the webview over a local HTTP
// server. Files are looked up by opaque asset id rather than by path, so the
// server can only ever expose files the user explicitly imported.
type mediaServer struct {
	mu     sync.RWMutex
	files  map[string]registeredMedia
	port   int
	addr   string
	ready  bool
	server *http.Server
}

func newMediaServer() *mediaServer {
	return &mediaServer{files: make(map[string]registeredMedia)}
}

func findFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func commonMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		// The webview origin differs per platform (wails://wails,
		// http://wails.localhost, ...) and the server only listens on
		// loopback, so any origin is acceptable here.
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Range")

		if request.Method == http.MethodOptions {
			writer.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(writer, request)
	}
}

// Start binds a free loopback port and begins serving in a goroutine.
// Returns an error if listener setup fails.
func (s *mediaServer) Start() error {
	port, err := findFreePort()
	if err != nil {
		return fmt.Errorf("could not find free port: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", commonMiddleware(s.handleIndex))
	mux.Handle("/media/", commonMiddleware(s.handleMedia))
	mux.Handle("/healthz", commonMiddleware(s.handleHealth))

	listenAddr := fmt.Sprintf("localhost:%d", port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("could not start media server listener: %w", err)
	}

	s.mu.Lock()
	s.port = port
	s.addr = listenAddr
	s.ready = true
	s.server = &http.Server{Handler: mux}
	s.mu.Unlock()

	log.Printf("Media Server: Starting on http://%s", listenAddr)

	go func() {
		if errServe := s.server.Serve(listener); errServe != nil && errServe != http.ErrServerClosed {
			log.Printf("ERROR: Media server failed: %v", errServe)
			s.mu.Lock()
			s.ready = false
			s.mu.Unlock()
		}
	}()

	return nil
}

// Shutdown stops the server if it is running.
func (s *mediaServer) Shutdown() {
	s.mu.Lock()
	server := s.server
	s.ready = false
	s.mu.Unlock()

	if server != nil {
		if err := server.Close(); err != nil {
			log.Printf("Media Server Warning: shutdown error: %v", err)
		}
	}
}

// Ready reports whether the server is accepting requests.
func (s *mediaServer) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Port returns the bound port, or 0 before Start succeeds.
func (s *mediaServer) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port
}

// BaseURL returns the address the webview should load media from.
func (s *mediaServer) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return "http://" + s.addr
}

// Register exposes a file under the given asset id and returns the URL to
// load it from.
func (s *mediaServer) Register(assetID, path string) string {
	s.mu.Lock()
	s.files[assetID] = registeredMedia{
		Path:        path,
		ContentType: contentTypeForPath(path),
	}
	url := "http://" + s.addr + "/media/" + assetID
	s.mu.Unlock()
	return url
}

// Forget drops the registration for an asset id.
func (s *mediaServer) Forget(assetID string) {
	s.mu.Lock()
	delete(s.files, assetID)
	s.mu.Unlock()
}

func (s *mediaServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	welcomeMsg := "CutRoom internal media server."
	s.mu.RLock()
	if s.ready {
		welcomeMsg += fmt.Sprintf(" Serving %d registered files from http://%s", len(s.files), s.addr)
	} else {
		welcomeMsg += " (Server initializing or encountered an issue)."
	}
	s.mu.RUnlock()
	fmt.Fprint(w, welcomeMsg)
}

func (s *mediaServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *mediaServer) handleMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		log.Printf("Media Server Warning: %s request blocked for: %s", r.Method, r.URL.Path)
		return
	}

	assetID := strings.TrimPrefix(r.URL.Path, "/media/")
	if assetID == "" || strings.ContainsAny(assetID, "/\\") {
		http.Error(w, "Invalid media id", http.StatusBadRequest)
		log.Printf("Media Server Warning: Malformed media id in request: %s", r.URL.Path)
		return
	}

	s.mu.RLock()
	entry, ok := s.files[assetID]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		log.Printf("Media Server Info: No file registered for id: %s", assetID)
		return
	}

	fileInfo, err := os.Stat(entry.Path)
	if os.IsNotExist(err) {
		http.NotFound(w, r)
		log.Printf("Media Server Info: Registered file missing on disk: %s", entry.Path)
		return
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Media Server Error: accessing file stats for %s: %v", entry.Path, err)
		return
	}
	if fileInfo.IsDir() {
		http.Error(w, "Cannot serve directories", http.StatusForbidden)
		log.Printf("Media Server Warning: Attempt to serve directory: %s", entry.Path)
		return
	}

	// ServeFile handles Range requests, so the player can seek.
	w.Header().Set("Content-Type", entry.ContentType)
	w.Header().Set("Accept-Ranges", "bytes")
	http.ServeFile(w, r, entry.Path)
}

func contentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".aac":
		return "audio/aac"
	case ".m4a":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
