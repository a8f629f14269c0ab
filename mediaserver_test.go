package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func serveMedia(t *testing.T, s *mediaServer, req *http.Request) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	commonMiddleware(s.handleMedia)(rec, req)
	return rec.Result()
}

func TestMediaServerServesRegisteredFile(t *testing.T) {
	s := newMediaServer()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}

	url := s.Register("asset-1", path)
	if !strings.HasSuffix(url, "/media/asset-1") {
		t.Errorf("Register returned %q, want a /media/asset-1 URL", url)
	}

	res := serveMedia(t, s, httptest.NewRequest(http.MethodGet, "/media/asset-1", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q, want %q", ct, "audio/wav")
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != "RIFFdata" {
		t.Errorf("body = %q, want %q", body, "RIFFdata")
	}
}

func TestMediaServerSupportsRangeRequests(t *testing.T) {
	s := newMediaServer()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}
	s.Register("asset-1", path)

	req := httptest.NewRequest(http.MethodGet, "/media/asset-1", nil)
	req.Header.Set("Range", "bytes=2-5")
	res := serveMedia(t, s, req)

	if res.StatusCode != http.StatusPartialContent {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusPartialContent)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != "2345" {
		t.Errorf("partial body = %q, want %q", body, "2345")
	}
}

func TestMediaServerRejectsBadRequests(t *testing.T) {
	s := newMediaServer()

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "unknown id", method: http.MethodGet, target: "/media/nope", want: http.StatusNotFound},
		{name: "empty id", method: http.MethodGet, target: "/media/", want: http.StatusBadRequest},
		{name: "nested path", method: http.MethodGet, target: "/media/a/b", want: http.StatusBadRequest},
		{name: "post blocked", method: http.MethodPost, target: "/media/nope", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := serveMedia(t, s, httptest.NewRequest(tt.method, tt.target, nil))
			if res.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.want)
			}
		})
	}
}

func TestMediaServerForgetStopsServing(t *testing.T) {
	s := newMediaServer()
	path := filepath.Join(t.TempDir(), "still.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}
	s.Register("asset-1", path)
	s.Forget("asset-1")

	res := serveMedia(t, s, httptest.NewRequest(http.MethodGet, "/media/asset-1", nil))
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status after Forget = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestMediaServerCORSPreflight(t *testing.T) {
	s := newMediaServer()
	res := serveMedia(t, s, httptest.NewRequest(http.MethodOptions, "/media/anything", nil))
	if res.StatusCode != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if origin := res.Header.Get("Access-Control-Allow-Origin"); origin == "" {
		t.Error("preflight response is missing CORS headers")
	}
}

func TestContentTypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "a.wav", want: "audio/wav"},
		{path: "a.mp3", want: "audio/mpeg"},
		{path: "a.MP4", want: "video/mp4"},
		{path: "a.mov", want: "video/quicktime"},
		{path: "a.png", want: "image/png"},
		{path: "a.jpeg", want: "image/jpeg"},
		{path: "a.xyz", want: "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := contentTypeForPath(tt.path); got != tt.want {
			t.Errorf("contentTypeForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
