package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(0, t.TempDir())
	s.logOut = &bytes.Buffer{}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on response")
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	count := 0
	for _, group := range response.Groups {
		count += len(group.Scenes)
	}
	if count != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes across groups, got %d", len(scene.ListScenes()), count)
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expected    int
		expectError bool
	}{
		{"missing uses default", "", 10, false},
		{"in range", "25", 25, false},
		{"below min clamps", "-5", 1, false},
		{"above max clamps", "500", 100, false},
		{"malformed", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.value != "" {
				values.Set("n", tt.value)
			}
			got, err := parseIntParam(values, "n", 10, 1, 100)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseRenderRequest_Clamps(t *testing.T) {
	values, _ := url.ParseQuery("scene=globe&width=5000&height=0&samples=100000&depth=999&seed=7")
	req, err := parseRenderRequest(values)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Width != maxWidth || req.Height != 1 || req.Samples != maxSamples || req.Depth != maxDepth {
		t.Errorf("Expected clamped request, got %+v", req)
	}
	if req.Scene != "globe" || req.Seed != 7 {
		t.Errorf("Unexpected scene or seed: %+v", req)
	}
}

func TestHandleRender(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/render?scene=three-spheres&width=8&height=4&samples=2&depth=3&seed=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %v", img.Bounds())
	}
	if !strings.Contains(s.logOut.(*bytes.Buffer).String(), "[render-1] Rendering 8x4") {
		t.Errorf("Expected tagged render log, got %q", s.logOut.(*bytes.Buffer).String())
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown scene", "/api/render?scene=nonexistent&width=4&height=4&samples=1", http.StatusNotFound},
		{"malformed width", "/api/render?width=wide", http.StatusBadRequest},
		{"malformed seed", "/api/render?seed=x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(t), tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("Expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	// The center ray reaches either the tall box or the back wall
	rec := get(t, s, "/api/inspect?scene=cornell-box&width=20&height=20&x=10&y=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit {
		t.Fatal("Expected center pixel to hit the scene")
	}
	if response.ObjectIndex < 0 || response.GeometryType == "" || response.MaterialType == "" {
		t.Errorf("Expected object details, got %+v", response)
	}
	if response.Distance <= 0 {
		t.Errorf("Expected positive distance, got %f", response.Distance)
	}
}

func TestHandleInspect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing x", "/api/inspect?scene=cornell-box&y=1", http.StatusBadRequest},
		{"out of bounds", "/api/inspect?scene=cornell-box&width=10&height=10&x=10&y=0", http.StatusBadRequest},
		{"unknown scene", "/api/inspect?scene=nonexistent&x=0&y=0", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(t), tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestWebLogger_TagsMessages(t *testing.T) {
	var out bytes.Buffer
	var mu sync.Mutex
	logger := NewWebLogger("render-3", &out, &mu)
	logger.Printf("done in %d ms\n", 12)

	if out.String() != "[render-3] done in 12 ms\n" {
		t.Errorf("Unexpected log output %q", out.String())
	}
}
