package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestIndexServesPage(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fresnel preview") {
		t.Error("Expected index page to contain the title")
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestScenesListsBuiltins(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/scenes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var entries []sceneEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to parse scenes response: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Expected at least one built-in scene")
	}
	names := make(map[string]bool)
	for _, e := range entries {
		if e.Source != "builtin" {
			t.Errorf("Expected source builtin, got %q for %q", e.Source, e.Name)
		}
		names[e.Name] = true
	}
	for _, want := range []string{"cornell", "simple", "empty"} {
		if !names[want] {
			t.Errorf("Expected scene list to include %q", want)
		}
	}
}

func TestScenesIncludesConfiguredFile(t *testing.T) {
	s := NewServer(0, "my-scene.json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/scenes", nil))

	var entries []sceneEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to parse scenes response: %v", err)
	}
	last := entries[len(entries)-1]
	if last.Name != "my-scene.json" || last.Source != "file" {
		t.Errorf("Expected the configured file as the last entry, got %+v", last)
	}
}

func TestParseRenderRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"builtin scene", "scene=empty", false},
		{"scene file", "path=scene.json", false},
		{"overrides", "scene=empty&width=64&height=36&samples=2&depth=4&seed=7", false},
		{"no scene", "", true},
		{"both scene and path", "scene=empty&path=x.json", true},
		{"bad width", "scene=empty&width=potato", true},
		{"zero samples", "scene=empty&samples=0", true},
		{"bad seed", "scene=empty&seed=x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/render?"+tt.query, nil)
			req, err := parseRenderRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for query %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if req.builtin == "" && req.path == "" {
				t.Error("Expected a scene source to be set")
			}
		})
	}
}

func TestRenderRequiresScene(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/render", nil))

	events := parseSSE(t, rec.Body.Bytes())
	if len(events) != 1 || events[0].name != "error" {
		t.Fatalf("Expected a single error event, got %+v", events)
	}
}

func TestRenderUnknownBuiltin(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/render?scene=nonesuch", nil))

	events := parseSSE(t, rec.Body.Bytes())
	if len(events) != 1 || events[0].name != "error" {
		t.Fatalf("Expected a single error event, got %+v", events)
	}
	var e errorEvent
	if err := json.Unmarshal([]byte(events[0].data), &e); err != nil {
		t.Fatalf("Failed to parse error event: %v", err)
	}
	if !strings.Contains(e.Message, "nonesuch") {
		t.Errorf("Expected the error to name the scene, got %q", e.Message)
	}
}

func TestRenderStreamsCompleteFrame(t *testing.T) {
	s := NewServer(0, "")
	rec := httptest.NewRecorder()
	url := "/api/render?scene=empty&width=32&height=18&samples=1&depth=2"
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", url, nil))

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", ct)
	}

	events := parseSSE(t, rec.Body.Bytes())
	if len(events) < 2 {
		t.Fatalf("Expected at least start and complete events, got %d", len(events))
	}
	if events[0].name != "start" {
		t.Fatalf("Expected first event start, got %q", events[0].name)
	}
	var st startEvent
	if err := json.Unmarshal([]byte(events[0].data), &st); err != nil {
		t.Fatalf("Failed to parse start event: %v", err)
	}
	if st.Width != 32 || st.Height != 18 {
		t.Errorf("Expected 32x18 from the overrides, got %dx%d", st.Width, st.Height)
	}

	last := events[len(events)-1]
	if last.name != "complete" {
		t.Fatalf("Expected last event complete, got %q", last.name)
	}
	var done completeEvent
	if err := json.Unmarshal([]byte(last.data), &done); err != nil {
		t.Fatalf("Failed to parse complete event: %v", err)
	}
	if done.Stats.PrimaryRays != 32*18 {
		t.Errorf("Expected %d primary rays at 1 sample/pixel, got %d", 32*18, done.Stats.PrimaryRays)
	}

	raw, err := base64.StdEncoding.DecodeString(done.ImageData)
	if err != nil {
		t.Fatalf("Failed to decode image data: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 18 {
		t.Errorf("Expected a 32x18 PNG, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderRejectsConcurrent(t *testing.T) {
	s := NewServer(0, "")
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/render?scene=empty", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 while a render is running, got %d", rec.Code)
	}
}

// sseEvent is one parsed event from a recorded SSE stream.
type sseEvent struct {
	name string
	data string
}

func parseSSE(t *testing.T, body []byte) []sseEvent {
	t.Helper()
	var events []sseEvent
	var cur sseEvent
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			cur.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if cur.name != "" {
				events = append(events, cur)
				cur = sseEvent{}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Failed to scan SSE stream: %v", err)
	}
	return events
}
