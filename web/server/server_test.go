package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sppm/pkg/scene"
	"github.com/df07/go-sppm/pkg/sppm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := sppm.DefaultConfig()
	engine.Workers = 2
	return NewServer(":0", t.TempDir(), engine)
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// readEvents splits an SSE body into (event, data) pairs
func readEvents(t *testing.T, body string) [][2]string {
	t.Helper()
	var events [][2]string
	var event string
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1<<20), 1<<24)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			events = append(events, [2]string{event, strings.TrimPrefix(line, "data: ")})
		}
	}
	return events
}

func TestHandleHealth(t *testing.T) {
	w := get(newTestServer(t), "/api/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("Expected ok status, got %d %s", w.Code, w.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	s := newTestServer(t)
	content := `{"name": "Lamp", "lights": [{"type": "point", "power": {"x": 1, "y": 1, "z": 1}}]}`
	if err := os.WriteFile(filepath.Join(s.sceneDir, "lamp.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	w := get(s, "/api/scenes")
	var scenes []scene.SceneInfo
	if err := json.Unmarshal(w.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(scenes) != len(scene.List())+1 {
		t.Fatalf("Expected built-in scenes plus one file, got %d", len(scenes))
	}
	if last := scenes[len(scenes)-1]; last.Type != "json" || last.DisplayName != "Lamp" {
		t.Errorf("Expected the scene file last, got %+v", last)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer(t)

	w := get(s, "/api/scene-config?scene=plane")
	var response struct {
		Defaults map[string]float64 `json:"defaults"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if response.Defaults["width"] != 256 || response.Defaults["iterations"] != 10 {
		t.Errorf("Expected the plane scene defaults, got %v", response.Defaults)
	}

	if w := get(s, "/api/scene-config?scene=nowhere"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown scene, got %d", w.Code)
	}
}

func TestHandleRender(t *testing.T) {
	s := newTestServer(t)
	w := get(s, "/api/render?scene=plane&width=8&height=6&iterations=3&photons=500&snapshotEvery=2")

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected an event stream, got %q", ct)
	}

	var updates []IterationUpdate
	var complete bool
	for _, event := range readEvents(t, w.Body.String()) {
		switch event[0] {
		case "progress":
			var update IterationUpdate
			if err := json.Unmarshal([]byte(event[1]), &update); err != nil {
				t.Fatalf("Invalid progress event: %v", err)
			}
			updates = append(updates, update)
		case "complete":
			complete = true
		case "error":
			t.Fatalf("Unexpected error event: %s", event[1])
		}
	}

	// Snapshots after iterations 2 and 3
	if len(updates) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(updates))
	}
	last := updates[len(updates)-1]
	if last.Iteration != 3 || !last.IsComplete || last.TotalIterations != 3 {
		t.Errorf("Expected the final snapshot of 3 iterations, got %+v", last)
	}
	if last.Photons != 1500 || last.HitPoints != 48 || last.ImageData == "" {
		t.Errorf("Expected 1500 photons on 48 hit points with an image, got %+v", last)
	}
	if !complete {
		t.Error("Expected a complete event")
	}
}

func TestHandleRender_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"bad width", "/api/render?width=0", "width must be between"},
		{"bad estimator", "/api/render?estimator=guess", "unknown estimator"},
		{"unlisted path", "/api/render?scene=../secret.json", "unknown scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := readEvents(t, get(s, tt.target).Body.String())
			if len(events) == 0 || events[0][0] != "error" {
				t.Fatalf("Expected an error event, got %v", events)
			}
			if !strings.Contains(events[0][1], tt.message) {
				t.Errorf("Expected error containing %q, got %q", tt.message, events[0][1])
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	w := get(s, "/api/inspect?scene=plane&x=128&y=127")
	var response InspectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if !response.Hit || response.GeometryType != "plane" || response.MaterialType != "diffuse" {
		t.Errorf("Expected to hit the diffuse plane, got %+v", response)
	}
	if response.Distance < 9.999 || response.Distance > 10.001 || !response.FrontFace {
		t.Errorf("Expected a front-facing hit 10 units below the camera, got %+v", response)
	}

	for _, target := range []string{
		"/api/inspect?scene=plane&x=256&y=0",
		"/api/inspect?scene=plane&x=a&y=0",
		"/api/inspect?scene=nowhere&x=0&y=0",
	} {
		if w := get(s, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}
