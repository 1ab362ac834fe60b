// Package server streams progressive photon-mapping renders to browsers over
// server-sent events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sppm/pkg/log"
	"github.com/df07/go-sppm/pkg/scene"
	"github.com/df07/go-sppm/pkg/sppm"
)

var logger = log.New("server")

// Request limits
const (
	maxImageSide     = 2000
	maxIterations    = 100000
	maxPhotons       = 10000000
	maxSnapshotEvery = 1000
)

// Server handles web requests for the progressive renderer
type Server struct {
	addr     string
	sceneDir string
	engine   sppm.Config
	mux      *http.ServeMux
}

// NewServer creates a server listening on addr. Scene files are listed from
// sceneDir and every render uses the engine parameters.
func NewServer(addr, sceneDir string, engine sppm.Config) *Server {
	s := &Server{
		addr:     addr,
		sceneDir: sceneDir,
		engine:   engine,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Noticef("Starting web server on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down web server: %w", err)
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default render settings of a scene with the
// request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("scene")
	if id == "" {
		id = defaultScene
	}

	sceneObj, err := s.loadScene(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": id,
		"defaults": map[string]interface{}{
			"width":               sceneObj.Width,
			"height":              sceneObj.Height,
			"iterations":          sceneObj.Settings.Iterations,
			"photonsPerIteration": sceneObj.Settings.PhotonsPerIteration,
			"initialRadius":       sceneObj.Settings.InitialRadius,
			"surfaces":            sceneObj.SurfaceCount(),
			"lights":              len(sceneObj.World.Lights()),
		},
		"limits": map[string]interface{}{
			"width":               map[string]int{"min": 1, "max": maxImageSide},
			"height":              map[string]int{"min": 1, "max": maxImageSide},
			"iterations":          map[string]int{"min": 1, "max": maxIterations},
			"photonsPerIteration": map[string]int{"min": 1, "max": maxPhotons},
			"snapshotEvery":       map[string]int{"min": 1, "max": maxSnapshotEvery},
		},
	})
}

const defaultScene = "cornell"

// loadScene resolves a scene ID from the scene listing. Arbitrary paths are
// rejected so clients can only render listed files.
func (s *Server) loadScene(id string) (*scene.Scene, error) {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return scene.Load(info.ID)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
