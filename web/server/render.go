package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-sppm/pkg/renderer"
	"github.com/df07/go-sppm/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string  `json:"scene"`         // Scene ID from /api/scenes
	Width         int     `json:"width"`         // Image width, 0 for the scene's own
	Height        int     `json:"height"`        // Image height, 0 for the scene's own
	Iterations    int     `json:"iterations"`    // Photon passes
	Photons       int     `json:"photons"`       // Photons per pass
	Radius        float64 `json:"radius"`        // Initial gather radius
	SnapshotEvery int     `json:"snapshotEvery"` // Iterations between streamed images
	Estimator     string  `json:"estimator"`     // "ppm" or "phong"
}

// IterationUpdate is a progressive snapshot sent via SSE
type IterationUpdate struct {
	Iteration       int     `json:"iteration"`
	TotalIterations int     `json:"totalIterations"`
	ImageData       string  `json:"imageData"` // Base64 encoded PNG
	Photons         int64   `json:"photons"`   // Photons emitted so far
	Deposits        int64   `json:"deposits"`  // Deposits by the latest iteration
	MaxRadius       float64 `json:"maxRadius"`
	Luminance       float64 `json:"luminance"`
	HitPoints       int     `json:"hitPoints"`
	IsComplete      bool    `json:"isComplete"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or a plain message
}

// handleRender streams progressive snapshots via SSE until the render
// finishes or the client disconnects
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// A single writer goroutine owns w until the event channel is closed
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	stopConsole := s.streamConsole(ctx, sseEventChan)
	defer stopConsole()

	pr := renderer.NewProgressiveRenderer(sceneObj, req.Width, req.Height, s.renderConfig(req, sceneObj), s.engine)
	startTime := time.Now()
	resultChan, errChan := pr.RenderProgressive(ctx)

	for result := range resultChan {
		update, err := newIterationUpdate(result, pr, startTime)
		if err != nil {
			logger.Errorf("Error encoding snapshot: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, "progress", update)
	}

	if err := <-errChan; err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// renderConfig applies the request overrides to the scene's settings
func (s *Server) renderConfig(req *RenderRequest, sceneObj *scene.Scene) renderer.ProgressiveConfig {
	config := renderer.SceneConfig(sceneObj)
	if req.Iterations > 0 {
		config.Iterations = req.Iterations
	}
	if req.Photons > 0 {
		config.PhotonsPerIteration = req.Photons
	}
	if req.Radius > 0 {
		config.InitialRadius = req.Radius
	}
	config.SnapshotEvery = req.SnapshotEvery
	config.Estimator = renderer.Estimator(req.Estimator)
	return config
}

func newIterationUpdate(result renderer.IterationResult, pr *renderer.ProgressiveRenderer, startTime time.Time) (IterationUpdate, error) {
	imageData, err := imageToBase64PNG(result.Image.ToRGBA())
	if err != nil {
		return IterationUpdate{}, err
	}
	return IterationUpdate{
		Iteration:       result.Iteration,
		TotalIterations: pr.Config().Iterations,
		ImageData:       imageData,
		Photons:         result.Stats.TotalPhotons,
		Deposits:        result.Stats.Deposits,
		MaxRadius:       result.Stats.MaxRadius,
		Luminance:       result.Luminance,
		HitPoints:       len(pr.Camera().HitPoints()),
		IsComplete:      result.IsLast,
		ElapsedMs:       time.Since(startTime).Milliseconds(),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed or the client leaves
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write; drain so senders never block
				for range sseEventChan {
				}
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			for range sseEventChan {
			}
			return
		}
	}
}

// sendEvent marshals data and queues it as an event of the given type
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		logger.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Iterations, err = parseIntParam(query, "iterations", 0, 1, maxIterations); err != nil {
		return nil, err
	}
	if req.Photons, err = parseIntParam(query, "photons", 0, 1, maxPhotons); err != nil {
		return nil, err
	}
	if req.Radius, err = parseFloatParam(query, "radius", 0, 1e-6, 100); err != nil {
		return nil, err
	}
	if req.SnapshotEvery, err = parseIntParam(query, "snapshotEvery", 1, 1, maxSnapshotEvery); err != nil {
		return nil, err
	}

	estimator := query.Get("estimator")
	if estimator == "" {
		estimator = string(renderer.EstimatorPPM)
	}
	parsed, err := renderer.ParseEstimator(estimator)
	if err != nil {
		return nil, err
	}
	req.Estimator = string(parsed)

	return req, nil
}

// parseCommonSceneParams parses scene ID and image size, shared with inspection
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSide); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSide); err != nil {
		return err
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
