package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fresneltrace/fresnel/pkg/renderer"
	"github.com/fresneltrace/fresnel/pkg/scene"
)

// renderRequest is the parsed query of one /api/render call.
type renderRequest struct {
	builtin string // built-in scene name, exclusive with path
	path    string // scene file path, exclusive with builtin
	width   int    // 0 keeps the scene's own value
	height  int
	samples int // samples per pixel axis; 0 keeps the scene's value
	depth   int
	seed    int64
}

type startEvent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type progressEvent struct {
	RowsDone  int    `json:"rows_done"`
	RowsTotal int    `json:"rows_total"`
	ElapsedMs int64  `json:"elapsed_ms"`
	ImageData string `json:"image_data"` // base64 PNG of the rows finished so far
}

type completeEvent struct {
	ElapsedMs int64       `json:"elapsed_ms"`
	ImageData string      `json:"image_data"`
	Stats     statsDigest `json:"stats"`
}

type statsDigest struct {
	PrimaryRays     int64 `json:"primary_rays"`
	SamplesPerPixel int   `json:"samples_per_pixel"`
	Workers         int   `json:"workers"`
	BVHNodes        int   `json:"bvh_nodes"`
	BVHDepth        int   `json:"bvh_depth"`
}

type errorEvent struct {
	Message string `json:"message"`
}

// handleRender runs one render and streams its progress as SSE events:
// a "start" event with the frame dimensions, throttled "progress" events
// carrying a partial-frame PNG, and a final "complete" event with the
// finished image and run stats. Errors arrive as an "error" event so the
// page can show them; the stream always ends after complete or error.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !s.renderMu.TryLock() {
		http.Error(w, "a render is already running", http.StatusConflict)
		return
	}
	defer s.renderMu.Unlock()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	req, err := parseRenderRequest(r)
	if err != nil {
		writeEvent(w, flusher, "error", errorEvent{Message: err.Error()})
		return
	}

	sc, err := buildScene(req)
	if err != nil {
		writeEvent(w, flusher, "error", errorEvent{Message: err.Error()})
		return
	}

	logger.Infof("rendering %q at %dx%d", sceneLabel(req), sc.Width, sc.Height)
	writeEvent(w, flusher, "start", startEvent{Width: sc.Width, Height: sc.Height})

	start := time.Now()
	var lastSnapshot time.Time

	opts := renderer.Options{
		Width:    sc.Width,
		Height:   sc.Height,
		Sampler:  sc.Sampler,
		MaxDepth: sc.MaxDepth,
		Seed:     req.seed,
		Snapshot: func(frame *renderer.Framebuffer, rowsDone, rowsTotal int) {
			if time.Since(lastSnapshot) < s.snapshotEvery && rowsDone < rowsTotal {
				return
			}
			lastSnapshot = time.Now()
			data, err := encodeFrame(frame)
			if err != nil {
				return
			}
			writeEvent(w, flusher, "progress", progressEvent{
				RowsDone:  rowsDone,
				RowsTotal: rowsTotal,
				ElapsedMs: time.Since(start).Milliseconds(),
				ImageData: data,
			})
		},
	}

	rend := renderer.NewRenderer(sc.Camera, sc.Background, sc.Root, opts)
	frame, stats, err := rend.Render(r.Context())
	if err != nil {
		// Client disconnects land here too; the write is then a no-op.
		writeEvent(w, flusher, "error", errorEvent{Message: err.Error()})
		return
	}

	data, err := encodeFrame(frame)
	if err != nil {
		writeEvent(w, flusher, "error", errorEvent{Message: err.Error()})
		return
	}

	writeEvent(w, flusher, "complete", completeEvent{
		ElapsedMs: time.Since(start).Milliseconds(),
		ImageData: data,
		Stats: statsDigest{
			PrimaryRays:     stats.PrimaryRays,
			SamplesPerPixel: stats.SamplesPerPixel,
			Workers:         stats.Workers,
			BVHNodes:        sc.BVHStats.Nodes,
			BVHDepth:        sc.BVHStats.Depth,
		},
	})
	logger.Infof("render of %q finished in %s", sceneLabel(req), time.Since(start))
}

func parseRenderRequest(r *http.Request) (*renderRequest, error) {
	q := r.URL.Query()
	req := &renderRequest{
		builtin: q.Get("scene"),
		path:    q.Get("path"),
	}
	if req.builtin == "" && req.path == "" {
		return nil, fmt.Errorf("one of scene= or path= is required")
	}
	if req.builtin != "" && req.path != "" {
		return nil, fmt.Errorf("scene= and path= are exclusive")
	}

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"width", &req.width},
		{"height", &req.height},
		{"samples", &req.samples},
		{"depth", &req.depth},
	} {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid %s=%q", f.key, raw)
		}
		*f.dst = v
	}
	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed=%q", raw)
		}
		req.seed = v
	}
	return req, nil
}

// buildScene resolves the request to a config, applies the query
// overrides, and preprocesses the scene so it is ready to render.
func buildScene(req *renderRequest) (*scene.Scene, error) {
	var cfg *scene.Config
	var err error
	if req.builtin != "" {
		cfg, err = scene.Builtin(req.builtin)
	} else {
		cfg, err = scene.LoadConfig(req.path)
	}
	if err != nil {
		return nil, err
	}

	if req.width > 0 {
		cfg.Image.Width = req.width
	}
	if req.height > 0 {
		cfg.Image.Height = req.height
	}
	if req.samples > 0 {
		cfg.Sampler.N = req.samples
	}
	if req.depth > 0 {
		cfg.Sampler.MaxDepth = req.depth
	}

	sc, err := cfg.Scene()
	if err != nil {
		return nil, err
	}
	sc.Preprocess()
	return sc, nil
}

func sceneLabel(req *renderRequest) string {
	if req.builtin != "" {
		return req.builtin
	}
	return req.path
}

func encodeFrame(frame *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := frame.WritePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeEvent emits one SSE event and flushes it so the client sees
// progress immediately. Write errors mean the client went away; the
// render then stops at the next row boundary via the request context.
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return
	}
	flusher.Flush()
}
