package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fresneltrace/fresnel/log"
	"github.com/fresneltrace/fresnel/pkg/scene"
)

var logger = log.New("web")

// Server serves the preview page and the SSE render API.
type Server struct {
	port      int
	scenePath string // optional scene file exposed alongside the built-ins
	mux       *http.ServeMux

	// One render at a time; a concurrent request gets 409.
	renderMu sync.Mutex

	// Minimum delay between progress snapshots on the SSE stream.
	snapshotEvery time.Duration
}

// NewServer creates a preview server. scenePath may be empty.
func NewServer(port int, scenePath string) *Server {
	s := &Server{
		port:          port,
		scenePath:     scenePath,
		snapshotEvery: 500 * time.Millisecond,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	s.mux = mux

	return s
}

// Handler returns the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// sceneEntry is one row of the scene picker.
type sceneEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"` // "builtin" or "file"
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	entries := make([]sceneEntry, 0)
	for _, info := range scene.Builtins() {
		entries = append(entries, sceneEntry{
			Name:        info.Name,
			Description: info.Description,
			Source:      "builtin",
		})
	}
	if s.scenePath != "" {
		entries = append(entries, sceneEntry{
			Name:        s.scenePath,
			Description: "scene file passed on the command line",
			Source:      "file",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>fresnel preview</title>
<style>
  body { font-family: monospace; background: #111; color: #ddd; margin: 2em; }
  img { image-rendering: pixelated; border: 1px solid #444; max-width: 100%; }
  select, input, button { font-family: inherit; background: #222; color: #ddd; border: 1px solid #555; padding: 0.3em; }
  #status { margin: 1em 0; }
</style>
</head>
<body>
<h1>fresnel preview</h1>
<p>
  scene <select id="scene"></select>
  samples <input id="samples" type="number" value="2" min="1" max="16" size="4">
  <button id="go">render</button>
</p>
<div id="status">idle</div>
<img id="frame" alt="">
<script>
const sceneSel = document.getElementById('scene');
const status = document.getElementById('status');
const frame = document.getElementById('frame');
let stream = null;

fetch('/api/scenes').then(r => r.json()).then(scenes => {
  for (const s of scenes) {
    const opt = document.createElement('option');
    opt.value = s.name;
    opt.textContent = s.name + ' - ' + s.description;
    if (s.source === 'file') opt.dataset.file = '1';
    sceneSel.appendChild(opt);
  }
});

document.getElementById('go').onclick = () => {
  if (stream) stream.close();
  const opt = sceneSel.selectedOptions[0];
  const key = opt.dataset.file ? 'path' : 'scene';
  const samples = document.getElementById('samples').value;
  stream = new EventSource('/api/render?' + key + '=' + encodeURIComponent(opt.value) + '&samples=' + samples);
  stream.addEventListener('start', e => {
    const d = JSON.parse(e.data);
    status.textContent = 'rendering ' + d.width + 'x' + d.height + '...';
  });
  stream.addEventListener('progress', e => {
    const d = JSON.parse(e.data);
    status.textContent = 'row ' + d.rows_done + '/' + d.rows_total + ' (' + d.elapsed_ms + 'ms)';
    frame.src = 'data:image/png;base64,' + d.image_data;
  });
  stream.addEventListener('complete', e => {
    const d = JSON.parse(e.data);
    status.textContent = 'done in ' + d.elapsed_ms + 'ms, ' + d.stats.primary_rays + ' primary rays';
    frame.src = 'data:image/png;base64,' + d.image_data;
    stream.close();
    stream = null;
  });
  stream.addEventListener('error', e => {
    if (e.data) status.textContent = 'error: ' + JSON.parse(e.data).message;
    stream.close();
    stream = null;
  });
};
</script>
</body>
</html>
`
