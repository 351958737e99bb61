package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Video handles GET /api/video/{name}: streams an mp4 from the videos
// directory with range support, 404 on anything missing or fishy.
func (s *Server) Video(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		videoNotFound(w)
		return
	}

	path := filepath.Join(s.VideosDir, name)
	f, err := os.Open(path)
	if err != nil {
		videoNotFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		videoNotFound(w)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	// ServeContent handles Content-Length, Accept-Ranges and range requests.
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func videoNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "Video not found"})
}
