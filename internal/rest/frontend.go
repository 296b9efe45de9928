package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

// FrontendHandler serves the browser client: static files from a directory,
// with a fallback to the index document so client-side routes resolve.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Clean the path so requests cannot escape the frontend directory.
	requested := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(requested)
	if err == nil && !info.IsDir() {
		http.ServeFile(w, r, requested)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, h.index))
}
