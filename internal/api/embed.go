package api

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed dist/*
var staticFiles embed.FS

const indexPage = "index.html"

// StaticHandler serves the embedded single page. Paths without an extension
// are page routes, so they all get index.html; assets are served as files.
func (h *Handler) StaticHandler() http.Handler {
	dist, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		panic(err) // the embed pattern guarantees dist exists
	}
	assets := http.FileServerFS(dist)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) != "" {
			assets.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, dist, indexPage)
	})
}
