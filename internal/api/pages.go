package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// pageFiles maps the app's page routes to their template files in the web
// directory.
var pageFiles = map[string]string{
	"/":          "dashboard.html",
	"/holdings":  "holdings.html",
	"/rebalance": "rebalance.html",
	"/audit":     "audit.html",
}

// WithPages wraps the API handler with the page routes and static asset
// serving. Each page route serves its own template; a missing template falls
// back to index.html so a single-page build still works.
func WithPages(apiHandler http.Handler, webDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			apiHandler.ServeHTTP(w, r)
			return
		}

		cleanPath := path.Clean("/" + r.URL.Path)
		if page, ok := pageFiles[cleanPath]; ok {
			servePage(w, r, webDir, page)
			return
		}

		// Anything else is a static asset (css, js, images).
		assetPath := filepath.Join(webDir, strings.TrimPrefix(cleanPath, "/"))
		if info, err := os.Stat(assetPath); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, assetPath)
			return
		}

		http.NotFound(w, r)
	})
}

func servePage(w http.ResponseWriter, r *http.Request, webDir, page string) {
	for _, name := range []string{page, "index.html"} {
		full := filepath.Join(webDir, name)
		if _, err := os.Stat(full); err == nil {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, full)
			return
		}
	}
	http.NotFound(w, r)
}
