package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rook-computer/analogclock/internal/assets"
)

type APIV1Config struct {
	Deps APIV1Deps
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg.Deps)))
}

// RegisterUI serves either the embedded viewer or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the web UI
func NewDefaultMux(staticDir string, cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux, staticDir)
	return mux
}

// StaticUIHandler serves staticDir when it is an existing directory and the
// embedded viewer when staticDir is empty.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	switch {
	case staticDir == "":
		fileServer = http.FileServer(http.FS(assets.WebUI))
	default:
		if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			})
		}
		fileServer = http.FileServer(http.Dir(staticDir))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
