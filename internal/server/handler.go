package server

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/routes"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Handler serves a route table. Only GET and HEAD are accepted.
type Handler struct {
	table      *routes.Table
	healthPath string
	logger     interfaces.Logger
}

var _ http.Handler = (*Handler)(nil)

// NewHandler serves table. An empty healthPath disables the health endpoint.
func NewHandler(table *routes.Table, healthPath string, logger interfaces.Logger) *Handler {
	if table == nil {
		table = routes.NewTable()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if healthPath != "" {
		if route, ok := table.Lookup(routes.NormalizeRequestPath(healthPath)); ok {
			logger.Warn("server.health.shadowed", "path", healthPath, "source", route.Source.Path)
		}
	}
	return &Handler{table: table, healthPath: healthPath, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	// Document routes take precedence over the health endpoint.
	route, ok := h.table.Lookup(routes.NormalizeRequestPath(r.URL.Path))
	if !ok && h.healthPath != "" && r.URL.Path == h.healthPath {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, "ok")
		return
	}
	if !ok {
		h.logger.Debug("server.not_found", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}
	route.Handler.ServeHTTP(w, r)
}
