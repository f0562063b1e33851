package routes

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docsite/internal/markdown"
)

// DefaultIndexName is the document name that maps to its directory's path.
const DefaultIndexName = "index"

// Route is one registered document.
type Route struct {
	ID          uuid.UUID
	Path        string
	Source      markdown.Source
	Title       string
	FrontMatter markdown.FrontMatter
	// Page is the full response body, rendered once at registration.
	Page []byte
	// Checksum is the hex SHA-256 of Page.
	Checksum string
	Handler  http.Handler
}

// RouteName maps a document name to the last segment of its route. The
// index document contributes no segment.
func RouteName(name, indexName string) string {
	if indexName == "" {
		indexName = DefaultIndexName
	}
	if name == indexName {
		return ""
	}
	return name
}

// JoinPath joins a base path and route name into a route path with one
// leading slash and no trailing slash. The root index joins to "/".
func JoinPath(basePath, routeName string) string {
	return "/" + strings.Trim(basePath+"/"+routeName, "/")
}

// NormalizeRequestPath maps an incoming URL path onto a route path by
// removing one trailing slash.
func NormalizeRequestPath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}

func checksum(page []byte) string {
	sum := sha256.Sum256(page)
	return hex.EncodeToString(sum[:])
}

type pageHandler struct {
	page []byte
	etag string
}

func newPageHandler(page []byte, sum string) http.Handler {
	return &pageHandler{page: page, etag: `"` + sum + `"`}
}

func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("ETag", h.etag)
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(h.page))
}
