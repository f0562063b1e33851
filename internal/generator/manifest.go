package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	manifestFileName    = ".docsite-manifest.json"
	manifestFileVersion = 1
)

// buildManifest records the checksum of every page written by the last
// successful build so unchanged pages can be skipped.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	Pages       map[string]manifestPage
}

type manifestPage struct {
	RouteID    string    `json:"route_id"`
	Route      string    `json:"route"`
	Source     string    `json:"source"`
	SourceID   string    `json:"source_id"`
	Output     string    `json:"output"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

type manifestFile struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Pages       []manifestPage `json:"pages"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	manifest := newBuildManifest()
	manifest.GeneratedAt = file.GeneratedAt
	if file.Version != 0 {
		manifest.Version = file.Version
	}
	for _, page := range file.Pages {
		manifest.Pages[page.Route] = page
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	file := manifestFile{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		Pages:       make([]manifestPage, 0, len(m.Pages)),
	}
	if file.Version == 0 {
		file.Version = manifestFileVersion
	}
	for _, page := range m.Pages {
		file.Pages = append(file.Pages, page)
	}
	sort.Slice(file.Pages, func(i, j int) bool {
		return file.Pages[i].Route < file.Pages[j].Route
	})
	return json.MarshalIndent(file, "", "  ")
}

// unchanged reports whether route was last written with checksum.
func (m *buildManifest) unchanged(route, checksum string) bool {
	if m == nil {
		return false
	}
	entry, ok := m.Pages[route]
	return ok && entry.Checksum == checksum
}
