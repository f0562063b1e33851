package routes

import (
	"slices"
	"strings"
)

// Conflict policies for two documents resolving to the same path.
const (
	ConflictLast  = "last"
	ConflictFirst = "first"
	ConflictError = "error"
)

// Collision records two documents that resolved to the same route path.
type Collision struct {
	Path string
	// Kept is the source path served after the collision was resolved.
	Kept string
	// Dropped is the source path that lost.
	Dropped string
}

// Table is the set of registered routes keyed by path. A path keeps the
// position of its first registration. It is built once and then only read,
// so lookups need no locking.
type Table struct {
	paths      []string
	routes     map[string]*Route
	collisions []Collision
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{routes: map[string]*Route{}}
}

// add stores route according to policy. It reports the collision, if any.
func (t *Table) add(route *Route, policy string) (*Collision, error) {
	existing, ok := t.routes[route.Path]
	if !ok {
		t.paths = append(t.paths, route.Path)
		t.routes[route.Path] = route
		return nil, nil
	}

	switch strings.ToLower(policy) {
	case ConflictError:
		return nil, conflictError(route.Path, existing.Source.Path, route.Source.Path)
	case ConflictFirst:
		collision := Collision{Path: route.Path, Kept: existing.Source.Path, Dropped: route.Source.Path}
		t.collisions = append(t.collisions, collision)
		return &collision, nil
	default:
		collision := Collision{Path: route.Path, Kept: route.Source.Path, Dropped: existing.Source.Path}
		t.collisions = append(t.collisions, collision)
		t.routes[route.Path] = route
		return &collision, nil
	}
}

// Lookup returns the route registered for path.
func (t *Table) Lookup(path string) (*Route, bool) {
	if t == nil {
		return nil, false
	}
	route, ok := t.routes[path]
	return route, ok
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []*Route {
	if t == nil {
		return nil
	}
	out := make([]*Route, 0, len(t.paths))
	for _, path := range t.paths {
		out = append(out, t.routes[path])
	}
	return out
}

// Paths returns the registered paths in registration order.
func (t *Table) Paths() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.paths)
}

// Len reports the number of distinct paths.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.paths)
}

// Collisions returns every collision seen while building the table.
func (t *Table) Collisions() []Collision {
	if t == nil {
		return nil
	}
	return slices.Clone(t.collisions)
}
