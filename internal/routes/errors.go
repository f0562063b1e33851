package routes

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	routeConflictCode = "DOCSITE_ROUTE_CONFLICT"
	renderFailedCode  = "DOCSITE_RENDER_FAILED"
)

// ErrRouteConflict is matched by errors.Is for conflicts raised under the
// error policy.
var ErrRouteConflict = errors.New("routes: path already registered")

func conflictError(path, existing, incoming string) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %s", ErrRouteConflict, path),
		goerrors.CategoryConflict,
		fmt.Sprintf("route %s from %s conflicts with %s", path, incoming, existing),
	).WithTextCode(routeConflictCode)
}

func renderError(err error, sourcePath string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("render page %s", sourcePath)).
		WithTextCode(renderFailedCode)
}
