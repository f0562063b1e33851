package markdown

import (
	"errors"
	"fmt"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	contentRootNotFoundCode = "DOCSITE_CONTENT_ROOT_NOT_FOUND"
	contentReadFailedCode   = "DOCSITE_CONTENT_READ_FAILED"
	renderFailedCode        = "DOCSITE_RENDER_FAILED"
)

func wrapRootError(err error, root string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, fmt.Sprintf("content root %s not found", root)).
			WithTextCode(contentRootNotFoundCode)
	}
	return wrapReadError(err, root)
}

func wrapReadError(err error, path string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("read content %s", path)).
		WithTextCode(contentReadFailedCode)
}

func wrapRenderError(err error, path string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("convert markdown %s", path)).
		WithTextCode(renderFailedCode)
}
