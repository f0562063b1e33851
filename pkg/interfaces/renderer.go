package interfaces

import "context"

// PageRenderer turns converted document content into a complete response
// body. It is invoked once per document while the route table is built.
type PageRenderer interface {
	Render(ctx context.Context, content []byte, opts PageOptions) ([]byte, error)
}

// PageOptions carries the per-document values a renderer may use. Title is
// empty when the document declared none; renderers supply their own default.
type PageOptions struct {
	Title         string
	TitleTemplate string
	Path          string
	Meta          map[string]string
}
