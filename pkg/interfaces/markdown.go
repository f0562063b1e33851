package interfaces

// MarkdownParser converts Markdown source into HTML. It is the hypertext
// converter used by the route registrar; implementations must be safe to
// reuse across documents.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown conversion. Option names stay readable so
// they map directly onto configuration keys and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
