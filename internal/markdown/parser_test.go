package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

func TestGoldmarkParserParse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nSome *text*."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `<h1 id="heading">Heading</h1>`) {
		t.Fatalf("expected heading with id, got %q", out)
	}
	if !strings.Contains(out, "<em>text</em>") {
		t.Fatalf("expected emphasis, got %q", out)
	}
}

func TestGoldmarkParserDefaultExtensions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] done\n\nvisit https://example.com"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected gfm table, got %q", out)
	}
	if !strings.Contains(out, `type="checkbox"`) {
		t.Fatalf("expected task list checkbox, got %q", out)
	}
	if !strings.Contains(out, `<a href="https://example.com">`) {
		t.Fatalf("expected linkified url, got %q", out)
	}
}

func TestGoldmarkParserParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("line one\nline two\n\n<div>raw</div>")

	html, err := parser.ParseWithOptions(source, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "<div>raw</div>") {
		t.Fatalf("expected raw html to pass through, got %q", html)
	}

	html, err = parser.ParseWithOptions(source, interfaces.ParseOptions{HardWraps: true, SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "line one<br>") {
		t.Fatalf("expected hard wrap, got %q", out)
	}
	if strings.Contains(out, "<div>raw</div>") {
		t.Fatalf("expected raw html to be omitted in safe mode, got %q", out)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 3 {
		t.Fatalf("expected three default extensions, got %d", len(got))
	}
	if got := collectExtensions([]string{"GFM", "gfm", " footnote ", "unknown"}); len(got) != 2 {
		t.Fatalf("expected duplicates and unknown names ignored, got %d", len(got))
	}
	if got := collectExtensions([]string{"unknown"}); len(got) != 0 {
		t.Fatalf("expected no extensions, got %d", len(got))
	}
}
