package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Front matter parsing modes accepted by ParseFrontMatter.
const (
	ModeSimple = "simple"
	ModeYAML   = "yaml"
)

var (
	frontMatterBlock = regexp.MustCompile(`(?m)^---$\n[\s\S]*?\n^---$`)
	keyValueLine     = regexp.MustCompile(`^\s*(\w+): ?(.*)$`)
)

// FrontMatter is an ordered string mapping. Keys keep the position of their
// first occurrence; setting an existing key replaces its value.
type FrontMatter struct {
	keys   []string
	values map[string]string
}

// Set stores value under key.
func (f *FrontMatter) Set(key, value string) {
	if f.values == nil {
		f.values = map[string]string{}
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value stored under key.
func (f FrontMatter) Get(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

// Value returns the value stored under key, or "".
func (f FrontMatter) Value(key string) string {
	return f.values[key]
}

// Keys returns the keys in first-occurrence order.
func (f FrontMatter) Keys() []string {
	return slices.Clone(f.keys)
}

// Len reports the number of keys.
func (f FrontMatter) Len() int {
	return len(f.keys)
}

// Map returns a copy of the mapping.
func (f FrontMatter) Map() map[string]string {
	out := make(map[string]string, len(f.values))
	for key, value := range f.values {
		out[key] = value
	}
	return out
}

// Title returns the "title" key.
func (f FrontMatter) Title() string {
	return f.values["title"]
}

// TitleTemplate returns the "titleTemplate" key.
func (f FrontMatter) TitleTemplate() string {
	return f.values["titleTemplate"]
}

// SkippedLine is a front matter line that did not parse as key: value.
type SkippedLine struct {
	// Line is the 1-based line number in the document.
	Line int
	Text string
}

// Extraction is the result of splitting a document.
type Extraction struct {
	FrontMatter FrontMatter
	// Content is the document with the front matter block removed, trimmed.
	Content string
	// Found reports whether a front matter block was present.
	Found   bool
	Skipped []SkippedLine
	// ParseErr is set when yaml mode could not decode the block and fell back
	// to the simple parser.
	ParseErr error
}

// ExtractFrontMatter splits raw into front matter and body. The block is the
// first pair of lines consisting of exactly "---", wherever it appears. Lines
// inside it that are not "key: value" are skipped and reported.
func ExtractFrontMatter(raw string) Extraction {
	raw = normalizeNewlines(raw)

	loc := frontMatterBlock.FindStringIndex(raw)
	if loc == nil {
		return Extraction{Content: strings.TrimSpace(raw)}
	}

	block := raw[loc[0]:loc[1]]
	result := Extraction{
		Content: strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:]),
		Found:   true,
	}

	inner := strings.TrimPrefix(block, "---\n")
	inner = strings.TrimSuffix(inner, "---")
	inner = strings.TrimSuffix(inner, "\n")
	if inner == "" {
		return result
	}

	firstLine := strings.Count(raw[:loc[0]], "\n") + 2
	for i, line := range strings.Split(inner, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		match := keyValueLine.FindStringSubmatch(line)
		if match == nil {
			result.Skipped = append(result.Skipped, SkippedLine{Line: firstLine + i, Text: line})
			continue
		}
		result.FrontMatter.Set(match[1], unquote(match[2]))
	}
	return result
}

// ParseFrontMatter splits source using mode. ModeYAML decodes a leading
// block with adrg/frontmatter (YAML, TOML or JSON) and falls back to the
// simple parser when decoding fails. Any other mode uses ExtractFrontMatter.
func ParseFrontMatter(source []byte, mode string) Extraction {
	if strings.ToLower(strings.TrimSpace(mode)) != ModeYAML {
		return ExtractFrontMatter(string(source))
	}

	normalized := []byte(normalizeNewlines(string(source)))

	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(normalized), &meta)
	if err != nil {
		result := ExtractFrontMatter(string(normalized))
		result.ParseErr = fmt.Errorf("parse front matter: %w", err)
		return result
	}

	result := Extraction{
		Content: strings.TrimSpace(string(body)),
		Found:   !bytes.Equal(body, normalized),
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		value, ok := stringify(meta[key])
		if !ok {
			result.Skipped = append(result.Skipped, SkippedLine{Text: key})
			continue
		}
		result.FrontMatter.Set(key, value)
	}
	return result
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		return value[1 : len(value)-1]
	}
	return value
}

func normalizeNewlines(raw string) string {
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	}
}
