// Package markdown discovers Markdown documents under a content root, splits
// them into front matter and body, and converts bodies to HTML with goldmark.
//
// Discovery and conversion are separate steps: Walker returns the list of
// sources with their URL base paths, and Service loads each one on demand.
package markdown
