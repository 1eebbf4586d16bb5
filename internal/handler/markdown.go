package handler

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips dangerous markup from rendered post content.
// UGCPolicy allows the safe subset of HTML suitable for blog bodies.
var htmlSanitizer = bluemonday.UGCPolicy()

// renderMarkdown converts markdown to sanitized HTML. Render failures
// return an empty string; the raw markdown is still available to the
// client.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return htmlSanitizer.Sanitize(buf.String())
}
