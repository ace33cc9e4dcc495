package helpers

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from user-supplied text and trims it.
// bluemonday escapes what it keeps, so entities are decoded back; the API
// serves JSON and clients are expected to escape on render.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// PlainTextList applies PlainText to every entry and drops blanks.
func PlainTextList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = PlainText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
