package view

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips any markup from catalog or label text; catalogs can be
// loaded from operator supplied YAML.
func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	// the template escapes on output, so undo the entity encoding here
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(trimmed)))
}
