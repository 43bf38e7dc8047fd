package catalog

import (
	"iter"
	"sort"
	"strings"
)

// Filter narrows names to those containing query (case-insensitive), ranking
// prefix matches first while keeping catalog order within each group. An empty
// query keeps every name.
func Filter(seq iter.Seq[string], query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]matchedName, 0, 16)
	for name := range seq {
		lower := strings.ToLower(name)
		if q != "" && !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedName{
			name:     name,
			isPrefix: q == "" || strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, Option{Value: match.name, Label: match.name})
	}
	return out
}

type matchedName struct {
	name     string
	isPrefix bool
}
