// ABOUTME: Collapses items that refer to the same thing across sources
// ABOUTME: First occurrence wins, so callers control precedence through input order

package aggregate

import "github.com/harper/matchday/internal/models"

// Dedupe keeps the first item for each key, preserving order.
// Items whose key is empty are dropped.
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// DedupeArticles collapses articles sharing an ID.
func DedupeArticles(items []models.Article) []models.Article {
	return Dedupe(items, func(a models.Article) string { return a.ID })
}

// DedupeEvents collapses events sharing an ID.
func DedupeEvents(items []models.Event) []models.Event {
	return Dedupe(items, func(e models.Event) string { return e.ID })
}
