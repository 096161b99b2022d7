// Package listing implements the in-memory search and filter shell shared by
// the admin list views: case-insensitive substring search across a
// configurable set of string fields, plus AND-composed predicate filters.
// Lists are fully loaded before filtering; there is no pagination.
package listing

import "strings"

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// Fields extracts the searchable string values from an item.
type Fields[T any] func(T) []string

// Search keeps the items whose fields contain query as a case-insensitive
// substring. An empty query keeps everything.
func Search[T any](items []T, query string, fields Fields[T]) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	query = strings.ToLower(query)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Apply keeps the items matching every predicate.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok := true
		for _, pred := range preds {
			if !pred(item) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, item)
		}
	}
	return out
}
