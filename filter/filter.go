package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nightshift/model"
)

// All はステータス・区分の絞り込みを無効にする値です。
const All = "all"

// Config describes how one entity type is filtered. Nil extractors disable
// the matching filter for that type.
type Config[T any] struct {
	Status   func(T) string
	Category func(T) []string
	Search   func(T) []string
}

// Apply returns the records that pass the status, category and search
// filters, in their original order. The input slice is never modified.
func Apply[T any](all []T, cfg Config[T], c model.Criteria) []T {
	out := make([]T, 0, len(all))
	needle := ""
	if c.Search != "" {
		needle = lower(c.Search)
	}
	for _, rec := range all {
		if !matchesStatus(rec, cfg, c.Status) {
			continue
		}
		if !matchesCategory(rec, cfg, c.Category) {
			continue
		}
		if c.Search != "" && !matchesSearch(rec, cfg, needle) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Match reports whether a single record passes the criteria.
func Match[T any](rec T, cfg Config[T], c model.Criteria) bool {
	if !matchesStatus(rec, cfg, c.Status) || !matchesCategory(rec, cfg, c.Category) {
		return false
	}
	return c.Search == "" || matchesSearch(rec, cfg, lower(c.Search))
}

func active(v string) bool {
	return v != "" && v != All
}

func matchesStatus[T any](rec T, cfg Config[T], status string) bool {
	if !active(status) || cfg.Status == nil {
		return true
	}
	return cfg.Status(rec) == status
}

func matchesCategory[T any](rec T, cfg Config[T], category string) bool {
	if !active(category) || cfg.Category == nil {
		return true
	}
	for _, v := range cfg.Category(rec) {
		if v == category {
			return true
		}
	}
	return false
}

func matchesSearch[T any](rec T, cfg Config[T], needle string) bool {
	if cfg.Search == nil {
		return false
	}
	for _, field := range cfg.Search(rec) {
		if field == "" {
			continue
		}
		if strings.Contains(lower(field), needle) {
			return true
		}
	}
	return false
}

// cases.Caser は並行利用できないため呼び出しごとに生成する
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
