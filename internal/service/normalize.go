package service

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify derives the URL-safe identifier for a recipe name: lowercase,
// hyphen-separated, deterministic for repeated calls.
func Slugify(name string) string {
	return slug.Make(name)
}

// NormalizeTags splits a comma-separated tag string into clean display
// names: trimmed, empties dropped, title-cased, deduplicated
// case-insensitively. The first occurrence decides the canonical casing.
func NormalizeTags(raw string) []string {
	titler := cases.Title(language.English)

	seen := make(map[string]struct{})
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		name = titler.String(name)
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}
