package client

import (
	"sort"
	"strings"

	"github.com/hearthside/recipebook/internal/models"
)

// Page sizes per viewport; the desktop size is user-adjustable.
const (
	DefaultPageSize = 9
	MobilePageSize  = 6
)

// EmptyState distinguishes an empty catalog from an empty filter result.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	// EmptyNoRecipes: nothing exists at all; prompt to add the first recipe.
	EmptyNoRecipes
	// EmptyNoMatches: recipes exist but none pass the current filters.
	EmptyNoMatches
)

// PageItem is one pagination control: a page number or an ellipsis
// collapsing a run of hidden pages.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// ListView composes tag filtering, free-text search and pagination over the
// recipe collection. Changing any filter resets to page one.
type ListView struct {
	recipes  []models.Recipe
	page     int
	pageSize int
	tags     []string
	query    string
}

// NewListView creates a list view over the given recipes.
func NewListView(recipes []models.Recipe) *ListView {
	return &ListView{recipes: recipes, page: 1, pageSize: DefaultPageSize}
}

// SetRecipes replaces the backing collection, keeping filters in place but
// clamping the page into the new range.
func (v *ListView) SetRecipes(recipes []models.Recipe) {
	v.recipes = recipes
	v.clampPage()
}

// AllTags returns the sorted, deduplicated union of tag names across all
// loaded recipes.
func (v *ListView) AllTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, r := range v.recipes {
		for _, t := range r.Tags {
			if _, ok := seen[t.Name]; !ok {
				seen[t.Name] = struct{}{}
				tags = append(tags, t.Name)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// SelectedTags returns the active tag filter.
func (v *ListView) SelectedTags() []string {
	return append([]string(nil), v.tags...)
}

// ToggleTag selects or deselects a tag and resets to page one.
func (v *ListView) ToggleTag(tag string) {
	for i, t := range v.tags {
		if t == tag {
			v.tags = append(v.tags[:i], v.tags[i+1:]...)
			v.page = 1
			return
		}
	}
	v.tags = append(v.tags, tag)
	v.page = 1
}

// ClearTags removes the whole tag filter and resets to page one.
func (v *ListView) ClearTags() {
	v.tags = nil
	v.page = 1
}

// Query returns the active search query.
func (v *ListView) Query() string {
	return v.query
}

// SetQuery replaces the search query and resets to page one.
func (v *ListView) SetQuery(query string) {
	v.query = query
	v.page = 1
}

// Page returns the current page, 1-based.
func (v *ListView) Page() int {
	return v.page
}

// SetPage moves to the given page, clamped into the valid range.
func (v *ListView) SetPage(page int) {
	v.page = page
	v.clampPage()
}

// PageSize returns the current page size.
func (v *ListView) PageSize() int {
	return v.pageSize
}

// SetPageSize changes how many recipes a page holds and resets to page one.
func (v *ListView) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	v.pageSize = size
	v.page = 1
}

// Filtered returns the recipes passing both the tag filter and the search
// query, in collection order.
func (v *ListView) Filtered() []models.Recipe {
	var out []models.Recipe
	for _, r := range v.recipes {
		if v.matchesTags(r) && v.matchesQuery(r) {
			out = append(out, r)
		}
	}
	return out
}

// Visible returns the current page of the filtered set.
func (v *ListView) Visible() []models.Recipe {
	filtered := v.Filtered()
	start := (v.page - 1) * v.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages returns the number of pages the filtered set occupies; at
// least one even when empty.
func (v *ListView) TotalPages() int {
	n := len(v.Filtered())
	if n == 0 {
		return 1
	}
	return (n + v.pageSize - 1) / v.pageSize
}

// Empty reports which empty state to render, if any.
func (v *ListView) Empty() EmptyState {
	if len(v.recipes) == 0 {
		return EmptyNoRecipes
	}
	if len(v.Filtered()) == 0 {
		return EmptyNoMatches
	}
	return EmptyNone
}

// PageItems computes the windowed pagination controls: first and last page
// always visible, up to three consecutive pages around the current one, and
// every gap collapsed into a single ellipsis.
func (v *ListView) PageItems() []PageItem {
	total := v.TotalPages()
	show := func(p int) bool {
		if p == 1 || p == total {
			return true
		}
		return p >= v.page-1 && p <= v.page+1
	}

	var items []PageItem
	inGap := false
	for p := 1; p <= total; p++ {
		if show(p) {
			items = append(items, PageItem{Page: p})
			inGap = false
			continue
		}
		if !inGap {
			items = append(items, PageItem{Ellipsis: true})
			inGap = true
		}
	}
	return items
}

// State captures the current navigation state for persistence.
func (v *ListView) State() ListState {
	return ListState{
		Page:    v.page,
		Tags:    v.SelectedTags(),
		Query:   v.query,
		PerPage: v.pageSize,
	}
}

// Restore applies a previously captured navigation state.
func (v *ListView) Restore(state ListState) {
	v.tags = append([]string(nil), state.Tags...)
	v.query = state.Query
	if state.PerPage > 0 {
		v.pageSize = state.PerPage
	}
	if state.Page > 0 {
		v.page = state.Page
	} else {
		v.page = 1
	}
	v.clampPage()
}

func (v *ListView) clampPage() {
	if v.page < 1 {
		v.page = 1
	}
	if total := v.TotalPages(); v.page > total {
		v.page = total
	}
}

// matchesTags requires the recipe to carry every selected tag.
func (v *ListView) matchesTags(r models.Recipe) bool {
	for _, want := range v.tags {
		found := false
		for _, t := range r.Tags {
			if t.Name == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesQuery requires every whitespace-separated term to appear as a
// substring in at least one searchable field.
func (v *ListView) matchesQuery(r models.Recipe) bool {
	terms := strings.Fields(strings.ToLower(v.query))
	if len(terms) == 0 {
		return true
	}

	fields := []string{
		strings.ToLower(r.Name),
		strings.ToLower(r.ShortDescription),
		strings.ToLower(r.Description),
	}
	for _, ing := range r.Ingredients {
		fields = append(fields, strings.ToLower(ing.Name))
	}
	for _, t := range r.Tags {
		fields = append(fields, strings.ToLower(t.Name))
	}

	for _, term := range terms {
		found := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
