package client

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Session storage keys. The markers are one-shot: consumed (cleared) the
// first time they are read.
const (
	listStateKey    = "recipeListState"
	returningMarker = "returning-from-detail"
	resetMarker     = "reset-list-state"
)

// ListState is the navigation state persisted across a detail-page round
// trip.
type ListState struct {
	Page    int      `json:"currentPage"`
	Tags    []string `json:"selectedTags"`
	Query   string   `json:"searchQuery"`
	PerPage int      `json:"recipesPerPage,omitempty"`
}

// DefaultListState is page one, no tags, empty search.
func DefaultListState() ListState {
	return ListState{Page: 1}
}

// StateStore is session-scoped string storage.
type StateStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStore is an in-memory StateStore for one session.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// NavState is the small state machine deciding whether the list view
// restores its saved state or resets to defaults. Three transitions exist:
// NavigateToDetail (leaving the list), Reset (explicit home action) and
// OnListMount (arriving at the list). Reset always wins over a pending
// restore.
type NavState struct {
	store StateStore
}

func NewNavState(store StateStore) *NavState {
	return &NavState{store: store}
}

// NavigateToDetail persists the current list state and marks the session as
// returning, so the next list mount restores instead of resetting.
func (n *NavState) NavigateToDetail(state ListState) {
	if data, err := json.Marshal(state); err == nil {
		n.store.Set(listStateKey, string(data))
	}
	n.store.Set(returningMarker, "1")
}

// Reset marks the session so the next list mount forces defaults,
// regardless of any saved state.
func (n *NavState) Reset() {
	n.store.Set(resetMarker, "1")
}

// OnListMount resolves the state the list view should mount with. Both
// markers and the saved state are consumed; fallback supplies the state for
// a plain mount (e.g. parsed from URL query parameters) and may be nil.
func (n *NavState) OnListMount(fallback func() ListState) ListState {
	if _, ok := n.store.Get(resetMarker); ok {
		n.store.Delete(resetMarker)
		n.store.Delete(returningMarker)
		n.store.Delete(listStateKey)
		return DefaultListState()
	}

	if _, ok := n.store.Get(returningMarker); ok {
		n.store.Delete(returningMarker)
		raw, found := n.store.Get(listStateKey)
		n.store.Delete(listStateKey)
		if found {
			var state ListState
			if err := json.Unmarshal([]byte(raw), &state); err == nil {
				if state.Page < 1 {
					state.Page = 1
				}
				return state
			}
		}
		return DefaultListState()
	}

	if fallback != nil {
		return fallback()
	}
	return DefaultListState()
}

// StateFromQuery reads list state from URL query parameters, the fallback
// for a direct link into a filtered list.
func StateFromQuery(values url.Values) ListState {
	state := DefaultListState()
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	if tags := values.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				state.Tags = append(state.Tags, tag)
			}
		}
	}
	state.Query = values.Get("q")
	return state
}
