package store

import (
	"strings"
	"sync"

	"github.com/securepass/securepass/internal/models"
)

// SearchState holds the transient query string shared by the header search
// box and the list views. It never expires on its own; clearing it is the
// view's responsibility.
type SearchState struct {
	mu    sync.RWMutex
	query string
}

// NewSearchState returns an empty search state.
func NewSearchState() *SearchState {
	return &SearchState{}
}

// SetQuery replaces the current query.
func (s *SearchState) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Query returns the current query.
func (s *SearchState) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Clear resets the query to empty.
func (s *SearchState) Clear() {
	s.SetQuery("")
}

// containsFold reports a case-insensitive substring match.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MatchCredential reports whether the credential matches the query:
// case-insensitive substring against title, username, url, and any tag.
// An empty query matches everything.
func MatchCredential(c models.Credential, query string) bool {
	if query == "" {
		return true
	}
	if containsFold(c.Title, query) || containsFold(c.Username, query) || containsFold(c.URL, query) {
		return true
	}
	for _, tag := range c.Tags {
		if containsFold(tag, query) {
			return true
		}
	}
	return false
}

// MatchNote matches against title and category.
func MatchNote(n models.Note, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(n.Title, query) || containsFold(string(n.Category), query)
}

// MatchLicense matches against the product name.
func MatchLicense(l models.License, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(l.Name, query)
}
