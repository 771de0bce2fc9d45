// Package registry holds the list of known art entries parsed from the
// arts text file (one absolute URL per non-empty line).
package registry

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	apperrors "github.com/anime-shed/random-art-go/internal/errors"
)

// Kind classifies which site an entry points at. It decides which
// resolution protocol is used for the entry.
type Kind int

const (
	KindTwitter Kind = iota
	KindSafebooru
)

func (k Kind) String() string {
	switch k {
	case KindTwitter:
		return "twitter"
	case KindSafebooru:
		return "safebooru"
	}
	return "unknown"
}

// KindForHost maps a source host to its Kind. Hosts outside the
// recognized set are rejected.
func KindForHost(host string) (Kind, error) {
	switch host {
	case "twitter.com":
		return KindTwitter, nil
	case "safebooru.org":
		return KindSafebooru, nil
	}
	return 0, apperrors.NewParseError(fmt.Sprintf("unsupported website %q", host), nil)
}

// Entry is one catalogued art source. Immutable once constructed.
type Entry struct {
	SourceURL *url.URL
	Kind      Kind
}

// ParseEntry parses a single registry line into an Entry.
func ParseEntry(line string) (Entry, error) {
	u, err := url.Parse(line)
	if err != nil {
		return Entry{}, apperrors.NewParseError(fmt.Sprintf("invalid art url %q", line), err)
	}
	if u.Host == "" {
		return Entry{}, apperrors.NewParseError(fmt.Sprintf("art url %q has no host", line), nil)
	}
	kind, err := KindForHost(u.Hostname())
	if err != nil {
		return Entry{}, err
	}
	return Entry{SourceURL: u, Kind: kind}, nil
}

// Registry is an ordered sequence of entries plus an index from source
// URL to position. The index is first-wins: Reload never overwrites or
// reorders an existing entry.
type Registry struct {
	entries []Entry
	indices map[string]int
}

// Parse builds a registry from the full arts text. All lines are kept
// positionally; the index only matters for Reload dedup.
func Parse(text string) (*Registry, error) {
	r := &Registry{indices: make(map[string]int)}
	for _, line := range splitLines(text) {
		entry, err := ParseEntry(line)
		if err != nil {
			return nil, err
		}
		r.indices[entry.SourceURL.String()] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	return r, nil
}

// Len reports the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Known reports whether a source URL is already indexed.
func (r *Registry) Known(sourceURL string) bool {
	_, ok := r.indices[sourceURL]
	return ok
}

// PickRandom returns an entry chosen uniformly at random. The registry
// must be non-empty; startup aborts before an empty registry is served.
func (r *Registry) PickRandom() Entry {
	return r.entries[rand.Intn(len(r.entries))]
}

// Reload re-parses text line by line and appends entries whose source
// URL is not already known. It applies lines incrementally: a parse
// failure on line k leaves lines 1..k-1 applied.
func (r *Registry) Reload(text string) error {
	for _, line := range splitLines(text) {
		entry, err := ParseEntry(line)
		if err != nil {
			return err
		}
		key := entry.SourceURL.String()
		if _, ok := r.indices[key]; !ok {
			r.indices[key] = len(r.entries)
			r.entries = append(r.entries, entry)
		}
	}
	return nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
