// Package resolver turns opaque art source URLs into directly embeddable
// image links. Each recognized site has its own resolution protocol; a
// resolver may fall back to another one when a post's true origin lives
// on a different site.
package resolver

import (
	"context"
	"net/url"
)

// ResolvedLink is the outcome of a resolution: the direct image URL and,
// when resolution discovered a truer origin for the post, a replacement
// source URL to show instead of the catalogued one.
type ResolvedLink struct {
	ImageURL          string
	ReplacementSource *url.URL
}

// Clone returns an independent copy of the link.
func (l ResolvedLink) Clone() ResolvedLink {
	clone := ResolvedLink{ImageURL: l.ImageURL}
	if l.ReplacementSource != nil {
		u := *l.ReplacementSource
		clone.ReplacementSource = &u
	}
	return clone
}

// Resolver resolves a source page URL into a direct image link.
type Resolver interface {
	Resolve(ctx context.Context, source *url.URL) (ResolvedLink, error)
}
