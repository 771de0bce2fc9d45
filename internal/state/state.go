// Package state owns the mutable pieces shared across requests: the art
// registry, the resolved-link cache and the outbound HTTP client.
package state

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/anime-shed/random-art-go/internal/cache"
	"github.com/anime-shed/random-art-go/internal/config"
	apperrors "github.com/anime-shed/random-art-go/internal/errors"
	"github.com/anime-shed/random-art-go/internal/registry"
	"github.com/anime-shed/random-art-go/internal/resolver"
)

// SharedState coordinates the request path: pick entry, cache lookup,
// resolve on miss, cache store. The registry sits behind a mutex (read
// on every request, mutated only by Reload); the cache handles its own
// concurrency.
type SharedState struct {
	mu       sync.Mutex
	registry *registry.Registry

	cache     *cache.LinkCache
	resolvers map[registry.Kind]resolver.Resolver
	client    *http.Client
}

func New(reg *registry.Registry, cfg *config.Config) *SharedState {
	client := newHTTPClient(cfg)
	twitter := resolver.NewTwitterResolver(client, cfg.MirrorURL)
	safebooru := resolver.NewSafebooruResolver(client, twitter)

	return &SharedState{
		registry: reg,
		cache:    cache.New(),
		client:   client,
		resolvers: map[registry.Kind]resolver.Resolver{
			registry.KindTwitter:   twitter,
			registry.KindSafebooru: safebooru,
		},
	}
}

// newHTTPClient builds the outbound client shared by all resolvers.
// Redirect following is disabled: the twitter protocol reads Location
// headers off the raw redirect response. Every request carries the
// service's identifying user agent.
func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Transport: &userAgentTransport{
			transport: http.DefaultTransport,
			userAgent: cfg.UserAgent(),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(clone)
}

// PickRandom returns a uniformly random entry. The lock covers only the
// in-memory read, never a network call.
func (s *SharedState) PickRandom() registry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.PickRandom()
}

// Len reports the current number of registry entries.
func (s *SharedState) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Len()
}

// Reload merges freshly read arts text into the registry. Callers must
// not invoke it concurrently with itself; it may run alongside any
// number of in-flight ResolveOrLookup calls.
func (s *SharedState) Reload(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Reload(text)
}

// ResolveOrLookup returns the resolved link for an entry, consulting
// the cache first. Failed resolutions are never cached. Racing misses
// for the same key may both resolve independently; resolution is
// idempotent so last write wins with an equivalent value.
func (s *SharedState) ResolveOrLookup(ctx context.Context, entry registry.Entry) (resolver.ResolvedLink, error) {
	key := entry.SourceURL.String()
	if link, ok := s.cache.Get(key); ok {
		return link, nil
	}

	res, ok := s.resolvers[entry.Kind]
	if !ok {
		return resolver.ResolvedLink{}, apperrors.NewInternalError(fmt.Sprintf("no resolver for kind %s", entry.Kind), nil)
	}
	link, err := res.Resolve(ctx, entry.SourceURL)
	if err != nil {
		return resolver.ResolvedLink{}, err
	}
	s.cache.Put(key, link)
	return link, nil
}
