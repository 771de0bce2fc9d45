package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/anime-shed/random-art-go/internal/errors"
	"github.com/anime-shed/random-art-go/internal/logger"
)

// TwitterResolver resolves twitter/x post URLs through a redirect
// mirror. The mirror responds with the direct media URL in a Location
// header, which requires the shared client to have redirect following
// disabled.
type TwitterResolver struct {
	client *http.Client
	mirror string
}

// NewTwitterResolver creates a twitter resolver against the given
// mirror base URL (scheme and host, no trailing slash).
func NewTwitterResolver(client *http.Client, mirror string) *TwitterResolver {
	return &TwitterResolver{client: client, mirror: mirror}
}

func (r *TwitterResolver) Resolve(ctx context.Context, source *url.URL) (ResolvedLink, error) {
	mirrorURL := r.mirror + source.RequestURI()
	logger.WithField("url", mirrorURL).Debug("fetching image location from mirror")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirrorURL, nil)
	if err != nil {
		return ResolvedLink{}, apperrors.NewInternalError("invalid mirror url", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ResolvedLink{}, apperrors.NewNetworkError("mirror request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return ResolvedLink{}, apperrors.NewNetworkError(fmt.Sprintf("mirror returned status %d", resp.StatusCode), nil)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return ResolvedLink{}, apperrors.NewResolutionError(fmt.Sprintf("twitter link %s did not return an image location", mirrorURL), nil)
	}

	// webp is cheaper to serve than the default format
	return ResolvedLink{ImageURL: location + "?format=webp"}, nil
}
