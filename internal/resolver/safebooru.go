package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	apperrors "github.com/anime-shed/random-art-go/internal/errors"
	"github.com/anime-shed/random-art-go/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// safebooruAttempts is the total number of API fetch attempts
// (1 initial + 5 retries), with no delay between them.
const safebooruAttempts = 6

// SafebooruResolver resolves safebooru post URLs via the site's JSON
// API. When a post's recorded source turns out to be a twitter/x link,
// it defers to the twitter resolver and reports the corrected source.
type SafebooruResolver struct {
	client  *http.Client
	twitter *TwitterResolver
	apiBase string
}

func NewSafebooruResolver(client *http.Client, twitter *TwitterResolver) *SafebooruResolver {
	return &SafebooruResolver{
		client:  client,
		twitter: twitter,
		apiBase: "https://safebooru.org",
	}
}

func (r *SafebooruResolver) Resolve(ctx context.Context, source *url.URL) (ResolvedLink, error) {
	id := source.Query().Get("id")
	if id == "" {
		return ResolvedLink{}, apperrors.NewResolutionError("no id in safebooru url", nil)
	}

	post, err := r.fetchPost(ctx, id)
	if err != nil {
		return ResolvedLink{}, err
	}

	sourceURL := postSource(post)
	if sourceURL != nil && sourceURL.Hostname() == "i.pximg.net" {
		sourceURL = rewritePixivSource(sourceURL)
	}

	if sourceURL != nil && isTwitterHost(sourceURL.Hostname()) {
		logger.WithField("source", sourceURL.String()).Info("post source is twitter, fetching image from there instead")
		if link, err := r.twitter.Resolve(ctx, sourceURL); err == nil {
			link.ReplacementSource = sourceURL
			return link, nil
		}
		// twitter resolution failed, fall back to the sample url
	}

	rawSample, ok := post["sample_url"].(string)
	if !ok || rawSample == "" {
		return ResolvedLink{}, apperrors.NewResolutionError("safebooru did not return a sample url", nil)
	}
	sampleURL, err := url.Parse(rawSample)
	if err != nil || sampleURL.Host == "" {
		return ResolvedLink{}, apperrors.NewResolutionError(fmt.Sprintf("safebooru sample url %q was not valid", rawSample), err)
	}

	// Two candidate forms of the sample URL, differing only by an extra
	// path separator; upstream URLs are inconsistent about which one
	// actually serves the image.
	plain := fmt.Sprintf("%s://%s%s", sampleURL.Scheme, sampleURL.Host, sampleURL.Path)
	slashed := fmt.Sprintf("%s://%s/%s", sampleURL.Scheme, sampleURL.Host, sampleURL.Path)

	plainOK := r.probe(ctx, plain)
	slashedOK := r.probe(ctx, slashed)

	imageURL := rawSample
	if plainOK {
		imageURL = plain
	} else if slashedOK {
		imageURL = slashed
	}

	return ResolvedLink{ImageURL: imageURL, ReplacementSource: sourceURL}, nil
}

// fetchPost queries the safebooru JSON API for a post id and returns the
// first post object. Any failure (transport, status, decode) is retried
// up to safebooruAttempts total attempts; the last error is forwarded.
func (r *SafebooruResolver) fetchPost(ctx context.Context, id string) (map[string]interface{}, error) {
	apiURL := fmt.Sprintf("%s/index.php?page=dapi&s=post&q=index&json=1&id=%s", r.apiBase, url.QueryEscape(id))

	var lastErr error
	for attempt := 1; attempt <= safebooruAttempts; attempt++ {
		if attempt > 1 {
			logger.WithFields(logrus.Fields{
				"url":     apiURL,
				"attempt": attempt,
			}).Warn("retrying safebooru fetch")
		}
		posts, err := r.fetchOnce(ctx, apiURL)
		if err == nil {
			if len(posts) == 0 {
				return nil, apperrors.NewResolutionError(fmt.Sprintf("safebooru returned no posts for id %s", id), nil)
			}
			return posts[0], nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (r *SafebooruResolver) fetchOnce(ctx context.Context, apiURL string) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid safebooru api url", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("safebooru request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperrors.NewNetworkError(fmt.Sprintf("safebooru returned status %d", resp.StatusCode), nil)
	}

	var posts []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, apperrors.NewResolutionError("safebooru response was not valid json", err)
	}
	return posts, nil
}

// probe reports whether a candidate image URL answers with a success
// status. Probe failures are not retried.
func (r *SafebooruResolver) probe(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}

// postSource parses the post's recorded source field. A missing,
// non-string or unparseable source is treated as absent, not fatal.
func postSource(post map[string]interface{}) *url.URL {
	raw, ok := post["source"].(string)
	if !ok || raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

// rewritePixivSource turns a pixiv CDN image URL into the artwork page
// it belongs to. The CDN filename starts with the post id.
func rewritePixivSource(src *url.URL) *url.URL {
	segments := strings.Split(src.Path, "/")
	last := segments[len(segments)-1]
	postID := strings.SplitN(last, "_", 2)[0]
	return &url.URL{
		Scheme: "https",
		Host:   "pixiv.net",
		Path:   "/en/artworks/" + postID,
	}
}

func isTwitterHost(host string) bool {
	return strings.Contains(host, "twitter.com") || strings.Contains(host, "x.com")
}
