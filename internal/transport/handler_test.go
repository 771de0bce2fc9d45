package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anime-shed/random-art-go/internal/config"
	"github.com/anime-shed/random-art-go/internal/registry"
	"github.com/anime-shed/random-art-go/internal/state"
)

func testConfig(mirrorURL string) *config.Config {
	return &config.Config{
		MirrorURL:      mirrorURL,
		RequestTimeout: 5 * time.Second,
		SiteTitle:      "test gallery",
		EmbedTitle:     "test gallery",
		EmbedDesc:      "a test",
		EmbedColor:     "#ffffff",
	}
}

func TestShowArtRendersResolvedImage(t *testing.T) {
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://video.example/img.jpg")
		w.WriteHeader(http.StatusFound)
	}))
	defer mirror.Close()

	reg, err := registry.Parse("https://twitter.com/artist/status/1")
	if err != nil {
		t.Fatalf("failed to parse registry: %v", err)
	}
	cfg := testConfig(mirror.URL)
	handler := NewHandler(state.New(reg, cfg), cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "https://video.example/img.jpg?format=webp") {
		t.Errorf("expected body to contain resolved image url, got:\n%s", body)
	}
	if !strings.Contains(body, "source: https://twitter.com/artist/status/1") {
		t.Errorf("expected body to contain the source link, got:\n%s", body)
	}
	if !strings.Contains(body, "<title>test gallery</title>") {
		t.Errorf("expected body to contain the site title, got:\n%s", body)
	}
}

func TestShowArtRendersErrorPage(t *testing.T) {
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Location header: resolution must fail.
		w.WriteHeader(http.StatusOK)
	}))
	defer mirror.Close()

	reg, err := registry.Parse("https://twitter.com/artist/status/1")
	if err != nil {
		t.Fatalf("failed to parse registry: %v", err)
	}
	cfg := testConfig(mirror.URL)
	handler := NewHandler(state.New(reg, cfg), cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong:") {
		t.Errorf("expected error page, got:\n%s", rec.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	reg, err := registry.Parse("https://twitter.com/artist/status/1\nhttps://safebooru.org/index.php?id=2")
	if err != nil {
		t.Fatalf("failed to parse registry: %v", err)
	}
	cfg := testConfig("https://mirror.invalid")
	handler := NewHandler(state.New(reg, cfg), cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Arts    int    `json:"arts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if payload.Status != "available" {
		t.Errorf("expected status 'available', got %q", payload.Status)
	}
	if payload.Arts != 2 {
		t.Errorf("expected 2 arts, got %d", payload.Arts)
	}
}
