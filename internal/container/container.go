package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anime-shed/random-art-go/internal/config"
	"github.com/anime-shed/random-art-go/internal/registry"
	"github.com/anime-shed/random-art-go/internal/state"
	"github.com/anime-shed/random-art-go/internal/storage"
	"github.com/anime-shed/random-art-go/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	source  storage.ListSource
	state   *state.SharedState
	handler http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	source, err := newListSource(cfg)
	if err != nil {
		return nil, err
	}

	text, err := source.FetchList(context.Background())
	if err != nil {
		return nil, err
	}

	reg, err := registry.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arts list: %w", err)
	}
	if reg.Len() == 0 {
		return nil, fmt.Errorf("arts list has no entries")
	}

	st := state.New(reg, cfg)
	handler := transport.NewHandler(st, cfg)

	return &Container{
		config:  cfg,
		source:  source,
		state:   st,
		handler: handler,
	}, nil
}

func newListSource(cfg *config.Config) (storage.ListSource, error) {
	switch cfg.ArtsSource {
	case config.SourceAzure:
		return storage.NewAzureBlobSource(cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureContainer, cfg.AzureBlobName)
	default:
		return storage.NewFileSource(cfg.ArtsPath), nil
	}
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// State returns the shared request state
func (c *Container) State() *state.SharedState {
	return c.state
}

// Source returns the arts list source used for startup and reloads
func (c *Container) Source() storage.ListSource {
	return c.source
}
