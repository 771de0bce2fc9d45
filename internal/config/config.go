package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ServiceName = "random-art"
	Version     = "1.2.0"
)

// SourceFile and SourceAzure select where the arts list is loaded from.
const (
	SourceFile  = "file"
	SourceAzure = "azure"
)

type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`

	ArtsSource string `env:"ARTS_SOURCE" envDefault:"file"`
	ArtsPath   string `env:"ARTS_PATH" envDefault:"./utils/arts.txt"`

	AzureAccountName string `env:"AZURE_ACCOUNT_NAME"`
	AzureAccountKey  string `env:"AZURE_ACCOUNT_KEY"`
	AzureContainer   string `env:"AZURE_CONTAINER"`
	AzureBlobName    string `env:"AZURE_BLOB_NAME" envDefault:"arts.txt"`

	// MirrorURL is the base URL of the redirect mirror used for
	// twitter/x posts.
	MirrorURL      string        `env:"MIRROR_URL" envDefault:"https://d.fxtwitter.com"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	SiteTitle  string `env:"SITE_TITLE" envDefault:"random project moon art"`
	EmbedTitle string `env:"EMBED_TITLE" envDefault:"random project moon art"`
	EmbedDesc  string `env:"EMBED_DESC" envDefault:"random project moon art"`
	EmbedColor string `env:"EMBED_COLOR" envDefault:"#ffffff"`
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// UserAgent identifies the service on every outbound request.
func (c *Config) UserAgent() string {
	return ServiceName + "/" + Version
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", cfg.RequestTimeout)
	}
	switch cfg.ArtsSource {
	case SourceFile:
	case SourceAzure:
		if cfg.AzureAccountName == "" || cfg.AzureAccountKey == "" || cfg.AzureContainer == "" {
			return nil, fmt.Errorf("ARTS_SOURCE=azure requires AZURE_ACCOUNT_NAME, AZURE_ACCOUNT_KEY and AZURE_CONTAINER")
		}
	default:
		return nil, fmt.Errorf("invalid ARTS_SOURCE: %q", cfg.ArtsSource)
	}
	if !strings.HasPrefix(cfg.MirrorURL, "http://") && !strings.HasPrefix(cfg.MirrorURL, "https://") {
		return nil, fmt.Errorf("invalid MIRROR_URL: %q", cfg.MirrorURL)
	}
	return cfg, nil
}
