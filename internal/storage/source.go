// Package storage provides the sources the arts list can be loaded
// from, both at startup and on reload.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// ListSource fetches the raw arts registry text (one absolute URL per
// non-empty line, UTF-8).
type ListSource interface {
	FetchList(ctx context.Context) (string, error)
}

// FileSource reads the arts list from a local path.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchList(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read arts file: %w", err)
	}
	return string(data), nil
}

// AzureBlobSource reads the arts list from a blob container, for
// deployments that host the list remotely instead of baking it into
// the image.
type AzureBlobSource struct {
	client    *azblob.Client
	container string
	blob      string
}

func NewAzureBlobSource(accountName, accountKey, container, blob string) (*AzureBlobSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureBlobSource{client: client, container: container, blob: blob}, nil
}

func (s *AzureBlobSource) FetchList(ctx context.Context) (string, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return "", fmt.Errorf("download arts blob: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read arts blob: %w", err)
	}
	return string(data), nil
}
