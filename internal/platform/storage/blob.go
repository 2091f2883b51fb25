package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"cardbridge/internal/platform/config"
)

// BlobSource downloads the card reference dataset from Azure Blob Storage.
// It implements directory.Source; the whole blob is materialized per fetch,
// matching the one-shot lookup the pipeline performs.
type BlobSource struct {
	client    *azblob.Client
	container string
	blob      string
}

func NewBlobSource(cfg config.DirectoryConfig) (*BlobSource, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: create blob client: %w", err)
	}

	return &BlobSource{
		client:    client,
		container: cfg.Container,
		blob:      cfg.Blob,
	}, nil
}

func (s *BlobSource) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: download %s/%s: %w", s.container, s.blob, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s/%s: %w", s.container, s.blob, err)
	}

	return data, nil
}

// Check probes the dataset blob with a one-byte ranged read. Used by the
// health endpoint.
func (s *BlobSource) Check(ctx context.Context) error {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{Offset: 0, Count: 1},
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
