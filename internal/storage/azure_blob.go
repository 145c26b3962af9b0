package storage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

// BlobSource reads spreadsheets from an Azure Blob Storage container
type BlobSource struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewBlobSource creates a blob source for the given container
func NewBlobSource(connectionString, containerName string, logger *zap.Logger) (*BlobSource, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	logger.Info("Azure Blob Storage source initialized",
		zap.String("container", containerName),
	)

	return &BlobSource{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// List returns the spreadsheet blob names in the container
func (s *BlobSource) List(ctx context.Context) ([]string, error) {
	var names []string

	pager := s.client.NewListBlobsFlatPager(s.containerName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil || !importable(*item.Name) {
				continue
			}
			names = append(names, *item.Name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Open downloads one blob by name
func (s *BlobSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.containerName, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}
	return resp.Body, nil
}
