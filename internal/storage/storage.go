package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halebuild/takeoff-engine/internal/config"
	"go.uber.org/zap"
)

// Source defines where takeoff spreadsheets are read from
type Source interface {
	// List returns the names of importable .xlsx files, sorted
	List(ctx context.Context) ([]string, error)
	// Open returns a reader for one file by name
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewSource creates a spreadsheet source based on configuration.
// Local mode scans a directory on disk; azure mode lists a blob container.
func NewSource(cfg *config.StorageConfig, logger *zap.Logger) (Source, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalSource(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewBlobSource(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// importable filters directory listings down to spreadsheet files,
// skipping Excel lock files ("~$...")
func importable(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}

// LocalSource reads spreadsheets from a directory on the local filesystem
type LocalSource struct {
	basePath string
}

// NewLocalSource creates a local source rooted at basePath
func NewLocalSource(basePath string) (*LocalSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", basePath)
	}
	return &LocalSource{basePath: basePath}, nil
}

// List returns the spreadsheet filenames in the source directory
func (s *LocalSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !importable(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Open opens one spreadsheet by name
func (s *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
