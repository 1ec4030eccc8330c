// Package ingestion turns uploaded CSV and XLSX files into pricing batches.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guttosm/bsgreeks/internal/domain/models"
	"github.com/guttosm/bsgreeks/internal/logger"
)

// checkEvery is how many records are read between context checks.
const checkEvery = 4096

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format: use .csv or .xlsx")
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("file is empty")
)

// Format is a supported input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf infers the format from a file name's extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(filename))
	}
}

// loaders is an indirection over the format readers; tests can override it.
var loaders = map[Format]func(context.Context, io.Reader) (models.Batch, error){
	FormatCSV:  LoadCSV,
	FormatXLSX: LoadXLSX,
}

// Load reads a batch from src, picking the reader by filename extension.
func Load(ctx context.Context, filename string, src io.Reader) (models.Batch, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return models.Batch{}, err
	}

	start := time.Now()
	base := filepath.Base(filename)
	batch, err := loaders[format](ctx, src)
	if err != nil {
		logger.L().Error().Str("file", base).Str("format", string(format)).Dur("elapsed", time.Since(start)).Err(err).Msg("load failed")
		return models.Batch{}, fmt.Errorf("file %s: %w", base, err)
	}

	logger.L().Info().Str("file", base).Str("format", string(format)).Int("rows", len(batch.Rows)).
		Dur("elapsed", time.Since(start)).Msg("file loaded")
	return batch, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(ctx context.Context, path string) (models.Batch, error) {
	if _, err := FormatOf(path); err != nil {
		return models.Batch{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return models.Batch{}, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(ctx, path, f)
}
