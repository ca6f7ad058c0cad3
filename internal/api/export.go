package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"datadeck/internal/config"
	"datadeck/internal/interchange"
	"datadeck/internal/logging"
	"datadeck/internal/records"
)

// ExportRequest describes an export of the stored dataset.
type ExportRequest struct {
	Config *config.Config
	Format interchange.Format
	// OutputPath overrides the default export location when set.
	OutputPath string
	Logger     *slog.Logger
}

// ExportResult reports where the encoded dataset was written.
type ExportResult struct {
	Path    string
	Format  interchange.Format
	MIME    string
	Records int
	Size    int64
}

// ExportDataset loads the stored dataset, encodes it in the requested
// format, and writes the document to the export directory.
func ExportDataset(ctx context.Context, req ExportRequest) (ExportResult, error) {
	cfg := req.Config
	if cfg == nil {
		return ExportResult{}, fmt.Errorf("configuration is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	store, err := records.Open(cfg)
	if err != nil {
		return ExportResult{}, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	ds, err := store.Load(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load dataset: %w", err)
	}

	encoded, err := interchange.Encode(ds, req.Format)
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode dataset: %w", err)
	}

	target := req.OutputPath
	if target == "" {
		if err := os.MkdirAll(cfg.Paths.ExportDir, 0o755); err != nil {
			return ExportResult{}, fmt.Errorf("ensure export directory: %w", err)
		}
		target = filepath.Join(cfg.Paths.ExportDir, "dataset."+req.Format.Extension())
	}

	if err := os.WriteFile(target, encoded, 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("write export: %w", err)
	}

	logger.Info("dataset exported",
		"path", target,
		"format", string(req.Format),
		"records", ds.Len(),
	)

	return ExportResult{
		Path:    target,
		Format:  req.Format,
		MIME:    req.Format.MIME(),
		Records: ds.Len(),
		Size:    int64(len(encoded)),
	}, nil
}
