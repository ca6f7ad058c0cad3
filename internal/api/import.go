package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"datadeck/internal/config"
	"datadeck/internal/dataset"
	"datadeck/internal/interchange"
	"datadeck/internal/logging"
	"datadeck/internal/records"
)

// ImportRequest describes a dataset import that replaces the stored
// contents wholesale.
type ImportRequest struct {
	Config *config.Config
	Path   string
	// Format selects the decoder. When empty it is inferred from the
	// file extension.
	Format interchange.Format
	Logger *slog.Logger
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Records    int
	Format     interchange.Format
	BatchID    string
	BackupPath string
}

// ImportDataset decodes an interchange document and replaces the stored
// dataset. Concurrent imports are serialized through a file lock, and
// the previous contents are backed up first when configured.
func ImportDataset(ctx context.Context, req ImportRequest) (ImportResult, error) {
	cfg := req.Config
	if cfg == nil {
		return ImportResult{}, fmt.Errorf("configuration is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	format := req.Format
	if format == "" {
		inferred, err := interchange.FormatForExtension(filepath.Ext(req.Path))
		if err != nil {
			return ImportResult{}, fmt.Errorf("infer format: %w", err)
		}
		format = inferred
	}
	if !format.DecodeSupported() {
		return ImportResult{}, fmt.Errorf("%w: cannot import %s documents", interchange.ErrUnsupportedFormat, format)
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import file: %w", err)
	}

	ds, err := interchange.Decode(data, format)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decode dataset: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return ImportResult{}, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.ImportLockPath())
	lockCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Imports.LockTimeoutSeconds)*time.Second)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return ImportResult{}, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return ImportResult{}, fmt.Errorf("another import is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	store, err := records.Open(cfg)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	result := ImportResult{
		Records: ds.Len(),
		Format:  format,
		BatchID: uuid.NewString(),
	}

	if cfg.Imports.BackupBeforeReplace {
		backupPath, err := backupStored(ctx, cfg, store)
		if err != nil {
			return ImportResult{}, err
		}
		result.BackupPath = backupPath
	}

	if err := store.ReplaceAll(ctx, ds, result.BatchID); err != nil {
		return ImportResult{}, fmt.Errorf("replace dataset: %w", err)
	}

	logger.Info("dataset imported",
		"path", req.Path,
		"format", string(format),
		"records", ds.Len(),
		"batch_id", result.BatchID,
	)

	return result, nil
}

// backupStored writes the current dataset as native JSON into the
// backup directory. An empty store produces no backup file.
func backupStored(ctx context.Context, cfg *config.Config, store *records.Store) (string, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count stored records: %w", err)
	}
	if count == 0 {
		return "", nil
	}

	current, err := store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load stored dataset: %w", err)
	}
	encoded := dataset.EncodeNative(current)

	backupPath := filepath.Join(cfg.Paths.BackupDir, "dataset-"+uuid.NewString()+".json")
	if err := os.WriteFile(backupPath, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}
