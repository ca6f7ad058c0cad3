package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"datadeck/internal/config"
	"datadeck/internal/dataset"
	"datadeck/internal/logging"
	"datadeck/internal/records"
	"datadeck/internal/value"
)

// AddRecordRequest describes a single record append.
type AddRecordRequest struct {
	Config    *config.Config
	AgentType string
	// Output is the raw agent output. JSON text is parsed into the
	// value model; anything else is stored as a plain string.
	Output string
	Logger *slog.Logger
}

// AddRecordResult reports the stored record.
type AddRecordResult struct {
	ID        int64
	AgentType string
	Summary   string
}

// AddRecord parses the output text and appends a record to the store.
func AddRecord(ctx context.Context, req AddRecordRequest) (AddRecordResult, error) {
	cfg := req.Config
	if cfg == nil {
		return AddRecordResult{}, fmt.Errorf("configuration is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	agentType := strings.TrimSpace(req.AgentType)
	if agentType == "" {
		return AddRecordResult{}, fmt.Errorf("agent type is required")
	}

	output, err := dataset.ParseValue([]byte(req.Output))
	if err != nil {
		output = value.String(req.Output)
	}

	store, err := records.Open(cfg)
	if err != nil {
		return AddRecordResult{}, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	rec := dataset.Record{AgentType: agentType, Output: output}
	id, err := store.Append(ctx, rec, "")
	if err != nil {
		return AddRecordResult{}, fmt.Errorf("append record: %w", err)
	}

	logger.Info("record added", "id", id, "agent_type", agentType)

	return AddRecordResult{
		ID:        id,
		AgentType: agentType,
		Summary:   recordSummary(rec),
	}, nil
}

// ClearRecords removes every stored record and returns the count removed.
func ClearRecords(ctx context.Context, cfg *config.Config) (int64, error) {
	if cfg == nil {
		return 0, fmt.Errorf("configuration is required")
	}
	store, err := records.Open(cfg)
	if err != nil {
		return 0, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()
	return store.Clear(ctx)
}
