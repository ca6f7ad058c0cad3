package api

import (
	"context"
	"fmt"
	"time"

	"datadeck/internal/config"
	"datadeck/internal/dataset"
	"datadeck/internal/records"
	"datadeck/internal/summary"
)

// RecordView is a table-friendly projection of a stored record.
type RecordView struct {
	Index     int
	AgentType string
	Summary   string
	Created   time.Time
}

// RecordDetail carries the full output of a single record.
type RecordDetail struct {
	AgentType  string
	Summary    string
	OutputJSON string
}

// ListRecords returns views of the stored dataset in insertion order.
// An agentType filter narrows the listing when non-empty.
func ListRecords(ctx context.Context, cfg *config.Config, agentType string) ([]RecordView, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	entries, err := store.Entries(ctx, agentType)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	views := make([]RecordView, 0, len(entries))
	for i, entry := range entries {
		views = append(views, RecordView{
			Index:     i + 1,
			AgentType: entry.Record.AgentType,
			Summary:   recordSummary(entry.Record),
			Created:   entry.CreatedAt,
		})
	}
	return views, nil
}

// ShowRecord returns the full detail of the record at the 1-based
// index, or the most recent record when index is 0.
func ShowRecord(ctx context.Context, cfg *config.Config, index int) (RecordDetail, error) {
	if cfg == nil {
		return RecordDetail{}, fmt.Errorf("configuration is required")
	}
	store, err := records.Open(cfg)
	if err != nil {
		return RecordDetail{}, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	var rec *dataset.Record
	if index == 0 {
		rec, err = store.Latest(ctx)
		if err != nil {
			return RecordDetail{}, fmt.Errorf("latest record: %w", err)
		}
		if rec == nil {
			return RecordDetail{}, fmt.Errorf("no records stored")
		}
	} else {
		ds, err := store.Load(ctx)
		if err != nil {
			return RecordDetail{}, fmt.Errorf("load dataset: %w", err)
		}
		if index < 1 || index > ds.Len() {
			return RecordDetail{}, fmt.Errorf("record %d out of range (only %d records exist)", index, ds.Len())
		}
		rec = &ds.Results[index-1]
	}

	return RecordDetail{
		AgentType:  rec.AgentType,
		Summary:    recordSummary(*rec),
		OutputJSON: string(dataset.ValueJSONIndent(rec.Output, "", "  ")),
	}, nil
}

func recordSummary(rec dataset.Record) string {
	return summary.Primary(rec.Output, rec.AgentType)
}
