package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smell-bot/internal/config"
	"smell-bot/internal/model"
	"smell-bot/internal/report"
	"smell-bot/internal/smells/bloaters"

	"go.uber.org/zap"
)

// ResultStore persists detection runs
type ResultStore interface {
	Save(ctx context.Context, r *report.Report, methods []*model.MethodFact) error
	Close(ctx context.Context) error
}

// New creates the store selected by storage.kind
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ResultStore, error) {
	switch cfg.Kind {
	case "", "none":
		return NopStore{}, nil
	case "kuzu":
		db, err := NewKuzuDatabase(cfg.Kuzu.Path, logger)
		if err != nil {
			return nil, err
		}
		return NewGraphStore(db, logger), nil
	case "neo4j":
		db, err := NewNeo4jDatabase(ctx, cfg.Neo4j, logger)
		if err != nil {
			return nil, err
		}
		return NewGraphStore(db, logger), nil
	case "surreal":
		s, err := NewSurrealStore(cfg.Surreal, logger)
		if err != nil {
			return nil, err
		}
		if err := s.Initialize(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}

// NopStore discards everything
type NopStore struct{}

func (NopStore) Save(ctx context.Context, r *report.Report, methods []*model.MethodFact) error {
	return nil
}

func (NopStore) Close(ctx context.Context) error {
	return nil
}

// RunRecord is the stored form of a report header
type RunRecord struct {
	ID                     string `json:"run_id"`
	Source                 string `json:"source"`
	CreatedAt              string `json:"created_at"`
	TotalMethods           int64  `json:"total_methods"`
	SmellyMethods          int64  `json:"smelly_methods"`
	LongMethodThreshold    int64  `json:"long_method_threshold"`
	LongParameterThreshold int64  `json:"long_parameter_threshold"`
}

// MethodRecord is the stored form of one evaluated method
type MethodRecord struct {
	ID             string `json:"method_id"`
	RunID          string `json:"run_id"`
	Name           string `json:"name"`
	FilePath       string `json:"file_path"`
	Language       string `json:"language"`
	StartLine      int64  `json:"start_line"`
	EndLine        int64  `json:"end_line"`
	ParameterCount int64  `json:"parameter_count"`
	EffectiveLines int64  `json:"effective_lines"`
	Smells         string `json:"smells"`
}

func newRunRecord(r *report.Report) RunRecord {
	return RunRecord{
		ID:                     r.RunID,
		Source:                 r.Source,
		CreatedAt:              r.CreatedAt.UTC().Format(time.RFC3339),
		TotalMethods:           int64(r.TotalMethods),
		SmellyMethods:          int64(r.SmellyCount),
		LongMethodThreshold:    int64(r.Thresholds.LongMethod),
		LongParameterThreshold: int64(r.Thresholds.LongParameter),
	}
}

// newMethodRecords skips nil entries; ids are stable within a run
func newMethodRecords(runID string, methods []*model.MethodFact) []MethodRecord {
	records := make([]MethodRecord, 0, len(methods))
	for i, m := range methods {
		if m == nil {
			continue
		}
		smells := make([]string, len(m.CodeSmells))
		for j, s := range m.CodeSmells {
			smells[j] = string(s)
		}
		records = append(records, MethodRecord{
			ID:             fmt.Sprintf("%s:%d", runID, i),
			RunID:          runID,
			Name:           m.Name,
			FilePath:       m.FilePath,
			Language:       m.Language,
			StartLine:      int64(m.StartLine),
			EndLine:        int64(m.EndLine),
			ParameterCount: int64(m.ParameterCount()),
			EffectiveLines: int64(bloaters.EffectiveLineCount(m.Body)),
			Smells:         strings.Join(smells, ","),
		})
	}
	return records
}
