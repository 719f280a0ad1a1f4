package store

import (
	"context"
	"fmt"

	"smell-bot/internal/model"
	"smell-bot/internal/report"

	"go.uber.org/zap"
)

// GraphDatabase is the subset of a Cypher database the graph store needs.
// Implemented by KuzuDatabase and Neo4jDatabase.
type GraphDatabase interface {
	VerifyConnectivity(ctx context.Context) error
	ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	ExecuteWrite(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	Close(ctx context.Context) error
}

const createRunQuery = `CREATE (r:ScanRun {
	id: $id,
	source: $source,
	created_at: $created_at,
	total_methods: $total_methods,
	smelly_methods: $smelly_methods,
	long_method_threshold: $long_method_threshold,
	long_parameter_threshold: $long_parameter_threshold
})`

const createMethodQuery = `MATCH (r:ScanRun {id: $run_id})
CREATE (r)-[:HAS_METHOD]->(m:Method {
	id: $id,
	name: $name,
	file_path: $file_path,
	language: $language,
	start_line: $start_line,
	end_line: $end_line,
	parameter_count: $parameter_count,
	effective_lines: $effective_lines,
	smells: $smells
})`

// GraphStore writes runs as ScanRun nodes linked to their Method nodes
type GraphStore struct {
	db     GraphDatabase
	logger *zap.Logger
}

func NewGraphStore(db GraphDatabase, logger *zap.Logger) *GraphStore {
	return &GraphStore{db: db, logger: logger}
}

func (s *GraphStore) Save(ctx context.Context, r *report.Report, methods []*model.MethodFact) error {
	run := newRunRecord(r)
	_, err := s.db.ExecuteWrite(ctx, createRunQuery, map[string]any{
		"id":                       run.ID,
		"source":                   run.Source,
		"created_at":               run.CreatedAt,
		"total_methods":            run.TotalMethods,
		"smelly_methods":           run.SmellyMethods,
		"long_method_threshold":    run.LongMethodThreshold,
		"long_parameter_threshold": run.LongParameterThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to store run %s: %w", run.ID, err)
	}

	for _, m := range newMethodRecords(r.RunID, methods) {
		_, err := s.db.ExecuteWrite(ctx, createMethodQuery, map[string]any{
			"run_id":          m.RunID,
			"id":              m.ID,
			"name":            m.Name,
			"file_path":       m.FilePath,
			"language":        m.Language,
			"start_line":      m.StartLine,
			"end_line":        m.EndLine,
			"parameter_count": m.ParameterCount,
			"effective_lines": m.EffectiveLines,
			"smells":          m.Smells,
		})
		if err != nil {
			return fmt.Errorf("failed to store method %s: %w", m.Name, err)
		}
	}

	s.logger.Info("Stored detection run",
		zap.String("runId", r.RunID),
		zap.Int("methods", r.TotalMethods),
		zap.Int("smelly", r.SmellyCount))
	return nil
}

// SmellyMethods returns the names of methods tagged in a run, by file and line
func (s *GraphStore) SmellyMethods(ctx context.Context, runID string) ([]string, error) {
	records, err := s.db.ExecuteRead(ctx, `MATCH (r:ScanRun {id: $run_id})-[:HAS_METHOD]->(m:Method)
WHERE m.smells <> ''
RETURN m.name AS name
ORDER BY m.file_path, m.start_line`, map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("failed to read smelly methods: %w", err)
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		if name, ok := record["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *GraphStore) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}
