package report

import (
	"sort"
	"time"

	"smell-bot/internal/model"
	"smell-bot/internal/smells/bloaters"
)

// Report summarizes one detection run for downstream consumers
type Report struct {
	RunID        string                      `json:"run_id"`
	Source       string                      `json:"source"`
	Thresholds   model.Thresholds            `json:"thresholds"`
	TotalMethods int                         `json:"total_methods"`
	SmellyCount  int                         `json:"smelly_methods"`
	Counts       map[model.CodeSmellName]int `json:"counts"`
	Findings     []Finding                   `json:"findings"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// Finding describes one method carrying at least one smell
type Finding struct {
	Method         string                `json:"method"`
	FilePath       string                `json:"file_path,omitempty"`
	Language       string                `json:"language,omitempty"`
	StartLine      int                   `json:"start_line,omitempty"`
	EndLine        int                   `json:"end_line,omitempty"`
	Smells         []model.CodeSmellName `json:"smells"`
	EffectiveLines int                   `json:"effective_lines"`
	ParameterCount int                   `json:"parameter_count"`
}

// New builds a report from methods that already went through detection.
// Findings are ordered by file path, then start line, then method name.
func New(runID, source string, thresholds model.Thresholds, methods []*model.MethodFact) *Report {
	r := &Report{
		RunID:        runID,
		Source:       source,
		Thresholds:   thresholds,
		TotalMethods: len(methods),
		Counts: map[model.CodeSmellName]int{
			model.LongMethod:          0,
			model.LongParameterMethod: 0,
		},
		Findings:  []Finding{},
		CreatedAt: time.Now(),
	}

	for _, m := range methods {
		if m == nil || len(m.CodeSmells) == 0 {
			continue
		}
		for _, smell := range m.CodeSmells {
			r.Counts[smell]++
		}
		r.Findings = append(r.Findings, Finding{
			Method:         m.Name,
			FilePath:       m.FilePath,
			Language:       m.Language,
			StartLine:      m.StartLine,
			EndLine:        m.EndLine,
			Smells:         append([]model.CodeSmellName(nil), m.CodeSmells...),
			EffectiveLines: bloaters.EffectiveLineCount(m.Body),
			ParameterCount: m.ParameterCount(),
		})
	}
	r.SmellyCount = len(r.Findings)

	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.Method < b.Method
	})

	return r
}
