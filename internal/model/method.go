package model

// CodeSmellName identifies a detected smell on a method
type CodeSmellName string

const (
	LongMethod          CodeSmellName = "LONG_METHOD"
	LongParameterMethod CodeSmellName = "LONG_PARAMETER_METHOD"
)

// ParameterFact describes one declared parameter
type ParameterFact struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// MethodFact contains the flat, pre-extracted facts about a method.
// Detectors read the structural fields and only ever append to CodeSmells.
type MethodFact struct {
	// Identity
	Name       string          `json:"name"`
	Keywords   []string        `json:"keywords,omitempty"`
	ReturnType string          `json:"return_type,omitempty"`
	Parameters []ParameterFact `json:"parameters,omitempty"`
	Exceptions []string        `json:"exceptions,omitempty"`

	// Source code
	Body string `json:"body,omitempty"`

	// Location (filled by extractors, informational)
	FilePath  string `json:"file_path,omitempty"`
	Language  string `json:"language,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`

	// Populated by detectors, in detector execution order
	CodeSmells []CodeSmellName `json:"code_smells"`
}

// NewMethodFact creates a method fact with an empty smell list
func NewMethodFact(name string) *MethodFact {
	return &MethodFact{
		Name:       name,
		Keywords:   make([]string, 0),
		Parameters: make([]ParameterFact, 0),
		Exceptions: make([]string, 0),
		CodeSmells: make([]CodeSmellName, 0),
	}
}

// ParameterCount returns the number of declared parameters
func (m *MethodFact) ParameterCount() int {
	return len(m.Parameters)
}

// AddCodeSmell appends a smell tag
func (m *MethodFact) AddCodeSmell(smell CodeSmellName) {
	m.CodeSmells = append(m.CodeSmells, smell)
}

// HasCodeSmell reports whether the given smell was recorded
func (m *MethodFact) HasCodeSmell(smell CodeSmellName) bool {
	for _, s := range m.CodeSmells {
		if s == smell {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the fact
func (m *MethodFact) Clone() *MethodFact {
	clone := *m
	clone.Keywords = cloneSlice(m.Keywords)
	clone.Parameters = cloneSlice(m.Parameters)
	clone.Exceptions = cloneSlice(m.Exceptions)
	clone.CodeSmells = cloneSlice(m.CodeSmells)
	return &clone
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Thresholds holds the resolved limits for the bloater detectors
type Thresholds struct {
	LongMethod    int `json:"long_method"`
	LongParameter int `json:"long_parameter"`
}
