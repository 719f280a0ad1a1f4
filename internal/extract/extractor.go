package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"smell-bot/internal/model"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Extractor turns source code into method facts
type Extractor interface {
	// Language returns the language this extractor handles
	Language() string

	// Extract parses source and returns one fact per method-like declaration.
	// Returned facts have an empty smell list.
	Extract(ctx context.Context, path string, source []byte) ([]*model.MethodFact, error)
}

// Registry manages extractors for different languages
type Registry struct {
	extractors map[string]Extractor
	extensions map[string]string // file extension -> language
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
		extensions: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with a tree-sitter extractor for
// every supported language. An empty languages list enables all of them.
func NewDefaultRegistry(languages ...string) (*Registry, error) {
	enabled := make(map[string]bool, len(languages))
	for _, l := range languages {
		enabled[strings.ToLower(l)] = true
	}

	builders := []struct {
		language   string
		extensions []string
		build      func() (*TreeSitterExtractor, error)
	}{
		{"java", []string{".java"}, NewJavaExtractor},
		{"go", []string{".go"}, NewGoExtractor},
		{"python", []string{".py"}, NewPythonExtractor},
		{"javascript", []string{".js", ".jsx", ".mjs", ".cjs"}, NewJavaScriptExtractor},
		{"typescript", []string{".ts", ".mts", ".cts"}, NewTypeScriptExtractor},
	}

	registry := NewRegistry()
	for _, b := range builders {
		if len(enabled) > 0 && !enabled[b.language] {
			continue
		}
		extractor, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s extractor: %w", b.language, err)
		}
		registry.Register(extractor, b.extensions)
	}
	return registry, nil
}

// Register adds an extractor and the file extensions it claims
func (r *Registry) Register(extractor Extractor, extensions []string) {
	language := extractor.Language()
	r.extractors[language] = extractor
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = language
	}
}

// Get returns the extractor for a language
func (r *Registry) Get(language string) (Extractor, error) {
	extractor, ok := r.extractors[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	return extractor, nil
}

// ForPath returns the extractor registered for the file's extension
func (r *Registry) ForPath(path string) (Extractor, bool) {
	language, ok := r.extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	extractor, ok := r.extractors[language]
	return extractor, ok
}

func (r *Registry) SupportedLanguages() []string {
	languages := make([]string, 0, len(r.extractors))
	for lang := range r.extractors {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

// Close releases native parser resources held by registered extractors
func (r *Registry) Close() {
	for _, extractor := range r.extractors {
		if c, ok := extractor.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
