package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"smell-bot/internal/config"
	"smell-bot/internal/extract"
	"smell-bot/internal/model"
	"smell-bot/internal/report"
	"smell-bot/internal/smells"
	"smell-bot/internal/smells/bloaters"
	"smell-bot/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidPath is returned when a scan target is missing or not a directory
var ErrInvalidPath = errors.New("invalid scan path")

// Result is the outcome of one detection run
type Result struct {
	Report  *report.Report      `json:"report"`
	Methods []*model.MethodFact `json:"methods,omitempty"`
}

// Scanner extracts method facts from source, runs the bloater detectors over
// them and persists the outcome
type Scanner struct {
	registry     *extract.Registry
	orchestrator *smells.Orchestrator
	thresholds   model.Thresholds
	store        store.ResultStore
	workers      int
	exclude      map[string]bool
	logger       *zap.Logger
}

func NewScanner(registry *extract.Registry, thresholds model.Thresholds, resultStore store.ResultStore, cfg config.ScannerConfig, logger *zap.Logger) *Scanner {
	if resultStore == nil {
		resultStore = store.NopStore{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	exclude := map[string]bool{".git": true, "vendor": true, "node_modules": true}
	for _, name := range cfg.Exclude {
		exclude[name] = true
	}

	return &Scanner{
		registry:     registry,
		orchestrator: bloaters.NewOrchestrator(logger, thresholds),
		thresholds:   thresholds,
		store:        resultStore,
		workers:      workers,
		exclude:      exclude,
		logger:       logger,
	}
}

func (s *Scanner) Thresholds() model.Thresholds {
	return s.thresholds
}

// ScanDirectory evaluates every supported source file under dir
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, dir)
	}

	files, err := s.collectFiles(dir)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scanning directory", zap.String("dir", dir), zap.Int("files", len(files)))

	// Each worker writes only its own slot, which keeps output in walk order
	perFile := make([][]*model.MethodFact, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			methods, err := s.extractFile(gctx, dir, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("Skipping file", zap.String("path", path), zap.Error(err))
				return nil
			}
			perFile[i] = methods
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var methods []*model.MethodFact
	for _, fileMethods := range perFile {
		methods = append(methods, fileMethods...)
	}
	if methods == nil {
		methods = make([]*model.MethodFact, 0)
	}

	return s.run(ctx, dir, methods)
}

// ScanSource evaluates a single in-memory source file
func (s *Scanner) ScanSource(ctx context.Context, path, language string, source []byte) (*Result, error) {
	extractor, err := s.extractorFor(path, language)
	if err != nil {
		return nil, err
	}

	methods, err := extractor.Extract(ctx, path, source)
	if err != nil {
		return nil, fmt.Errorf("failed to extract methods: %w", err)
	}

	return s.run(ctx, path, methods)
}

// DetectMethods runs detection over facts supplied by the caller. A non-nil
// override replaces the configured thresholds for this call only.
func (s *Scanner) DetectMethods(ctx context.Context, methods []*model.MethodFact, override *model.Thresholds) (*Result, error) {
	if override == nil {
		return s.run(ctx, "request", methods)
	}

	orchestrator := bloaters.NewOrchestrator(s.logger, *override)
	if err := orchestrator.DetectAll(methods); err != nil {
		return nil, err
	}
	return s.persist(ctx, "request", *override, methods)
}

func (s *Scanner) run(ctx context.Context, source string, methods []*model.MethodFact) (*Result, error) {
	if err := s.orchestrator.DetectAll(methods); err != nil {
		return nil, err
	}
	return s.persist(ctx, source, s.thresholds, methods)
}

func (s *Scanner) persist(ctx context.Context, source string, thresholds model.Thresholds, methods []*model.MethodFact) (*Result, error) {
	r := report.New(uuid.NewString(), source, thresholds, methods)

	if err := s.store.Save(ctx, r, methods); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", r.RunID, err)
	}

	s.logger.Info("Detection run complete",
		zap.String("runId", r.RunID),
		zap.String("source", source),
		zap.Int("methods", r.TotalMethods),
		zap.Int("smelly", r.SmellyCount))

	return &Result{Report: r, Methods: methods}, nil
}

func (s *Scanner) extractorFor(path, language string) (extract.Extractor, error) {
	if language != "" {
		return s.registry.Get(language)
	}
	if extractor, ok := s.registry.ForPath(path); ok {
		return extractor, nil
	}
	return nil, fmt.Errorf("%w: cannot infer language of %q", extract.ErrUnsupportedLanguage, path)
}

func (s *Scanner) collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && s.exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if s.exclude[d.Name()] {
			return nil
		}
		if _, ok := s.registry.ForPath(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}
	return files, nil
}

func (s *Scanner) extractFile(ctx context.Context, root, path string) ([]*model.MethodFact, error) {
	extractor, ok := s.registry.ForPath(path)
	if !ok {
		return nil, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return extractor.Extract(ctx, filepath.ToSlash(rel), source)
}
