package store

import (
	"context"
	"fmt"

	"smell-bot/internal/config"
	"smell-bot/internal/model"
	"smell-bot/internal/report"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
	"go.uber.org/zap"
)

// SurrealStore keeps runs and methods as SurrealDB documents
type SurrealStore struct {
	db     *surrealdb.DB
	config config.SurrealConfig
	logger *zap.Logger
}

func NewSurrealStore(cfg config.SurrealConfig, logger *zap.Logger) (*SurrealStore, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SurrealStore{
		db:     db,
		config: cfg,
		logger: logger,
	}, nil
}

// Initialize selects the namespace and signs in
func (s *SurrealStore) Initialize(ctx context.Context) error {
	if err := s.db.Use(s.config.Namespace, s.config.Database); err != nil {
		return fmt.Errorf("failed to set namespace/database: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: s.config.Username,
		Password: s.config.Password,
	}
	token, err := s.db.SignIn(authData)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}

	if err := s.db.Authenticate(token); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	return nil
}

func (s *SurrealStore) Save(ctx context.Context, r *report.Report, methods []*model.MethodFact) error {
	if _, err := surrealdb.Create[RunRecord](s.db, models.Table("scan_runs"), newRunRecord(r)); err != nil {
		return fmt.Errorf("error storing run %s: %w", r.RunID, err)
	}

	for _, m := range newMethodRecords(r.RunID, methods) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := surrealdb.Create[MethodRecord](s.db, models.Table("methods"), m); err != nil {
			return fmt.Errorf("error storing method %s: %w", m.Name, err)
		}
	}

	s.logger.Info("Stored detection run in SurrealDB",
		zap.String("runId", r.RunID),
		zap.Int("methods", r.TotalMethods))
	return nil
}

func (s *SurrealStore) Close(ctx context.Context) error {
	return s.db.Close()
}
