package store

import (
	"context"
	"sync"

	"smell-bot/internal/model"
	"smell-bot/internal/report"
)

// MockStore records saves and delegates to optional hooks
type MockStore struct {
	SaveFunc  func(ctx context.Context, r *report.Report, methods []*model.MethodFact) error
	CloseFunc func(ctx context.Context) error

	mu      sync.Mutex
	Reports []*report.Report
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Save(ctx context.Context, r *report.Report, methods []*model.MethodFact) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, r, methods); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Reports = append(m.Reports, r)
	m.mu.Unlock()
	return nil
}

func (m *MockStore) Close(ctx context.Context) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *MockStore) SavedReports() []*report.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*report.Report(nil), m.Reports...)
}
