package hub

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bryanwahyu/cyberlens-console/internal/application"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/hub"
)

// Service implements use-cases untuk threat hub. Semua query lintas-case
// dijawab server (otoritatif); console cuma pegang satu snapshot overview
// hangat untuk dashboard.
type Service struct {
	Backend domain.Backend
	Clock   application.Clock

	mu       sync.RWMutex
	overview *domain.Overview
}

func NewService(backend domain.Backend) *Service {
	return &Service{Backend: backend, Clock: application.SystemClock{}}
}

// SearchCases query kosong berarti list semua case
func (s *Service) SearchCases(ctx context.Context, query string) ([]domain.CaseSummary, error) {
	return s.Backend.SearchCases(ctx, strings.TrimSpace(query))
}

func (s *Service) TopEntities(ctx context.Context) ([]domain.TopEntity, error) {
	return s.Backend.TopEntities(ctx)
}

// EntityProfile validasi dulu baru ke server. ErrNotFound dari server
// diterusin apa adanya, UI yang render "no intelligence found".
func (s *Service) EntityProfile(ctx context.Context, entity string) (*domain.EntityProfile, error) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return nil, cases.ErrValidation
	}
	return s.Backend.EntityProfile(ctx, entity)
}

// CaseClusters kelompok case yang terhubung lewat entitas sama, dihitung
// server lintas seluruh korpus case.
func (s *Service) CaseClusters(ctx context.Context) (*domain.Clusters, error) {
	return s.Backend.CaseClusters(ctx)
}

// RefreshOverview tarik data hub terbaru dan simpan sebagai snapshot.
// Dipanggil scheduler secara periodik + sekali waktu startup.
func (s *Service) RefreshOverview(ctx context.Context) error {
	caseList, err := s.Backend.SearchCases(ctx, "")
	if err != nil {
		return err
	}
	top, err := s.Backend.TopEntities(ctx)
	if err != nil {
		return err
	}

	categories := make(map[string]int)
	for _, c := range caseList {
		if c.Category != "" {
			categories[c.Category]++
		}
	}

	ov := &domain.Overview{
		TotalCases:  len(caseList),
		TopEntities: top,
		Categories:  categories,
		RefreshedAt: s.Clock.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.overview = ov
	s.mu.Unlock()
	return nil
}

// Overview balikin snapshot hangat; kalau belum pernah refresh, refresh
// dulu sekali secara sinkron.
func (s *Service) Overview(ctx context.Context) (*domain.Overview, error) {
	s.mu.RLock()
	ov := s.overview
	s.mu.RUnlock()
	if ov != nil {
		return ov, nil
	}
	if err := s.RefreshOverview(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overview, nil
}
