package brief

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/ai"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// Service bikin ringkasan naratif dari hasil analisis yang sudah ada di
// cache. Murni read: tidak pernah mutasi cache store dan tidak pernah
// trigger analisis baru.
type Service struct {
	Client ai.Client
	Store  Reader
}

// Reader akses baca ke cache store (cukup Get, tidak perlu seluruh Store)
type Reader interface {
	Get(id domain.ID) *domain.AnalysisResult
}

func NewService(client ai.Client, store Reader) *Service {
	return &Service{Client: client, Store: store}
}

// Brief hasilkan ringkasan untuk case yang sudah dianalisis. Case harus
// sudah ada di cache (lewat LoadCase dulu), kalau belum -> ErrNotFound.
func (s *Service) Brief(ctx context.Context, id domain.ID) (string, error) {
	if s.Client == nil {
		return "", ai.ErrDisabled
	}
	res := s.Store.Get(id)
	if res == nil {
		return "", fmt.Errorf("case %s not cached: %w", id, domain.ErrNotFound)
	}
	return s.Client.Brief(ctx, res)
}
