package batch

import (
	"context"
	"fmt"
	"log"
	"strings"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/batch"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// Service koordinasi submit multi-file dan resolve batch id ke aggregate.
// Hasil batch tidak case-keyed waktu submit, jadi tidak ada yang ditulis ke
// cache store di sini; handle-nya dipegang caller secara transient.
type Service struct {
	Backend domain.Backend
	// Archive optional; kalau nil, PDF cuma diterusin ke caller tanpa
	// disimpan.
	Archive domain.ReportArchive
}

func NewService(backend domain.Backend, archive domain.ReportArchive) *Service {
	return &Service{Backend: backend, Archive: archive}
}

// Submit validasi dulu sebelum nyentuh network: file kosong = user error,
// bukan transport error.
func (s *Service) Submit(ctx context.Context, files []domain.File) (domain.Handle, error) {
	if len(files) == 0 {
		return domain.Handle{}, fmt.Errorf("no files provided: %w", cases.ErrValidation)
	}
	for _, f := range files {
		if strings.TrimSpace(f.Name) == "" {
			return domain.Handle{}, fmt.Errorf("file with empty name: %w", cases.ErrValidation)
		}
	}
	return s.Backend.BatchAnalyze(ctx, files)
}

// UnifiedReport read-only dan idempotent: dua kali panggil dengan id sama
// hasilnya sama selama server tidak berubah.
func (s *Service) UnifiedReport(ctx context.Context, batchID string) (*domain.UnifiedReport, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, fmt.Errorf("batch id is required: %w", cases.ErrValidation)
	}
	return s.Backend.UnifiedReport(ctx, batchID)
}

// UnifiedReportPDF ambil varian binary; kalau archive dikonfigurasi, PDF
// juga disimpan ke object storage. Gagal archive tidak menggagalkan
// download yang sudah berhasil.
func (s *Service) UnifiedReportPDF(ctx context.Context, batchID string) ([]byte, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, fmt.Errorf("batch id is required: %w", cases.ErrValidation)
	}
	data, err := s.Backend.UnifiedReportPDF(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if s.Archive != nil {
		key := fmt.Sprintf("unified/%s.pdf", batchID)
		if _, aerr := s.Archive.Put(ctx, key, data, "application/pdf"); aerr != nil {
			log.Printf("report archive error for batch %s: %v", batchID, aerr)
		}
	}
	return data, nil
}
