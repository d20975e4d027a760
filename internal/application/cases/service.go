package cases

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/singleflight"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// Service implements use-cases untuk Case: pilih sumber termurah yang masih
// valid untuk sebuah analisis (cache -> salinan server -> analisis fresh)
// dan jaga supaya cache store selalu konsisten setelahnya.
type Service struct {
	Store   *Store
	Backend domain.Backend

	// inflight dedup: dua LoadCase bersamaan untuk id yang sama cuma boleh
	// trigger satu kali kerja ke backend. Tanpa ini, keduanya bisa sampai
	// ke fallback analyze dan nembak dua analisis redundant.
	inflight singleflight.Group
}

func NewService(store *Store, backend domain.Backend) *Service {
	return &Service{Store: store, Backend: backend}
}

// UploadAndAnalyze alur upload page: upload evidence lalu langsung analisis,
// hasilnya masuk cache. file_id dari upload == file_id di hasil analisis.
func (s *Service) UploadAndAnalyze(ctx context.Context, filename string, r io.Reader) (*domain.AnalysisResult, error) {
	receipt, err := s.Backend.Upload(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	res, err := s.Backend.Analyze(ctx, receipt.FileID)
	if err != nil {
		return nil, err
	}
	s.Store.Put(res.FileID, *res)
	s.Store.SetCurrent(res.FileID)
	return res, nil
}

// LoadCase resolves a case analysis from the cheapest valid source:
//  1. cache store hit -> return, tanpa network sama sekali
//  2. server-side cached copy lookup
//  3. absence there (ErrNotFound) -> fallback fresh analysis
//  4. whatever steps 2-3 produced goes into the cache store before return
//
// After a successful return the store is guaranteed to hold the entry, so
// repeat calls are cache hits. The cached-copy lookup's not-found is
// expected control flow; every other error kind propagates unchanged and
// leaves the store untouched.
func (s *Service) LoadCase(ctx context.Context, id domain.ID) (*domain.AnalysisResult, error) {
	if cached := s.Store.Get(id); cached != nil {
		return cached, nil
	}

	v, err, _ := s.inflight.Do(string(id), func() (any, error) {
		res, err := s.Backend.CachedResult(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			// belum ada salinan di server, analisis ulang
			res, err = s.Backend.Analyze(ctx, id)
			if err != nil {
				return nil, err
			}
		}
		// key pakai id yang diminta caller, bukan echo backend, supaya
		// Get(id) setelah LoadCase(id) selalu hit
		s.Store.Put(id, *res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	res := v.(*domain.AnalysisResult)
	s.Store.SetCurrent(id)
	return res, nil
}

// Report ambil PDF case report dari backend (proxy, tanpa cache)
func (s *Service) Report(ctx context.Context, id domain.ID) ([]byte, error) {
	return s.Backend.Report(ctx, id)
}

// Reanalyze paksa analisis fresh walaupun cache hit, hasilnya overwrite
// entry lama (last-write-wins)
func (s *Service) Reanalyze(ctx context.Context, id domain.ID) (*domain.AnalysisResult, error) {
	res, err := s.Backend.Analyze(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Store.Put(id, *res)
	s.Store.SetCurrent(id)
	return res, nil
}
