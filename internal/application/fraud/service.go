package fraud

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/fraud"
)

// Service passthrough ke fraud model di backend, plus validasi field
// kontrak di sisi client supaya request jelek tidak pernah sampai network.
type Service struct {
	Backend domain.Backend
}

func NewService(backend domain.Backend) *Service {
	return &Service{Backend: backend}
}

func validateContract(c domain.ContractInput) error {
	switch {
	case strings.TrimSpace(c.ContractType) == "":
		return fmt.Errorf("contract_type is required: %w", cases.ErrValidation)
	case c.Amount <= 0:
		return fmt.Errorf("amount must be positive: %w", cases.ErrValidation)
	case c.DurationDays <= 0:
		return fmt.Errorf("duration_days must be positive: %w", cases.ErrValidation)
	case strings.TrimSpace(c.CounterpartyName) == "":
		return fmt.Errorf("counterparty_name is required: %w", cases.ErrValidation)
	}
	return nil
}

func (s *Service) Predict(ctx context.Context, c domain.ContractInput) (*domain.Prediction, error) {
	if err := validateContract(c); err != nil {
		return nil, err
	}
	return s.Backend.Predict(ctx, c)
}

func (s *Service) PredictBatch(ctx context.Context, cs []domain.ContractInput) (*domain.BatchResult, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("no contracts provided: %w", cases.ErrValidation)
	}
	for i, c := range cs {
		if err := validateContract(c); err != nil {
			return nil, fmt.Errorf("contract %d: %w", i, err)
		}
	}
	return s.Backend.PredictBatch(ctx, cs)
}

func (s *Service) ModelInfo(ctx context.Context) (*domain.ModelInfo, error) {
	return s.Backend.ModelInfo(ctx)
}
