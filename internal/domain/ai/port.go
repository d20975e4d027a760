package ai

import (
	"context"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// Client interface untuk generator ringkasan naratif case
type Client interface {
	Brief(ctx context.Context, result *cases.AnalysisResult) (string, error)
}
