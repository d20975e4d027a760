package fraud

import "context"

// Backend port (interface ke remote fraud-prediction API)
type Backend interface {
	Predict(ctx context.Context, c ContractInput) (*Prediction, error)
	PredictBatch(ctx context.Context, cs []ContractInput) (*BatchResult, error)
	ModelInfo(ctx context.Context) (*ModelInfo, error)
}
