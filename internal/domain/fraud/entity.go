package fraud

// ContractInput field kontrak yang dikirim ke fraud model
type ContractInput struct {
	ContractType        string  `json:"contract_type"`
	Amount              float64 `json:"amount"`
	DurationDays        int     `json:"duration_days"`
	CounterpartyName    string  `json:"counterparty_name"`
	CounterpartyCountry string  `json:"counterparty_country"`
	PaymentMethod       string  `json:"payment_method"`
	Industry            string  `json:"industry"`
}

// Signal satu indikator fraud dari model
type Signal struct {
	SignalType  string `json:"signal_type"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// Prediction hasil fraud model untuk satu kontrak
type Prediction struct {
	Prediction       string   `json:"prediction"` // fraud | legitimate
	FraudProbability float64  `json:"fraud_probability"`
	Confidence       float64  `json:"confidence"`
	Signals          []Signal `json:"fraud_signals,omitempty"`
	Timestamp        string   `json:"timestamp,omitempty"`
}

// BatchResult aggregate hasil prediksi banyak kontrak sekaligus
type BatchResult struct {
	Total       int          `json:"total"`
	FraudCount  int          `json:"fraud_count"`
	Predictions []Prediction `json:"predictions"`
}

// ModelInfo metadata model yang lagi aktif di backend
type ModelInfo struct {
	ModelType string   `json:"model_type,omitempty"`
	Version   string   `json:"version,omitempty"`
	Features  []string `json:"features,omitempty"`
	TrainedAt string   `json:"trained_at,omitempty"`
}
