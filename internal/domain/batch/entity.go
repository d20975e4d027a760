package batch

// Handle balasan backend setelah batch upload. Cuma key untuk query
// aggregate nanti, tidak pernah masuk cache store (component-local saja).
type Handle struct {
	BatchID string `json:"batch_id"`
}

// Summary bagian ringkasan dari unified report
type Summary struct {
	TotalCases       int            `json:"total_cases"`
	UniqueEntities   int            `json:"unique_entities"`
	AverageRisk      float64        `json:"average_risk"`
	DominantCategory string         `json:"dominant_category,omitempty"`
	Categories       map[string]int `json:"categories,omitempty"`
	EntitiesSample   []string       `json:"entities_sample,omitempty"`
}

// UnifiedReport aggregate lintas semua case dalam satu batch
type UnifiedReport struct {
	BatchID string           `json:"batch_id"`
	Summary Summary          `json:"summary"`
	Cases   []map[string]any `json:"cases,omitempty"`
}

// File satu entry upload untuk batch submit
type File struct {
	Name string
	Data []byte
}
