package hub

// CaseSummary satu baris hasil pencarian case di threat hub.
// Older backends key the row by file_id instead of case_id, keep both.
type CaseSummary struct {
	CaseID    string  `json:"case_id,omitempty"`
	FileID    string  `json:"file_id,omitempty"`
	Category  string  `json:"category,omitempty"`
	Risk      float64 `json:"risk,omitempty"`
	RiskLevel string  `json:"risk_level,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// TopEntity entitas paling sering muncul lintas case
type TopEntity struct {
	Entity  string  `json:"entity"`
	Count   int     `json:"count"`
	AvgRisk float64 `json:"avg_risk,omitempty"`
}

// EntityCase per-case appearance of an entity inside a profile
type EntityCase struct {
	CaseID    string  `json:"case_id"`
	Category  string  `json:"category,omitempty"`
	RiskScore float64 `json:"risk_score,omitempty"`
	OSINTHits []any   `json:"osint_hits,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// EntityProfile profil intelijen lengkap satu entitas, derived lintas case.
// The server is authoritative here: the console's local cache only covers
// cases this session touched, which is not enough for global linkage.
type EntityProfile struct {
	Entity           string       `json:"entity"`
	FoundIn          int          `json:"found_in"`
	LinkedCategories []string     `json:"linked_categories,omitempty"`
	AvgRisk          float64      `json:"avg_risk"`
	Cases            []EntityCase `json:"cases"`
}

// Clusters kelompok case yang terhubung lewat entitas yang sama. Satu
// cluster = satu slice of case id, minimal dua anggota.
type Clusters struct {
	TotalClusters int        `json:"total_clusters"`
	Clusters      [][]string `json:"clusters"`
}

// Overview snapshot ringkas untuk dashboard
type Overview struct {
	TotalCases  int            `json:"total_cases"`
	TopEntities []TopEntity    `json:"top_entities"`
	Categories  map[string]int `json:"categories"`
	RefreshedAt string         `json:"refreshed_at,omitempty"`
}
