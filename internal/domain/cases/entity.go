package cases

// ID tipe untuk Case (sama dengan file_id yang dikasih backend waktu upload)
type ID string

// RiskLevel enum
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ScamClassification hasil classifier di backend
type ScamClassification struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords,omitempty"`
}

// RiskAssessment value object
type RiskAssessment struct {
	Score     float64            `json:"score"`
	RiskLevel RiskLevel          `json:"risk_level"`
	Rationale string             `json:"rationale,omitempty"`
	Factors   map[string]float64 `json:"factors,omitempty"`
}

// Entity satu fakta atomik yang diekstrak dari evidence (email, URL, UPI, telepon, rekening)
type Entity struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	RiskLevel string `json:"risk_level,omitempty"`
}

// Aggregate Root: AnalysisResult, hasil analisis satu file evidence.
// OSINTHits and URLQRFindings stay loosely typed: the backend mixes plain
// strings and structured objects and the console treats them as opaque.
type AnalysisResult struct {
	FileID        ID                  `json:"file_id"`
	ScamClass     *ScamClassification `json:"scam_class,omitempty"`
	Risk          *RiskAssessment     `json:"risk,omitempty"`
	Entities      []Entity            `json:"entities,omitempty"`
	OSINTHits     []any               `json:"osint_hits,omitempty"`
	URLQRFindings []any               `json:"url_qr_findings,omitempty"`
	AnalyzedAt    string              `json:"analyzed_at,omitempty"`
}

// UploadReceipt balasan backend setelah upload evidence.
// Checksum bisa kosong, caller tidak boleh assume ada (lihat port Backend).
type UploadReceipt struct {
	FileID   ID     `json:"file_id"`
	Checksum string `json:"sha256,omitempty"`
}

// Snapshot adalah state yang dipersist ke durable storage: pointer case
// aktif + seluruh cache analisis. Field UI (loading, notification) sengaja
// tidak ikut karena session-transient.
type Snapshot struct {
	CurrentCaseID ID                    `json:"current_case_id,omitempty"`
	AnalysisCache map[ID]AnalysisResult `json:"analysis_cache"`
}
