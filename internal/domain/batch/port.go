package batch

import "context"

// Backend port (interface ke remote batch API)
type Backend interface {
	// BatchAnalyze submits the files and returns the generated batch id.
	BatchAnalyze(ctx context.Context, files []File) (Handle, error)
	// UnifiedReport fetches the JSON aggregate for a batch. Read-only and
	// idempotent barring server-side changes.
	UnifiedReport(ctx context.Context, batchID string) (*UnifiedReport, error)
	// UnifiedReportPDF fetches the binary (PDF) variant of the aggregate.
	UnifiedReportPDF(ctx context.Context, batchID string) ([]byte, error)
}

// ReportArchive port (penyimpanan PDF yang sudah diambil, optional)
type ReportArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
