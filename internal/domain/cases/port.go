package cases

import "context"

import "io"

// Backend port (interface ke remote analysis API untuk operasi per-case)
type Backend interface {
	// Upload pushes one evidence file and returns the backend-assigned id.
	Upload(ctx context.Context, filename string, r io.Reader) (UploadReceipt, error)
	// Analyze triggers a fresh analysis for an already uploaded file.
	// ErrNotFound when the id is unknown server-side.
	Analyze(ctx context.Context, id ID) (*AnalysisResult, error)
	// CachedResult fetches the server-side cached copy of an analysis.
	// ErrNotFound when the server has no cached copy.
	CachedResult(ctx context.Context, id ID) (*AnalysisResult, error)
	// Report returns the rendered PDF for a case as an opaque blob.
	Report(ctx context.Context, id ID) ([]byte, error)
}

// StateStore port (interface untuk persistence snapshot session).
// Satu key durable, isinya seluruh Snapshot terserialisasi.
type StateStore interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}
