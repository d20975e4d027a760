package hub

import "context"

// Backend port (interface ke remote threat hub API)
type Backend interface {
	// SearchCases returns hits for a query; empty query returns all known
	// cases. Shape-mismatch never errors, only transport failures do.
	SearchCases(ctx context.Context, query string) ([]CaseSummary, error)
	// TopEntities lists the most common entities across all cases.
	TopEntities(ctx context.Context) ([]TopEntity, error)
	// EntityProfile returns the cross-case profile for an entity value.
	// cases.ErrNotFound when no case references the entity.
	EntityProfile(ctx context.Context, entity string) (*EntityProfile, error)
	// CaseClusters groups cases linked by shared entities. No clusters is
	// an empty result, not an error.
	CaseClusters(ctx context.Context) (*Clusters, error)
}
