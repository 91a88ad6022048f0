package driving

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// SourceService reports on the configured content sources.
type SourceService interface {
	// Counts returns the current snapshot size of every collection.
	Counts(ctx context.Context) (map[domain.ContentType]int, error)

	// Refresh asks every refreshable source to re-read its backing
	// location. Failures are collected and returned together.
	Refresh(ctx context.Context) error
}
