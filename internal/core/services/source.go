package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService reports on and refreshes the content sources.
type SourceService struct {
	sources    Sources
	refreshers []driven.Refresher
}

// NewSourceService creates a source service. refreshers lists the sources
// that can re-read an external location; it may be empty.
func NewSourceService(sources Sources, refreshers ...driven.Refresher) *SourceService {
	return &SourceService{
		sources:    sources,
		refreshers: refreshers,
	}
}

// Counts returns the current snapshot size of every collection.
func (s *SourceService) Counts(ctx context.Context) (map[domain.ContentType]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sources.Snapshots().Counts(), nil
}

// Refresh re-reads every refreshable source. A failing source keeps its
// previous snapshot; all failures are returned joined.
func (s *SourceService) Refresh(ctx context.Context) error {
	var errs []error
	for _, r := range s.refreshers {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Refreshing source %s", r.Name())
		if err := r.Refresh(ctx); err != nil {
			logger.Warn("Refresh %s failed: %v", r.Name(), err)
			errs = append(errs, fmt.Errorf("refresh %s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Refreshers returns the number of refreshable sources.
func (s *SourceService) Refreshers() int {
	return len(s.refreshers)
}
