package driving

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search opens a live session for query. The session keeps its view
	// up to date as the query or any content source changes, until it
	// is closed or ctx is cancelled.
	Search(ctx context.Context, query string) (SearchSession, error)

	// Find matches query once against the current snapshots.
	Find(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// SearchSession is a continuously updated search.
type SearchSession interface {
	// View returns the most recently published view.
	View() domain.SearchView

	// SetQuery replaces the session query and recomputes.
	SetQuery(query string)

	// Subscribe registers fn to receive every published view.
	// fn runs synchronously with the recomputation and must not call
	// back into the session.
	Subscribe(fn func(domain.SearchView)) (cancel func())

	// Updates returns a channel carrying the newest published view.
	// An unread view is replaced by a newer one. The channel is closed
	// when the session closes.
	Updates() <-chan domain.SearchView

	// Close detaches the session from all sources.
	Close()
}
