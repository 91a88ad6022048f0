package driven

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// ContentSource is one portal collection as seen by the core.
// Adapters own all synchronisation with their backing store and hand
// the core materialised, in-memory snapshots.
type ContentSource[T any] interface {
	// Snapshot returns the items currently known to the source, in
	// source order. The returned slice must not be modified by callers
	// and must not be modified by the source after it is returned.
	Snapshot() []T

	// OnChange registers fn to be called after the source's items are
	// added, removed or updated. Delivery is not incremental: fn is only
	// told that a new snapshot is available. The returned function
	// removes the registration and is safe to call more than once.
	OnChange(fn func()) (cancel func())
}

// Type aliases for the six portal collections.
type (
	NewsSource     = ContentSource[domain.News]
	MaterialSource = ContentSource[domain.Material]
	EbookSource    = ContentSource[domain.Ebook]
	EventSource    = ContentSource[domain.Event]
	SupplierSource = ContentSource[domain.Supplier]
	FoundrySource  = ContentSource[domain.Foundry]
)

// Refresher is implemented by sources that pull from an external location
// and can be asked to re-read it, such as the news feed.
type Refresher interface {
	// Name identifies the source in logs.
	Name() string

	// Refresh re-reads the backing location and publishes a new
	// snapshot if it changed. On failure the previous snapshot is kept.
	Refresh(ctx context.Context) error
}

// ContentWriter stores items of one collection. Writes are published to
// the collection's OnChange listeners.
type ContentWriter[T any] interface {
	// Save inserts or updates item and returns it as stored. An item
	// without an ID is assigned one.
	Save(ctx context.Context, item T) (T, error)

	// Delete removes the item with id. Returns domain.ErrNotFound when
	// no item matches.
	Delete(ctx context.Context, id string) error
}
