package driving

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// ItemService adds and removes items in the writable collections.
type ItemService interface {
	// Add builds an item of type ct from field values keyed by field
	// name and stores it. Returns the ID of the stored item.
	Add(ctx context.Context, ct domain.ContentType, fields map[string]string) (string, error)

	// Delete removes the item of type ct with id.
	Delete(ctx context.Context, ct domain.ContentType, id string) error

	// Fields returns the field names accepted by Add for ct.
	Fields(ct domain.ContentType) ([]string, error)
}
