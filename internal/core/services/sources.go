package services

import (
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Sources holds the six content adapters. Any of them may be nil; a nil
// source is searched as an empty collection.
type Sources struct {
	News      driven.NewsSource
	Materials driven.MaterialSource
	Ebooks    driven.EbookSource
	Events    driven.EventSource
	Suppliers driven.SupplierSource
	Foundries driven.FoundrySource
}

// Snapshots reads the current snapshot of every configured source.
func (s Sources) Snapshots() domain.Snapshots {
	return domain.Snapshots{
		News:      snapshotOf(domain.ContentNews, s.News),
		Materials: snapshotOf(domain.ContentMaterial, s.Materials),
		Ebooks:    snapshotOf(domain.ContentEbook, s.Ebooks),
		Events:    snapshotOf(domain.ContentEvent, s.Events),
		Suppliers: snapshotOf(domain.ContentSupplier, s.Suppliers),
		Foundries: snapshotOf(domain.ContentFoundry, s.Foundries),
	}
}

// subscribe registers fn with every configured source and returns the
// cancel functions.
func (s Sources) subscribe(fn func()) []func() {
	cancels := make([]func(), 0, 6)
	cancels = appendCancel(cancels, s.News, fn)
	cancels = appendCancel(cancels, s.Materials, fn)
	cancels = appendCancel(cancels, s.Ebooks, fn)
	cancels = appendCancel(cancels, s.Events, fn)
	cancels = appendCancel(cancels, s.Suppliers, fn)
	cancels = appendCancel(cancels, s.Foundries, fn)
	return cancels
}

// snapshotOf reads src, treating a missing or panicking source as empty
// so that one broken adapter cannot take the whole search down.
func snapshotOf[T any](ct domain.ContentType, src driven.ContentSource[T]) (items []T) {
	if src == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("%s source snapshot failed: %v", ct, r)
			items = nil
		}
	}()
	return src.Snapshot()
}

func appendCancel[T any](cancels []func(), src driven.ContentSource[T], fn func()) []func() {
	if src == nil {
		return cancels
	}
	if cancel := src.OnChange(fn); cancel != nil {
		cancels = append(cancels, cancel)
	}
	return cancels
}
