package services

import (
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
)

// merged presents several sources of one collection as a single source.
type merged[T any] struct {
	sources []driven.ContentSource[T]
}

// Merge combines sources into one. The snapshot is the concatenation of
// the sources' snapshots in argument order, and a change in any of them
// is reported as a change of the whole. Nil sources are skipped; Merge
// returns nil when none remain and the source itself when only one does.
func Merge[T any](sources ...driven.ContentSource[T]) driven.ContentSource[T] {
	live := make([]driven.ContentSource[T], 0, len(sources))
	for _, src := range sources {
		if src != nil {
			live = append(live, src)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return &merged[T]{sources: live}
	}
}

func (m *merged[T]) Snapshot() []T {
	var out []T
	for _, src := range m.sources {
		out = append(out, src.Snapshot()...)
	}
	return out
}

func (m *merged[T]) OnChange(fn func()) func() {
	cancels := make([]func(), 0, len(m.sources))
	for _, src := range m.sources {
		if cancel := src.OnChange(fn); cancel != nil {
			cancels = append(cancels, cancel)
		}
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
