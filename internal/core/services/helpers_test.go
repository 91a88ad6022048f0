package services

import (
	"sync"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// fakeSource is a hand-driven content source for tests.
type fakeSource[T any] struct {
	mu        sync.Mutex
	items     []T
	listeners map[int]func()
	next      int
	panics    bool
}

func newFakeSource[T any](items ...T) *fakeSource[T] {
	return &fakeSource[T]{items: items, listeners: make(map[int]func())}
}

func (f *fakeSource[T]) Snapshot() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panics {
		panic("source unavailable")
	}
	return append([]T(nil), f.items...)
}

func (f *fakeSource[T]) OnChange(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := f.next
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeSource[T]) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// set replaces the snapshot and notifies listeners outside the lock.
func (f *fakeSource[T]) set(items ...T) {
	f.mu.Lock()
	f.items = items
	fns := make([]func(), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func ptr[T any](v T) *T { return &v }

func resultTypes(results []domain.SearchResult) []domain.ContentType {
	types := make([]domain.ContentType, len(results))
	for i := range results {
		types[i] = results[i].Type
	}
	return types
}

// fullSnapshots has one "alum" hit per collection, plus a miss in each.
func fullSnapshots() domain.Snapshots {
	return domain.Snapshots{
		News: []domain.News{
			{ID: "n1", Title: "Preço do alumínio sobe"},
			{ID: "n2", Title: "Mercado de aço"},
		},
		Materials: []domain.Material{
			{ID: "m1", Title: "Guia de ligas", Description: "Ligas de alumínio para fundição"},
			{ID: "m2", Title: "Areia verde"},
		},
		Ebooks: []domain.Ebook{
			{ID: "e1", Title: "Fundição sob pressão", Author: "Ana Alumiara"},
			{ID: "e2", Title: "Ferro fundido"},
		},
		Events: []domain.Event{
			{ID: "v1", Title: "Congresso", Location: "Centro de Alumínio, SP"},
			{ID: "v2", Title: "Feira de moldes"},
		},
		Suppliers: []domain.Supplier{
			{ID: "s1", Name: "AlumiBrasil"},
			{ID: "s2", Name: "Moldes SA"},
		},
		Foundries: []domain.Foundry{
			{ID: "f1", Name: "Fundição Beta", Specialty: "Alumínio injetado"},
			{ID: "f2", Name: "Fundição Gama"},
		},
	}
}
