package services

import (
	"sync"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SearchSession = (*Session)(nil)

type subscriber struct {
	id int
	fn func(domain.SearchView)
}

// Session is a live search over a set of sources. It recomputes its
// result list whenever the query changes or any source reports a new
// snapshot, and publishes a LOADING view followed by a READY view for
// every recomputation.
//
// Recomputations are serialised; each one reads the latest query and the
// latest snapshots, so the most recent trigger always wins.
type Session struct {
	sources Sources

	mu      sync.Mutex
	query   string
	view    domain.SearchView
	started bool
	closed  bool
	subs    []subscriber
	nextID  int
	chans   []chan domain.SearchView
	cancels []func()
	done    chan struct{}
}

// NewSession creates an idle session for query. Call Start to attach it
// to the sources and compute the first result list.
func NewSession(sources Sources, query string) *Session {
	return &Session{
		sources: sources,
		query:   query,
		view: domain.SearchView{
			Query: query,
			State: domain.SearchStateIdle,
		},
		done: make(chan struct{}),
	}
}

// Start subscribes to every source and computes the initial view.
// Calling Start more than once, or after Close, has no effect.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	// Sources may take their own locks while registering, so subscribe
	// outside ours.
	cancels := s.sources.subscribe(s.onSourceChange)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		for _, cancel := range cancels {
			cancel()
		}
		return
	}
	s.cancels = cancels
	logger.Debug("session: started for %q with %d sources", s.query, len(cancels))
	s.recomputeLocked("start")
	s.mu.Unlock()
}

// View returns the most recently published view.
func (s *Session) View() domain.SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Query returns the current session query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetQuery replaces the query and recomputes.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.query = query
	if !s.started {
		s.view.Query = query
		return
	}
	s.recomputeLocked("query")
}

// Subscribe registers fn to receive every published view. fn runs with
// the session locked and must not call back into the session.
func (s *Session) Subscribe(fn func(domain.SearchView)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.subs {
				if s.subs[i].id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Updates returns a channel that always holds the newest unread view.
// The current view is delivered immediately if the session has started.
func (s *Session) Updates() <-chan domain.SearchView {
	ch := make(chan domain.SearchView, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.chans = append(s.chans, ch)
	if s.view.State != domain.SearchStateIdle {
		offer(ch, s.view)
	}
	return ch
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close detaches the session from its sources and closes every update
// channel. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancels := s.cancels
	s.cancels = nil
	s.subs = nil
	for _, ch := range s.chans {
		close(ch)
	}
	s.chans = nil
	close(s.done)
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	logger.Debug("session: closed")
}

func (s *Session) onSourceChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.started {
		return
	}
	s.recomputeLocked("source")
}

// recomputeLocked runs the matcher against fresh snapshots.
// Caller must hold s.mu.
func (s *Session) recomputeLocked(trigger string) {
	previous := s.view.Results
	if previous == nil {
		previous = []domain.SearchResult{}
	}
	s.publishLocked(domain.SearchView{
		Query:   s.query,
		State:   domain.SearchStateLoading,
		Results: previous,
		Loading: true,
	})

	results := Match(s.query, s.sources.Snapshots())
	logger.Debug("session: %s trigger, %q -> %d results", trigger, s.query, len(results))

	s.publishLocked(domain.SearchView{
		Query:   s.query,
		State:   domain.SearchStateReady,
		Results: results,
		Loading: false,
	})
}

func (s *Session) publishLocked(view domain.SearchView) {
	s.view = view
	for _, sub := range s.subs {
		sub.fn(view)
	}
	for _, ch := range s.chans {
		offer(ch, view)
	}
}

// offer places v in ch, replacing any view the reader has not taken yet.
func offer(ch chan domain.SearchView, v domain.SearchView) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
