package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

type recorder struct {
	mu    sync.Mutex
	views []domain.SearchView
}

func (r *recorder) record(v domain.SearchView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) all() []domain.SearchView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SearchView(nil), r.views...)
}

func TestSession_InitialView(t *testing.T) {
	news := newFakeSource(domain.News{ID: "n1", Title: "Alumínio"})
	session := NewSession(Sources{News: news}, "alum")
	defer session.Close()

	assert.Equal(t, domain.SearchStateIdle, session.View().State)

	session.Start()

	view := session.View()
	assert.Equal(t, domain.SearchStateReady, view.State)
	assert.False(t, view.Loading)
	assert.Equal(t, "alum", view.Query)
	require.Len(t, view.Results, 1)
	assert.Equal(t, 1, news.listenerCount())
}

func TestSession_SourceChangeRecomputes(t *testing.T) {
	news := newFakeSource[domain.News]()
	suppliers := newFakeSource[domain.Supplier]()
	session := NewSession(Sources{News: news, Suppliers: suppliers}, "alum")
	defer session.Close()
	session.Start()
	require.Empty(t, session.View().Results)

	rec := &recorder{}
	session.Subscribe(rec.record)

	suppliers.set(domain.Supplier{ID: "s1", Name: "AlumiBrasil"})

	views := rec.all()
	require.Len(t, views, 2)
	assert.Equal(t, domain.SearchStateLoading, views[0].State)
	assert.True(t, views[0].Loading)
	assert.Empty(t, views[0].Results)
	assert.Equal(t, domain.SearchStateReady, views[1].State)
	require.Len(t, views[1].Results, 1)
	assert.Equal(t, "AlumiBrasil", views[1].Results[0].Title)

	news.set(domain.News{ID: "n1", Title: "Alumínio em alta"})
	assert.Equal(t, []domain.ContentType{domain.ContentNews, domain.ContentSupplier},
		resultTypes(session.View().Results))
}

func TestSession_LoadingKeepsPreviousResults(t *testing.T) {
	news := newFakeSource(domain.News{ID: "n1", Title: "Alumínio"})
	session := NewSession(Sources{News: news}, "alum")
	defer session.Close()
	session.Start()

	rec := &recorder{}
	session.Subscribe(rec.record)
	session.SetQuery("ferro")

	views := rec.all()
	require.Len(t, views, 2)
	assert.Equal(t, "ferro", views[0].Query)
	assert.Len(t, views[0].Results, 1)
	assert.Empty(t, views[1].Results)
}

func TestSession_SetQuery(t *testing.T) {
	suppliers := newFakeSource(domain.Supplier{ID: "s1", Name: "AlumiBrasil"}, domain.Supplier{ID: "s2", Name: "FerroSul"})
	session := NewSession(Sources{Suppliers: suppliers}, "")
	defer session.Close()
	session.Start()
	assert.Empty(t, session.View().Results)

	session.SetQuery("ferro")
	require.Len(t, session.View().Results, 1)
	assert.Equal(t, "s2", session.View().Results[0].ID)
	assert.Equal(t, "ferro", session.Query())

	session.SetQuery("a")
	assert.Empty(t, session.View().Results)
	assert.Equal(t, domain.SearchStateReady, session.View().State)
}

func TestSession_SetQueryBeforeStart(t *testing.T) {
	session := NewSession(Sources{}, "al")
	session.SetQuery("alum")

	assert.Equal(t, domain.SearchStateIdle, session.View().State)
	assert.Equal(t, "alum", session.View().Query)
	session.Close()
}

func TestSession_Unsubscribe(t *testing.T) {
	news := newFakeSource[domain.News]()
	session := NewSession(Sources{News: news}, "alum")
	defer session.Close()
	session.Start()

	rec := &recorder{}
	cancel := session.Subscribe(rec.record)
	news.set(domain.News{Title: "alumínio"})
	cancel()
	cancel()
	news.set()

	assert.Len(t, rec.all(), 2)
}

func TestSession_UpdatesCoalesce(t *testing.T) {
	news := newFakeSource[domain.News]()
	session := NewSession(Sources{News: news}, "alum")
	defer session.Close()
	session.Start()

	updates := session.Updates()

	news.set(domain.News{ID: "1", Title: "alumínio"})
	news.set(domain.News{ID: "1", Title: "alumínio"}, domain.News{ID: "2", Title: "alumínio"})

	select {
	case v := <-updates:
		assert.Equal(t, domain.SearchStateReady, v.State)
		assert.Len(t, v.Results, 2)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}

	select {
	case v := <-updates:
		t.Fatalf("unexpected extra update: %+v", v)
	default:
	}
}

func TestSession_UpdatesDeliversCurrentView(t *testing.T) {
	session := NewSession(Sources{}, "alum")
	defer session.Close()
	session.Start()

	select {
	case v := <-session.Updates():
		assert.Equal(t, domain.SearchStateReady, v.State)
	default:
		t.Fatal("current view not delivered")
	}
}

func TestSession_Close(t *testing.T) {
	news := newFakeSource[domain.News]()
	session := NewSession(Sources{News: news}, "alum")
	session.Start()
	updates := session.Updates()
	<-updates

	rec := &recorder{}
	session.Subscribe(rec.record)

	session.Close()
	session.Close()

	assert.Equal(t, 0, news.listenerCount())
	_, open := <-updates
	assert.False(t, open)
	select {
	case <-session.Done():
	default:
		t.Fatal("done not closed")
	}

	news.set(domain.News{Title: "alumínio"})
	session.SetQuery("outra")
	assert.Empty(t, rec.all())

	_, open = <-session.Updates()
	assert.False(t, open)
	session.Start()
	assert.Equal(t, 0, news.listenerCount())
}

func TestSession_PanickingSourceIsEmpty(t *testing.T) {
	news := newFakeSource(domain.News{Title: "alumínio"})
	news.panics = true
	suppliers := newFakeSource(domain.Supplier{Name: "AlumiBrasil"})

	session := NewSession(Sources{News: news, Suppliers: suppliers}, "alum")
	defer session.Close()
	session.Start()

	assert.Equal(t, []domain.ContentType{domain.ContentSupplier}, resultTypes(session.View().Results))
}

func TestSession_ConcurrentTriggers(t *testing.T) {
	news := newFakeSource[domain.News]()
	session := NewSession(Sources{News: news}, "alum")
	defer session.Close()
	session.Start()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			news.set(domain.News{Title: "alumínio"})
		}()
		go func() {
			defer wg.Done()
			session.SetQuery("alum")
		}()
	}
	wg.Wait()

	view := session.View()
	assert.Equal(t, domain.SearchStateReady, view.State)
	assert.Len(t, view.Results, 1)
}
