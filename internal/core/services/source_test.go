package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

type fakeRefresher struct {
	name  string
	err   error
	calls int
}

func (f *fakeRefresher) Name() string { return f.name }

func (f *fakeRefresher) Refresh(_ context.Context) error {
	f.calls++
	return f.err
}

func TestSourceService_Counts(t *testing.T) {
	svc := NewSourceService(Sources{
		News:      newFakeSource(domain.News{ID: "1"}, domain.News{ID: "2"}),
		Foundries: newFakeSource(domain.Foundry{ID: "f"}),
	})

	counts, err := svc.Counts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.ContentNews])
	assert.Equal(t, 1, counts[domain.ContentFoundry])
	assert.Equal(t, 0, counts[domain.ContentEbook])
	assert.Len(t, counts, len(domain.ContentTypes()))
}

func TestSourceService_Counts_CancelledContext(t *testing.T) {
	svc := NewSourceService(Sources{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Counts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceService_Refresh(t *testing.T) {
	ok := &fakeRefresher{name: "catalog"}
	svc := NewSourceService(Sources{}, ok)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, svc.Refreshers())
}

func TestSourceService_Refresh_JoinsErrors(t *testing.T) {
	errFeed := errors.New("feed down")
	feed := &fakeRefresher{name: "feed", err: errFeed}
	ok := &fakeRefresher{name: "catalog"}
	svc := NewSourceService(Sources{}, feed, ok)

	err := svc.Refresh(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errFeed)
	assert.Contains(t, err.Error(), "refresh feed")
	assert.Equal(t, 1, ok.calls)
}

func TestSourceService_Refresh_NoRefreshers(t *testing.T) {
	svc := NewSourceService(Sources{})

	assert.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 0, svc.Refreshers())
}
