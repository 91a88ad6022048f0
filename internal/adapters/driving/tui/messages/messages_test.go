package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewSources, "sources"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := map[ViewType]bool{}
	for _, v := range []ViewType{ViewMenu, ViewSearch, ViewSources, ViewHelp} {
		assert.False(t, seen[v], "duplicate view type %s", v)
		seen[v] = true
	}
	assert.Equal(t, ViewMenu, ViewType(0), "the zero value is the menu")
}

func TestSessionOpened(t *testing.T) {
	err := errors.New("no sources")
	msg := SessionOpened{Err: err}

	assert.Nil(t, msg.Session)
	assert.ErrorIs(t, msg.Err, err)
}

func TestViewPublished(t *testing.T) {
	view := domain.SearchView{
		Query:   "ferro",
		State:   domain.SearchStateReady,
		Results: []domain.SearchResult{{ID: "1", Type: domain.ContentFoundry, Title: "Fundição Ferro"}},
	}

	msg := ViewPublished{View: view}

	assert.Equal(t, "ferro", msg.View.Query)
	assert.Len(t, msg.View.Results, 1)
}

func TestCountsLoaded(t *testing.T) {
	msg := CountsLoaded{Counts: map[domain.ContentType]int{domain.ContentEbook: 2}}

	assert.NoError(t, msg.Err)
	assert.Equal(t, 2, msg.Counts[domain.ContentEbook])
	assert.Zero(t, msg.Counts[domain.ContentNews])
}

func TestResultSelected(t *testing.T) {
	msg := ResultSelected{Result: domain.SearchResult{ID: "7", Type: domain.ContentEvent}}

	assert.Equal(t, "event:7", msg.Result.Key())
}
