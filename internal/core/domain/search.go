package domain

// MinQueryLength is the shortest query, in characters, that is matched.
// Shorter queries produce an empty result list.
const MinQueryLength = 2

// SearchOptions configures a one-shot search.
type SearchOptions struct {
	// Types restricts results to the given collections.
	// Empty means all collections. Priority order is kept either way.
	Types []ContentType
}

// Includes reports whether results of type t pass the type filter.
func (o SearchOptions) Includes(t ContentType) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, ct := range o.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// SearchResult is the normalised, type-tagged projection of a matched item.
// Only the fields meaningful for Type are populated.
type SearchResult struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Type    ContentType `json:"type"`

	Category  string `json:"category,omitempty"`
	Author    string `json:"author,omitempty"`
	Date      string `json:"date,omitempty"`
	Location  string `json:"location,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Price     string `json:"price,omitempty"`
	Downloads *int   `json:"downloads,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Key returns the identity of the result across recomputations.
func (r SearchResult) Key() string {
	return string(r.Type) + ":" + r.ID
}

// SearchState is the lifecycle state of a live search session.
type SearchState string

// Live search states.
const (
	SearchStateIdle    SearchState = "idle"
	SearchStateLoading SearchState = "loading"
	SearchStateReady   SearchState = "ready"
)

// SearchView is the continuously updated output of a live search.
type SearchView struct {
	// Query is the query the results were computed for.
	Query string

	// State is the session state when the view was published.
	State SearchState

	// Results is the ordered result list. Never nil once the
	// session has left the idle state.
	Results []SearchResult

	// Loading is true while a recomputation is in progress.
	Loading bool
}
