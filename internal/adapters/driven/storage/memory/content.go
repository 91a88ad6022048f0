package memory

import "github.com/custodia-labs/portal-search/internal/core/domain"

// Content bundles one in-memory collection per content type.
type Content struct {
	News      *Collection[domain.News]
	Materials *Collection[domain.Material]
	Ebooks    *Collection[domain.Ebook]
	Events    *Collection[domain.Event]
	Suppliers *Collection[domain.Supplier]
	Foundries *Collection[domain.Foundry]
}

// NewContent creates empty collections keyed by item ID.
func NewContent() *Content {
	return &Content{
		News:      NewCollection(func(n domain.News) string { return n.ID }),
		Materials: NewCollection(func(m domain.Material) string { return m.ID }),
		Ebooks:    NewCollection(func(e domain.Ebook) string { return e.ID }),
		Events:    NewCollection(func(e domain.Event) string { return e.ID }),
		Suppliers: NewCollection(func(s domain.Supplier) string { return s.ID }),
		Foundries: NewCollection(func(f domain.Foundry) string { return f.ID }),
	}
}

// Load replaces the collections whose items differ from snaps and returns
// how many changed. Unchanged collections do not notify.
func (c *Content) Load(snaps domain.Snapshots) int {
	changed := 0
	for _, ok := range []bool{
		c.News.ReplaceIfChanged(snaps.News),
		c.Materials.ReplaceIfChanged(snaps.Materials),
		c.Ebooks.ReplaceIfChanged(snaps.Ebooks),
		c.Events.ReplaceIfChanged(snaps.Events),
		c.Suppliers.ReplaceIfChanged(snaps.Suppliers),
		c.Foundries.ReplaceIfChanged(snaps.Foundries),
	} {
		if ok {
			changed++
		}
	}
	return changed
}

// Snapshots returns the current contents of every collection.
func (c *Content) Snapshots() domain.Snapshots {
	return domain.Snapshots{
		News:      c.News.Snapshot(),
		Materials: c.Materials.Snapshot(),
		Ebooks:    c.Ebooks.Snapshot(),
		Events:    c.Events.Snapshot(),
		Suppliers: c.Suppliers.Snapshot(),
		Foundries: c.Foundries.Snapshot(),
	}
}
