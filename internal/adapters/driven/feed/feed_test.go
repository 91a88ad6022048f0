package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Portal da Fundição</title>
    <link>https://portal.example.com</link>
    <description>Notícias</description>
    <item>
      <guid>noticia-1</guid>
      <title>Preço do &lt;b&gt;alumínio&lt;/b&gt; sobe</title>
      <link>https://portal.example.com/noticias/preco-do-aluminio-sobe/</link>
      <description>&lt;p&gt;Alta de   5%   &amp;amp; demanda&lt;/p&gt;</description>
      <category>Mercado</category>
      <dc:creator>Redação</dc:creator>
      <pubDate>Fri, 15 Mar 2024 10:00:00 +0000</pubDate>
      <enclosure url="https://portal.example.com/img/aluminio.jpg" type="image/jpeg" length="100"/>
    </item>
    <item>
      <title>Feira de moldes</title>
      <link>https://portal.example.com/noticias/feira</link>
    </item>
  </channel>
</rss>`

func writeFeed(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestFeed_LoadFile(t *testing.T) {
	f := New(writeFeed(t, rss))

	require.NoError(t, f.Load(context.Background()))

	items := f.Snapshot()
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "noticia-1", first.ID)
	assert.Equal(t, "Preço do alumínio sobe", first.Title)
	assert.Equal(t, "preco-do-aluminio-sobe", first.Slug)
	assert.Equal(t, "Alta de 5% & demanda", first.Excerpt)
	assert.Equal(t, "Mercado", first.Category)
	assert.Equal(t, "Redação", first.Author)
	assert.Equal(t, "2024-03-15", first.PublishedAt.Format("2006-01-02"))
	assert.Equal(t, "https://portal.example.com/img/aluminio.jpg", first.Image)

	second := items[1]
	assert.Equal(t, "https://portal.example.com/noticias/feira", second.ID)
	assert.Equal(t, "feira", second.Slug)
	assert.True(t, second.PublishedAt.IsZero())
}

func TestFeed_LoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.UserAgent())
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	f := New(server.URL + "/feed")
	require.NoError(t, f.Refresh(context.Background()))

	assert.Len(t, f.Snapshot(), 2)
	assert.Equal(t, "feed:"+server.URL+"/feed", f.Name())
}

func TestFeed_FailedLoadKeepsItems(t *testing.T) {
	p := writeFeed(t, rss)
	f := New(p)
	require.NoError(t, f.Load(context.Background()))

	require.NoError(t, os.WriteFile(p, []byte("not a feed"), 0o600))
	err := f.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Len(t, f.Snapshot(), 2)
}

func TestFeed_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := New(server.URL).Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFeed_MissingFile(t *testing.T) {
	err := New(filepath.Join(t.TempDir(), "none.xml")).Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFeed_OnChangeOnlyWhenItemsChange(t *testing.T) {
	f := New(writeFeed(t, rss))
	calls := 0
	f.OnChange(func() { calls++ })

	require.NoError(t, f.Load(context.Background()))
	require.NoError(t, f.Load(context.Background()))

	assert.Equal(t, 1, calls)
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://portal.example.com/feed"))
	assert.True(t, isURL("http://localhost:8080"))
	assert.False(t, isURL("/var/lib/feed.xml"))
	assert.False(t, isURL("feed.xml"))
}
