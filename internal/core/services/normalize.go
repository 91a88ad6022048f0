package services

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// summaryLength is how many characters of a long text field are kept
// when it has to stand in for a missing summary.
const summaryLength = 200

const ellipsis = "..."

// dateLayout is the layout of SearchResult.Date.
const dateLayout = "2006-01-02"

// FreeLabel is shown instead of a price for free or unpriced items.
const FreeLabel = "Gratuito"

// Fallback summaries, used when an item has nothing better to show.
const (
	newsPlaceholder     = "Notícia do setor de fundição."
	materialPlaceholder = "Material técnico disponível para download."
	ebookPlaceholder    = "E-book disponível na biblioteca do portal."
	eventPlaceholder    = "Evento do setor de fundição."
	supplierPlaceholder = "Fornecedor do setor de fundição."
	foundryPlaceholder  = "Fundição cadastrada no portal."
)

func normalizeNews(n domain.News) domain.SearchResult {
	return domain.SearchResult{
		ID:       n.ID,
		Title:    n.Title,
		Summary:  firstNonEmpty(n.Excerpt, truncate(n.Content, summaryLength), newsPlaceholder),
		Category: n.Category,
		Author:   n.Author,
		Date:     formatDate(n.PublishedAt),
		Slug:     n.Slug,
		Image:    n.Image,
	}
}

func normalizeMaterial(m domain.Material) domain.SearchResult {
	return domain.SearchResult{
		ID:        m.ID,
		Title:     m.Title,
		Summary:   firstNonEmpty(m.Description, materialPlaceholder),
		Category:  m.Category,
		Date:      formatDate(m.PublishedAt),
		Downloads: downloadsOrZero(m.Downloads),
		Image:     m.Image,
	}
}

func normalizeEbook(e domain.Ebook) domain.SearchResult {
	return domain.SearchResult{
		ID:        e.ID,
		Title:     e.Title,
		Summary:   firstNonEmpty(e.Description, ebookPlaceholder),
		Category:  e.Category,
		Author:    e.Author,
		Date:      formatDate(e.PublishedAt),
		Price:     FormatPrice(e.Price),
		Downloads: downloadsOrZero(e.Downloads),
		Image:     e.Image,
	}
}

func normalizeEvent(e domain.Event) domain.SearchResult {
	location := firstNonEmpty(strings.TrimSpace(e.Location), composeLocation(e.City, e.State))

	var venue string
	if location != "" {
		venue = "Evento em " + location
	}

	return domain.SearchResult{
		ID:       e.ID,
		Title:    e.Title,
		Summary:  firstNonEmpty(e.Description, venue, eventPlaceholder),
		Category: e.Category,
		Date:     formatDate(e.StartsAt),
		Location: location,
		Slug:     e.Slug,
		Image:    e.Image,
	}
}

func normalizeSupplier(s domain.Supplier) domain.SearchResult {
	return domain.SearchResult{
		ID:        s.ID,
		Title:     s.Name,
		Summary:   firstNonEmpty(s.Description, s.Specialty, supplierPlaceholder),
		Category:  s.Category,
		Location:  composeLocation(s.City, s.State),
		Specialty: s.Specialty,
		Image:     s.Image,
	}
}

func normalizeFoundry(f domain.Foundry) domain.SearchResult {
	return domain.SearchResult{
		ID:        f.ID,
		Title:     f.Name,
		Summary:   firstNonEmpty(f.Description, f.Specialty, foundryPlaceholder),
		Location:  composeLocation(f.City, f.State),
		Specialty: f.Specialty,
		Image:     f.Image,
	}
}

// FormatPrice renders a price in Brazilian reais, e.g. "R$ 1.234,50".
// The price is rounded to centavos first; anything that rounds to zero or
// below, and a nil price, renders as FreeLabel, never "R$ 0,00".
func FormatPrice(price *float64) string {
	if price == nil {
		return FreeLabel
	}
	cents := math.Round(*price * 100)
	if cents <= 0 {
		return FreeLabel
	}
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", cents/100)
}

// composeLocation joins city and state as "City, ST", dropping
// separators left over when either part is missing.
func composeLocation(city, state string) string {
	city = strings.Trim(city, " ,")
	state = strings.Trim(state, " ,")
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// truncate shortens s to at most n characters followed by an ellipsis.
// Text that already fits is returned trimmed but otherwise unchanged.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + ellipsis
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func downloadsOrZero(n *int) *int {
	v := 0
	if n != nil {
		v = *n
	}
	return &v
}
