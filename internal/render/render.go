package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/pkg/metrics"
)

const viewCacheKey = "portfolio:view"

// Loader provides the portfolio aggregate. Satisfied by the portfolio
// service and by test fakes.
type Loader interface {
	Load(ctx context.Context) (*portfolio.Data, error)
}

// View is the public page model. Absent sections stay nil/empty and are not
// rendered; the about description is pre-expanded into paragraph segments so
// templates never touch link offsets.
type View struct {
	Hero            *portfolio.Hero        `json:"hero,omitempty"`
	AboutParagraphs []portfolio.Paragraph  `json:"aboutParagraphs,omitempty"`
	Contact         *portfolio.Contact     `json:"contact,omitempty"`
	Experience      []portfolio.Experience `json:"experience,omitempty"`
	Projects        []portfolio.Project    `json:"projects,omitempty"`
	Writing         []portfolio.Writing    `json:"writing,omitempty"`
	ResumeURL       *string                `json:"resumeUrl,omitempty"`
}

// BuildView derives the page model from the aggregate.
func BuildView(data *portfolio.Data) *View {
	v := &View{
		Hero:       data.Hero,
		Contact:    data.Contact,
		Experience: data.Experience,
		Projects:   data.Projects,
		Writing:    data.Writing,
		ResumeURL:  data.ResumeURL,
	}
	if data.About != nil {
		v.AboutParagraphs = portfolio.SplitParagraphs(data.About.Description, data.About.Links)
	}
	return v
}

// Renderer serves the public view from a TTL cache. Writes through the admin
// API do not invalidate the cache; readers see fresh content once the
// revalidation window lapses.
type Renderer struct {
	loader Loader
	cache  *ristretto.Cache[string, *View]
	ttl    time.Duration
}

func NewRenderer(loader Loader, ttl time.Duration) (*Renderer, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *View]{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("view cache: %w", err)
	}
	return &Renderer{loader: loader, cache: cache, ttl: ttl}, nil
}

// View returns the cached page model, rebuilding it from the aggregator when
// the revalidation window lapsed.
func (r *Renderer) View(ctx context.Context) (*View, error) {
	if v, ok := r.cache.Get(viewCacheKey); ok {
		return v, nil
	}
	data, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	v := BuildView(data)
	r.cache.SetWithTTL(viewCacheKey, v, 1, r.ttl)
	r.cache.Wait()
	metrics.RenderRefreshes.Inc()
	return v, nil
}

// Invalidate drops the cached view so the next read rebuilds immediately.
func (r *Renderer) Invalidate() {
	r.cache.Del(viewCacheKey)
}

// Close releases the cache goroutines.
func (r *Renderer) Close() {
	r.cache.Close()
}

// WriteHTML renders the view as the public portfolio page.
func (r *Renderer) WriteHTML(ctx context.Context, w io.Writer) error {
	v, err := r.View(ctx)
	if err != nil {
		return err
	}
	return pageTemplate.Execute(w, v)
}
