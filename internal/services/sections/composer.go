package sections

import (
	"context"
	"encoding/json"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// PageCacheKey is the single cache entry holding the composed public page.
const PageCacheKey = "page:public"

type Block struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	SectionID string `json:"section_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

type Page struct {
	Loading     bool      `json:"loading"`
	Fallback    bool      `json:"fallback"`
	LogoURL     *string   `json:"logo_url"`
	Blocks      []Block   `json:"blocks"`
	Version     uint64    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

// BlockLoader fetches the data one block renders.
type BlockLoader func(ctx context.Context) (any, error)

// PageCache stores composed pages as JSON.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ComposerConfig struct {
	// Loaders are keyed by block key; blocks without a loader carry no data.
	Loaders map[string]BlockLoader
	// Logo resolves the navbar logo URL.
	Logo     func(ctx context.Context) (*string, error)
	Cache    PageCache
	CacheTTL time.Duration
}

type Composer struct {
	log   *logger.Logger
	store *Store
	cfg   ComposerConfig

	// gen is bumped by Invalidate; a page composed across a bump is not cached.
	gen atomic.Uint64
}

func NewComposer(log *logger.Logger, store *Store, cfg ComposerConfig) *Composer {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &Composer{
		log:   log.With("service", "PageComposer"),
		store: store,
		cfg:   cfg,
	}
}

// Render resolves a snapshot into blocks without loading block data.
// A loading snapshot renders nothing but the loading flag; a failed one
// renders the default order with every section visible.
func Render(snap Snapshot) Page {
	switch snap.Status {
	case StatusLoading:
		return Page{Loading: true, Blocks: []Block{}, Version: snap.Version}
	case StatusFailed:
		return Page{Fallback: true, Blocks: blocksFor(FallbackSections()), Version: snap.Version}
	default:
		return Page{Blocks: blocksFor(snap.Sections), Version: snap.Version}
	}
}

func blocksFor(sections []types.Section) []Block {
	ordered := types.CloneSections(sections)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].OrderIndex < ordered[j].OrderIndex })

	out := make([]Block, 0, len(ordered))
	for _, s := range ordered {
		if !s.IsVisible {
			continue
		}
		key, ok := BlockKey(s.Name)
		if !ok {
			continue
		}
		b := Block{Key: key, Name: s.Name}
		if s.ID != uuid.Nil {
			b.SectionID = s.ID.String()
		}
		out = append(out, b)
	}
	return out
}

// Compose returns the public page, from cache when present. It refreshes
// the registry, renders, then loads every block concurrently. A failed
// loader leaves its block without data; Compose itself never fails.
func (c *Composer) Compose(ctx context.Context) *Page {
	if page, ok := c.cached(ctx); ok {
		return page
	}
	return c.compose(ctx)
}

func (c *Composer) compose(ctx context.Context) *Page {
	gen := c.gen.Load()
	_, _ = c.store.Refresh(ctx)
	snap := c.store.Snapshot()
	page := Render(snap)
	page.GeneratedAt = time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	for i := range page.Blocks {
		i := i
		loader := c.cfg.Loaders[page.Blocks[i].Key]
		if loader == nil {
			continue
		}
		g.Go(func() error {
			data, err := loader(gctx)
			if err != nil {
				c.log.Warn("Block data load failed", "block", page.Blocks[i].Key, "error", err)
				return nil
			}
			page.Blocks[i].Data = data
			return nil
		})
	}
	if c.cfg.Logo != nil {
		g.Go(func() error {
			logo, err := c.cfg.Logo(gctx)
			if err != nil {
				c.log.Warn("Logo load failed", "error", err)
				return nil
			}
			page.LogoURL = logo
			return nil
		})
	}
	_ = g.Wait()

	// Fallback pages are not cached so the next request retries the registry.
	switch {
	case page.Fallback:
	case c.gen.Load() != gen || c.store.Snapshot().Version != snap.Version:
		c.log.Debug("Page changed while composing, not caching", "version", snap.Version)
	default:
		c.save(ctx, &page)
	}
	return &page
}

func (c *Composer) cached(ctx context.Context) (*Page, bool) {
	if c.cfg.Cache == nil {
		return nil, false
	}
	raw, ok, err := c.cfg.Cache.Get(ctx, PageCacheKey)
	if err != nil {
		c.log.Warn("Page cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		c.log.Warn("Page cache entry unreadable", "error", err)
		return nil, false
	}
	return &page, true
}

func (c *Composer) save(ctx context.Context, page *Page) {
	if c.cfg.Cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		c.log.Warn("Page encode failed", "error", err)
		return
	}
	if err := c.cfg.Cache.Set(ctx, PageCacheKey, raw, c.cfg.CacheTTL); err != nil {
		c.log.Warn("Page cache write failed", "error", err)
	}
}

// Invalidate drops the cached page.
func (c *Composer) Invalidate(ctx context.Context) {
	c.gen.Add(1)
	if c.cfg.Cache == nil {
		return
	}
	if err := c.cfg.Cache.Delete(ctx, PageCacheKey); err != nil {
		c.log.Warn("Page cache invalidate failed", "error", err)
	}
}
