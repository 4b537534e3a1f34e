package sections

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = val
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestRenderLoadingShowsNothing(t *testing.T) {
	page := Render(Snapshot{Status: StatusLoading, Sections: []types.Section{{Name: "Hero", IsVisible: true}}})
	if !page.Loading {
		t.Fatalf("Loading: want=true")
	}
	if len(page.Blocks) != 0 {
		t.Fatalf("blocks while loading: want none got=%v", blockNames(page))
	}
}

func TestRenderFailedUsesDefaultOrder(t *testing.T) {
	page := Render(Snapshot{Status: StatusFailed, Err: errors.New("down")})
	if !page.Fallback {
		t.Fatalf("Fallback: want=true")
	}
	if !equalStrings(blockNames(page), DefaultOrder) {
		t.Fatalf("fallback: want=%v got=%v", DefaultOrder, blockNames(page))
	}
	if len(FallbackMismatch()) != 0 {
		t.Fatalf("fallback drift: %v", FallbackMismatch())
	}
}

func TestRenderReadyFiltersAndOrders(t *testing.T) {
	snap := Snapshot{Status: StatusReady, Sections: []types.Section{
		{Name: "Contact", IsVisible: true, OrderIndex: 9},
		{Name: "Hero", IsVisible: true, OrderIndex: 0},
		{Name: "Testimonials", IsVisible: true, OrderIndex: 1},
		{Name: "Blog", IsVisible: false, OrderIndex: 2},
		{Name: "Data Science Lab", IsVisible: true, OrderIndex: 3},
	}}
	page := Render(snap)
	want := []string{"Hero", "Data Science Lab", "Contact"}
	if !equalStrings(blockNames(page), want) {
		t.Fatalf("rendered: want=%v got=%v", want, blockNames(page))
	}
	if page.Blocks[1].Key != "data_science_lab" {
		t.Fatalf("block key: want=%q got=%q", "data_science_lab", page.Blocks[1].Key)
	}
}

func TestComposeFallsBackWhenRegistryUnavailable(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	f.repo.failList = true
	cache := &memCache{}

	c := NewComposer(testutil.Logger(t), f.store, ComposerConfig{Cache: cache})
	page := c.Compose(context.Background())
	if !page.Fallback || page.Loading {
		t.Fatalf("page: want fallback got=%+v", page)
	}
	if !equalStrings(blockNames(*page), DefaultOrder) {
		t.Fatalf("fallback blocks: want=%v got=%v", DefaultOrder, blockNames(*page))
	}
	if len(cache.data) != 0 {
		t.Fatalf("fallback page cached")
	}
}

func TestComposeLoadsBlocksAndToleratesLoaderFailure(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "Skills", "Projects")
	logo := "https://cdn.example.com/logo.png"

	c := NewComposer(testutil.Logger(t), f.store, ComposerConfig{
		Loaders: map[string]BlockLoader{
			"hero":     func(ctx context.Context) (any, error) { return map[string]string{"resume_url": "r.pdf"}, nil },
			"projects": func(ctx context.Context) (any, error) { return nil, errors.New("projects down") },
		},
		Logo: func(ctx context.Context) (*string, error) { return &logo, nil },
	})
	page := c.Compose(context.Background())
	if page.Fallback {
		t.Fatalf("page: unexpected fallback")
	}
	if want := []string{"Hero", "Skills", "Projects"}; !equalStrings(blockNames(*page), want) {
		t.Fatalf("blocks: want=%v got=%v", want, blockNames(*page))
	}
	if page.Blocks[0].Data == nil {
		t.Fatalf("hero data: want loaded")
	}
	if page.Blocks[2].Data != nil {
		t.Fatalf("projects data: want empty after loader failure got=%v", page.Blocks[2].Data)
	}
	if page.LogoURL == nil || *page.LogoURL != logo {
		t.Fatalf("logo: got=%v", page.LogoURL)
	}
}

func TestComposeOmitsHiddenSectionAfterToggle(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")
	cache := &memCache{}
	c := NewComposer(testutil.Logger(t), f.store, ComposerConfig{Cache: cache})
	ctx := context.Background()

	if got := blockNames(*c.Compose(ctx)); !equalStrings(got, []string{"Hero", "About", "Skills"}) {
		t.Fatalf("initial page: got=%v", got)
	}

	if _, err := f.manager.ToggleVisibility(ctx, f.seeded[1].ID); err != nil {
		t.Fatalf("ToggleVisibility: %v", err)
	}
	if got := blockNames(*c.Compose(ctx)); !equalStrings(got, []string{"Hero", "About", "Skills"}) {
		t.Fatalf("cached page: want stale cached entry got=%v", got)
	}

	c.Invalidate(ctx)
	if got := blockNames(*c.Compose(ctx)); !equalStrings(got, []string{"Hero", "Skills"}) {
		t.Fatalf("page after invalidate: want=[Hero Skills] got=%v", got)
	}
}

func TestStoreRefreshKeepsSectionsOnFailure(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	ctx := context.Background()

	if s := f.store.Snapshot(); s.Status != StatusLoading {
		t.Fatalf("initial status: want=%q got=%q", StatusLoading, s.Status)
	}
	if _, err := f.store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	f.repo.failList = true
	if _, err := f.store.Refresh(ctx); !errors.Is(err, errInjected) {
		t.Fatalf("Refresh failing: want injected got=%v", err)
	}
	snap := f.store.Snapshot()
	if snap.Status != StatusFailed || len(snap.Sections) != 2 {
		t.Fatalf("snapshot after failure: got status=%q sections=%d", snap.Status, len(snap.Sections))
	}

	snap.Sections[0].Name = "mutated"
	if f.store.Snapshot().Sections[0].Name == "mutated" {
		t.Fatalf("snapshot aliases store state")
	}
}

func TestStoreDiscardsReadOlderThanReplace(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	ctx := context.Background()

	read := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.repo.afterList = func() {
		once.Do(func() {
			close(read)
			<-release
		})
	}
	done := make(chan []string, 1)
	go func() {
		rows, _ := f.store.Refresh(ctx)
		done <- names(rows)
	}()
	<-read

	f.store.Replace([]types.Section{f.seeded[1], f.seeded[0]})
	close(release)

	want := []string{"About", "Hero"}
	if got := <-done; !equalStrings(got, want) {
		t.Fatalf("stale Refresh result: want=%v got=%v", want, got)
	}
	if got := names(f.store.Snapshot().Sections); !equalStrings(got, want) {
		t.Fatalf("store: want=%v got=%v", want, got)
	}
}

func TestComposeSkipsCacheWhenInvalidatedMidCompose(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	cache := &memCache{}
	ctx := context.Background()

	var c *Composer
	var once sync.Once
	c = NewComposer(testutil.Logger(t), f.store, ComposerConfig{
		Cache: cache,
		Loaders: map[string]BlockLoader{
			"hero": func(ctx context.Context) (any, error) {
				once.Do(func() { c.Invalidate(ctx) })
				return "hero", nil
			},
		},
	})

	c.Compose(ctx)
	if _, ok, _ := cache.Get(ctx, PageCacheKey); ok {
		t.Fatalf("page composed across an invalidation was cached")
	}
	c.Compose(ctx)
	if _, ok, _ := cache.Get(ctx, PageCacheKey); !ok {
		t.Fatalf("page not cached after a clean compose")
	}
}
