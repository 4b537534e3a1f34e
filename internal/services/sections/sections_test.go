package sections

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
)

// flakyRepo wraps a real repo and fails selected calls.
type flakyRepo struct {
	repos.SectionRepo

	mu            sync.Mutex
	orderCalls    int
	failOrderCall int // 1-based; 0 never fails
	failList      bool
	failToggle    bool
	afterList     func() // runs once rows are read, before List returns
}

var errInjected = errors.New("injected write failure")

func (r *flakyRepo) SetOrderIndex(dbc dbctx.Context, id uuid.UUID, orderIndex int) (*types.Section, error) {
	r.mu.Lock()
	r.orderCalls++
	fail := r.failOrderCall != 0 && r.orderCalls == r.failOrderCall
	r.mu.Unlock()
	if fail {
		return nil, errInjected
	}
	return r.SectionRepo.SetOrderIndex(dbc, id, orderIndex)
}

func (r *flakyRepo) SetVisibility(dbc dbctx.Context, id uuid.UUID, visible bool) (*types.Section, error) {
	r.mu.Lock()
	fail := r.failToggle
	r.mu.Unlock()
	if fail {
		return nil, errInjected
	}
	return r.SectionRepo.SetVisibility(dbc, id, visible)
}

func (r *flakyRepo) List(dbc dbctx.Context) ([]types.Section, error) {
	r.mu.Lock()
	fail := r.failList
	hook := r.afterList
	r.mu.Unlock()
	if fail {
		return nil, errInjected
	}
	rows, err := r.SectionRepo.List(dbc)
	if hook != nil {
		hook()
	}
	return rows, err
}

type fixture struct {
	db      *gorm.DB
	repo    *flakyRepo
	store   *Store
	manager *Manager
	seeded  []types.Section
}

func newFixture(t *testing.T, mode ReorderMode, names ...string) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	seeded := testutil.SeedSections(t, context.Background(), db, names...)
	repo := &flakyRepo{SectionRepo: repos.NewSectionRepo(db, log)}
	store := NewStore(log, repo)
	return &fixture{
		db:      db,
		repo:    repo,
		store:   store,
		manager: NewManager(log, repo, store, mode),
		seeded:  seeded,
	}
}

// persisted returns name -> order_index straight from the table.
func (f *fixture) persisted(t *testing.T) map[string]int {
	t.Helper()
	var rows []types.Section
	if err := f.db.Order("order_index ASC").Find(&rows).Error; err != nil {
		t.Fatalf("read sections: %v", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Name] = r.OrderIndex
	}
	return out
}

func names(sections []types.Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func blockNames(p Page) []string {
	out := make([]string, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		out = append(out, b.Name)
	}
	return out
}

type recordingNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (n *recordingNotifier) SectionsChanged(_ context.Context, reason string) {
	n.mu.Lock()
	n.reasons = append(n.reasons, reason)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.reasons)
}

func sortedValues(m map[string]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
