package sections

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// ErrReorderInFlight rejects a move issued while another move holds the gate.
var ErrReorderInFlight = errors.New("reorder already in flight")

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionUp, DirectionDown:
		return d, nil
	default:
		return "", errs.OneOf("direction", s, string(DirectionUp), string(DirectionDown))
	}
}

// ReorderMode selects how the two order_index writes of a move are issued.
type ReorderMode string

const (
	// ReorderModeAtomic writes both rows in one transaction; readers never
	// see two sections sharing an index.
	ReorderModeAtomic ReorderMode = "atomic"
	// ReorderModeSequential issues two independent writes, the second only
	// after the first completes.
	ReorderModeSequential ReorderMode = "sequential"
)

func ParseReorderMode(s string) (ReorderMode, error) {
	switch m := ReorderMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ReorderModeAtomic, nil
	case ReorderModeAtomic, ReorderModeSequential:
		return m, nil
	default:
		return "", errs.OneOf("reorder_mode", s, string(ReorderModeAtomic), string(ReorderModeSequential))
	}
}

// ChangeNotifier is told when persisted section state changed.
type ChangeNotifier interface {
	SectionsChanged(ctx context.Context, reason string)
}

type MoveResult struct {
	// Sections is the reconciled list, or the input list for a boundary no-op.
	Sections []types.Section
	// Optimistic is the locally swapped order installed before persistence.
	Optimistic []types.Section
	Moved      bool
	// Recovered is set when a write failed and the list was re-read.
	Recovered bool
}

type ToggleResult struct {
	Section   *types.Section
	Recovered bool
}

type Duplicate struct {
	OrderIndex int      `json:"order_index"`
	Names      []string `json:"names"`
}

type Manager struct {
	log   *logger.Logger
	repo  repos.SectionRepo
	store *Store
	mode  ReorderMode

	gate  atomic.Bool
	state atomic.Int32

	mu       sync.RWMutex
	hook     TransitionHook
	notifier ChangeNotifier
}

func NewManager(log *logger.Logger, repo repos.SectionRepo, store *Store, mode ReorderMode) *Manager {
	if mode == "" {
		mode = ReorderModeAtomic
	}
	return &Manager{
		log:   log.With("service", "SectionManager", "reorder_mode", string(mode)),
		repo:  repo,
		store: store,
		mode:  mode,
	}
}

func (m *Manager) WithTransitionHook(h TransitionHook) *Manager {
	m.mu.Lock()
	m.hook = h
	m.mu.Unlock()
	return m
}

func (m *Manager) WithNotifier(n ChangeNotifier) *Manager {
	m.mu.Lock()
	m.notifier = n
	m.mu.Unlock()
	return m
}

func (m *Manager) Store() *Store { return m.store }

func (m *Manager) Mode() ReorderMode { return m.mode }

func (m *Manager) State() State { return State(m.state.Load()) }

// ListSections reads all sections by ascending order_index and refreshes the store.
func (m *Manager) ListSections(ctx context.Context) ([]types.Section, error) {
	return m.store.Refresh(ctx)
}

// ToggleVisibility flips is_visible on one section. A failed write is logged
// and the store re-read; the result then carries Recovered and the stored row.
func (m *Manager) ToggleVisibility(ctx context.Context, id uuid.UUID) (*ToggleResult, error) {
	if id == uuid.Nil {
		return nil, errs.Invalid("id", "is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	current, err := m.repo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}

	updated, err := m.repo.SetVisibility(dbc, id, !current.IsVisible)
	if err != nil {
		m.log.Warn("Toggle visibility failed, reloading", "section_id", id.String(), "error", err)
		rows, rerr := m.store.Refresh(ctx)
		if rerr != nil {
			return nil, rerr
		}
		for i := range rows {
			if rows[i].ID == id {
				return &ToggleResult{Section: &rows[i], Recovered: true}, nil
			}
		}
		return nil, fmt.Errorf("section %s: %w", id, errs.ErrNotFound)
	}

	if _, rerr := m.store.Refresh(ctx); rerr != nil {
		m.log.Warn("Store refresh after toggle failed", "error", rerr)
	}
	m.notify(ctx, "section_visibility")
	return &ToggleResult{Section: updated}, nil
}

// MoveSection swaps the section at currentIndex with its neighbour in
// direction. Moves off either end return the list unchanged. Only one move
// may be in flight; others get ErrReorderInFlight.
func (m *Manager) MoveSection(ctx context.Context, currentIndex int, direction Direction) (*MoveResult, error) {
	if direction != DirectionUp && direction != DirectionDown {
		return nil, errs.OneOf("direction", string(direction), string(DirectionUp), string(DirectionDown))
	}
	if !m.gate.CompareAndSwap(false, true) {
		m.log.Debug("Move rejected, reorder in flight", "index", currentIndex, "direction", string(direction))
		return nil, ErrReorderInFlight
	}
	defer func() {
		m.state.Store(int32(StateIdle))
		m.gate.Store(false)
	}()

	// Indexes refer to the table as it is now, not to a cached snapshot.
	current, err := m.store.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if currentIndex < 0 || currentIndex >= len(current) {
		return nil, errs.Invalid("index", "must be between 0 and %d", len(current)-1)
	}

	targetIndex := currentIndex - 1
	if direction == DirectionDown {
		targetIndex = currentIndex + 1
	}
	if targetIndex < 0 || targetIndex >= len(current) {
		return &MoveResult{Sections: current}, nil
	}

	if err := m.transition(StateSwapping); err != nil {
		return nil, err
	}
	optimistic := types.CloneSections(current)
	optimistic[currentIndex], optimistic[targetIndex] = optimistic[targetIndex], optimistic[currentIndex]
	m.store.Replace(optimistic)

	a, b := current[currentIndex], current[targetIndex]
	writeErr := m.persistSwap(ctx, a, b)
	if err := m.transition(StateReconciling); err != nil {
		return nil, err
	}

	res := &MoveResult{Optimistic: optimistic, Moved: true, Recovered: writeErr != nil}
	if writeErr != nil {
		m.log.Warn("Section reorder write failed, reloading",
			"section_a", a.Name,
			"section_b", b.Name,
			"error", writeErr,
		)
	}

	rows, rerr := m.store.Refresh(ctx)
	if ierr := m.transition(StateIdle); ierr != nil {
		return nil, ierr
	}
	m.notify(ctx, "section_order")
	if rerr != nil {
		return nil, rerr
	}
	res.Sections = rows
	return res, nil
}

// persistSwap gives a the order_index of b and b that of a. It leaves the
// state at PersistingFirst or PersistingSecond, wherever it stopped.
func (m *Manager) persistSwap(ctx context.Context, a, b types.Section) error {
	if err := m.transition(StatePersistingFirst); err != nil {
		return err
	}
	if m.mode == ReorderModeSequential {
		dbc := dbctx.Context{Ctx: ctx}
		if _, err := m.repo.SetOrderIndex(dbc, a.ID, b.OrderIndex); err != nil {
			return err
		}
		if err := m.transition(StatePersistingSecond); err != nil {
			return err
		}
		_, err := m.repo.SetOrderIndex(dbc, b.ID, a.OrderIndex)
		return err
	}
	return m.repo.Transaction(ctx, func(dbc dbctx.Context) error {
		if _, err := m.repo.SetOrderIndex(dbc, a.ID, b.OrderIndex); err != nil {
			return err
		}
		if err := m.transition(StatePersistingSecond); err != nil {
			return err
		}
		_, err := m.repo.SetOrderIndex(dbc, b.ID, a.OrderIndex)
		return err
	})
}

// CheckOrderIntegrity reports order_index values shared by more than one section.
func (m *Manager) CheckOrderIntegrity(ctx context.Context) ([]Duplicate, error) {
	rows, err := m.repo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	byIndex := map[int][]string{}
	for _, r := range rows {
		byIndex[r.OrderIndex] = append(byIndex[r.OrderIndex], r.Name)
	}
	var out []Duplicate
	for idx, names := range byIndex {
		if len(names) > 1 {
			sort.Strings(names)
			out = append(out, Duplicate{OrderIndex: idx, Names: names})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}


func (m *Manager) transition(to State) error {
	from := State(m.state.Load())
	if !CanTransition(from, to) {
		m.log.Error("Invalid reorder transition", "from", from.String(), "to", to.String())
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.state.Store(int32(to))

	m.mu.RLock()
	hook := m.hook
	m.mu.RUnlock()
	if hook != nil {
		hook(from, to)
	}
	return nil
}

func (m *Manager) notify(ctx context.Context, reason string) {
	m.mu.RLock()
	n := m.notifier
	m.mu.RUnlock()
	if n != nil {
		n.SectionsChanged(ctx, reason)
	}
}
