package sections

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is a copy of the store; callers may keep and modify it.
type Snapshot struct {
	Sections []types.Section
	Status   Status
	Err      error
	Version  uint64
	LoadedAt time.Time
}

// Store holds the process-wide ordered section list shared by the Manager
// and the Composer.
type Store struct {
	log  *logger.Logger
	repo repos.SectionRepo

	mu       sync.RWMutex
	sections []types.Section
	status   Status
	err      error
	version  uint64
	loadedAt time.Time

	// reads are ticketed; a read older than the last installed list is dropped
	ticket    uint64
	installed uint64
}

func NewStore(log *logger.Logger, repo repos.SectionRepo) *Store {
	return &Store{
		log:    log.With("service", "SectionStore"),
		repo:   repo,
		status: StatusLoading,
	}
}

// Refresh reads the registry by ascending order_index. On failure the
// previous sections are kept and the status becomes failed. A read that
// started before the last installed list (a Replace or a newer Refresh)
// is discarded and the current sections are returned instead.
func (s *Store) Refresh(ctx context.Context) ([]types.Section, error) {
	s.mu.Lock()
	s.ticket++
	ticket := s.ticket
	s.mu.Unlock()

	rows, err := s.repo.List(dbctx.Context{Ctx: ctx})

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.installed {
		s.log.Debug("Discarding stale section read", "ticket", ticket, "installed", s.installed)
		if err != nil {
			return nil, err
		}
		return types.CloneSections(s.sections), nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		s.log.Warn("Section registry fetch failed", "error", err)
		return nil, err
	}
	s.sections = types.CloneSections(rows)
	s.status = StatusReady
	s.err = nil
	s.version++
	s.installed = ticket
	s.loadedAt = time.Now().UTC()
	return types.CloneSections(rows), nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Sections: types.CloneSections(s.sections),
		Status:   s.status,
		Err:      s.err,
		Version:  s.version,
		LoadedAt: s.loadedAt,
	}
}

// Replace installs a local ordering ahead of persistence.
func (s *Store) Replace(sections []types.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticket++
	s.installed = s.ticket
	s.sections = types.CloneSections(sections)
	s.status = StatusReady
	s.err = nil
	s.version++
}
