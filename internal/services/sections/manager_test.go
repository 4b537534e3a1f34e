package sections

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/platform/errs"
)

func TestMoveSectionScenarioHeroAboutSkills(t *testing.T) {
	for _, mode := range []ReorderMode{ReorderModeAtomic, ReorderModeSequential} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode, "Hero", "About", "Skills")
			ctx := context.Background()

			var optimisticSeen []string
			f.manager.WithTransitionHook(func(from, to State) {
				if to == StatePersistingFirst {
					optimisticSeen = names(f.store.Snapshot().Sections)
				}
			})

			res, err := f.manager.MoveSection(ctx, 1, DirectionDown)
			if err != nil {
				t.Fatalf("MoveSection: %v", err)
			}
			want := []string{"Hero", "Skills", "About"}
			if !equalStrings(names(res.Optimistic), want) {
				t.Fatalf("optimistic: want=%v got=%v", want, names(res.Optimistic))
			}
			if !equalStrings(optimisticSeen, want) {
				t.Fatalf("store before persistence: want=%v got=%v", want, optimisticSeen)
			}
			if !equalStrings(names(res.Sections), want) {
				t.Fatalf("reconciled: want=%v got=%v", want, names(res.Sections))
			}
			if res.Recovered {
				t.Fatalf("Recovered: want=false got=true")
			}

			got := f.persisted(t)
			if got["Hero"] != 0 || got["Skills"] != 1 || got["About"] != 2 {
				t.Fatalf("persisted: want Hero=0 Skills=1 About=2 got=%v", got)
			}
			if f.manager.State() != StateIdle {
				t.Fatalf("state: want=%s got=%s", StateIdle, f.manager.State())
			}
		})
	}
}

func TestMoveSectionTransitions(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")

	var got []State
	f.manager.WithTransitionHook(func(from, to State) { got = append(got, to) })

	if _, err := f.manager.MoveSection(context.Background(), 0, DirectionDown); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	want := []State{StateSwapping, StatePersistingFirst, StatePersistingSecond, StateReconciling, StateIdle}
	if len(got) != len(want) {
		t.Fatalf("transitions: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transition %d: want=%s got=%s", i, want[i], got[i])
		}
	}
}

func TestMoveSectionBoundariesAreNoOps(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")
	ctx := context.Background()

	transitions := 0
	f.manager.WithTransitionHook(func(from, to State) { transitions++ })

	cases := []struct {
		index int
		dir   Direction
	}{
		{0, DirectionUp},
		{2, DirectionDown},
	}
	for _, tc := range cases {
		res, err := f.manager.MoveSection(ctx, tc.index, tc.dir)
		if err != nil {
			t.Fatalf("MoveSection(%d,%s): %v", tc.index, tc.dir, err)
		}
		if res.Moved {
			t.Fatalf("MoveSection(%d,%s): want no-op", tc.index, tc.dir)
		}
		if want := []string{"Hero", "About", "Skills"}; !equalStrings(names(res.Sections), want) {
			t.Fatalf("MoveSection(%d,%s): want=%v got=%v", tc.index, tc.dir, want, names(res.Sections))
		}
	}
	if transitions != 0 {
		t.Fatalf("transitions on boundary: want=0 got=%d", transitions)
	}
	if got := f.persisted(t); got["Hero"] != 0 || got["About"] != 1 || got["Skills"] != 2 {
		t.Fatalf("persisted changed: got=%v", got)
	}
}

func TestMoveSectionRejectsOutOfRangeAndBadDirection(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	ctx := context.Background()

	if _, err := f.manager.MoveSection(ctx, 5, DirectionUp); !errs.IsValidation(err) {
		t.Fatalf("index 5: want ValidationError got=%v", err)
	}
	if _, err := f.manager.MoveSection(ctx, -1, DirectionDown); !errs.IsValidation(err) {
		t.Fatalf("index -1: want ValidationError got=%v", err)
	}
	if _, err := f.manager.MoveSection(ctx, 0, Direction("sideways")); !errs.IsValidation(err) {
		t.Fatalf("direction: want ValidationError got=%v", err)
	}
	if _, err := ParseDirection(" UP "); err != nil {
		t.Fatalf("ParseDirection: %v", err)
	}
}

func TestMoveSectionGateRejectsConcurrentMove(t *testing.T) {
	f := newFixture(t, ReorderModeSequential, "Hero", "About", "Skills", "Projects")
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.manager.WithTransitionHook(func(from, to State) {
		if to == StatePersistingFirst {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := f.manager.MoveSection(ctx, 0, DirectionDown)
		done <- err
	}()

	<-entered
	if _, err := f.manager.MoveSection(ctx, 2, DirectionDown); !errors.Is(err, ErrReorderInFlight) {
		t.Fatalf("second move: want ErrReorderInFlight got=%v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first move: %v", err)
	}

	got := f.persisted(t)
	if got["Skills"] != 2 || got["Projects"] != 3 {
		t.Fatalf("rejected move persisted: got=%v", got)
	}
	if got["About"] != 0 || got["Hero"] != 1 {
		t.Fatalf("first move: want About=0 Hero=1 got=%v", got)
	}

	if _, err := f.manager.MoveSection(ctx, 2, DirectionDown); err != nil {
		t.Fatalf("move after release: %v", err)
	}
}

func TestMoveSectionWriteFailureRecoversByReload(t *testing.T) {
	t.Run("atomic rolls back", func(t *testing.T) {
		f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")
		f.repo.failOrderCall = 2

		var got []State
		f.manager.WithTransitionHook(func(from, to State) { got = append(got, to) })

		res, err := f.manager.MoveSection(context.Background(), 0, DirectionDown)
		if err != nil {
			t.Fatalf("MoveSection: %v", err)
		}
		if !res.Recovered {
			t.Fatalf("Recovered: want=true")
		}
		if want := []string{"Hero", "About", "Skills"}; !equalStrings(names(res.Sections), want) {
			t.Fatalf("reloaded: want=%v got=%v", want, names(res.Sections))
		}
		if p := f.persisted(t); p["Hero"] != 0 || p["About"] != 1 {
			t.Fatalf("persisted after rollback: got=%v", p)
		}
		if got[len(got)-2] != StateReconciling || got[len(got)-1] != StateIdle {
			t.Fatalf("transitions: got=%v", got)
		}
	})

	t.Run("sequential first write fails", func(t *testing.T) {
		f := newFixture(t, ReorderModeSequential, "Hero", "About", "Skills")
		f.repo.failOrderCall = 1

		var got []State
		f.manager.WithTransitionHook(func(from, to State) { got = append(got, to) })

		res, err := f.manager.MoveSection(context.Background(), 0, DirectionDown)
		if err != nil {
			t.Fatalf("MoveSection: %v", err)
		}
		if !res.Recovered {
			t.Fatalf("Recovered: want=true")
		}
		want := []State{StateSwapping, StatePersistingFirst, StateReconciling, StateIdle}
		if len(got) != len(want) {
			t.Fatalf("transitions: want=%v got=%v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("transition %d: want=%s got=%s", i, want[i], got[i])
			}
		}
		if want := []string{"Hero", "About", "Skills"}; !equalStrings(names(res.Sections), want) {
			t.Fatalf("reloaded: want=%v got=%v", want, names(res.Sections))
		}
	})

	t.Run("sequential second write fails leaves duplicate", func(t *testing.T) {
		f := newFixture(t, ReorderModeSequential, "Hero", "About", "Skills")
		f.repo.failOrderCall = 2

		res, err := f.manager.MoveSection(context.Background(), 0, DirectionDown)
		if err != nil {
			t.Fatalf("MoveSection: %v", err)
		}
		if !res.Recovered {
			t.Fatalf("Recovered: want=true")
		}
		dups, err := f.manager.CheckOrderIntegrity(context.Background())
		if err != nil {
			t.Fatalf("CheckOrderIntegrity: %v", err)
		}
		if len(dups) != 1 || dups[0].OrderIndex != 1 || !equalStrings(dups[0].Names, []string{"About", "Hero"}) {
			t.Fatalf("duplicates: got=%+v", dups)
		}
	})
}

func TestMoveSectionPreservesPermutation(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, DefaultOrder...)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	before := sortedValues(f.persisted(t))
	for i := 0; i < 40; i++ {
		dir := DirectionUp
		if rng.Intn(2) == 0 {
			dir = DirectionDown
		}
		if _, err := f.manager.MoveSection(ctx, rng.Intn(len(DefaultOrder)), dir); err != nil {
			t.Fatalf("MoveSection #%d: %v", i, err)
		}
	}
	after := sortedValues(f.persisted(t))
	if len(before) != len(after) {
		t.Fatalf("row count changed: before=%v after=%v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("order_index set changed: before=%v after=%v", before, after)
		}
	}
	dups, err := f.manager.CheckOrderIntegrity(ctx)
	if err != nil || len(dups) != 0 {
		t.Fatalf("duplicates: got=%+v err=%v", dups, err)
	}
}

func TestToggleVisibilityRoundTrip(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About")
	ctx := context.Background()
	notifier := &recordingNotifier{}
	f.manager.WithNotifier(notifier)
	id := f.seeded[0].ID

	res, err := f.manager.ToggleVisibility(ctx, id)
	if err != nil {
		t.Fatalf("ToggleVisibility: %v", err)
	}
	if res.Section.IsVisible {
		t.Fatalf("first toggle: want hidden")
	}
	page := Render(f.store.Snapshot())
	if want := []string{"About"}; !equalStrings(blockNames(page), want) {
		t.Fatalf("rendered after hide: want=%v got=%v", want, blockNames(page))
	}

	res, err = f.manager.ToggleVisibility(ctx, id)
	if err != nil {
		t.Fatalf("ToggleVisibility again: %v", err)
	}
	if !res.Section.IsVisible {
		t.Fatalf("second toggle: want visible")
	}
	if notifier.count() != 2 {
		t.Fatalf("notifications: want=2 got=%d", notifier.count())
	}

	if _, err := f.manager.ToggleVisibility(ctx, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown id: want ErrNotFound got=%v", err)
	}
}

func TestToggleVisibilityWriteFailureRecovers(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero")
	f.repo.failToggle = true

	res, err := f.manager.ToggleVisibility(context.Background(), f.seeded[0].ID)
	if err != nil {
		t.Fatalf("ToggleVisibility: %v", err)
	}
	if !res.Recovered || !res.Section.IsVisible {
		t.Fatalf("recovered: want visible stored row got=%+v recovered=%v", res.Section, res.Recovered)
	}
}

func TestParseReorderMode(t *testing.T) {
	cases := map[string]ReorderMode{"": ReorderModeAtomic, "ATOMIC": ReorderModeAtomic, "sequential": ReorderModeSequential}
	for in, want := range cases {
		got, err := ParseReorderMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseReorderMode(%q): want=%q got=%q err=%v", in, want, got, err)
		}
	}
	if _, err := ParseReorderMode("eventual"); !errs.IsValidation(err) {
		t.Fatalf("ParseReorderMode(eventual): want ValidationError got=%v", err)
	}
}

func TestMoveSectionIgnoresPageRefreshThatReadBeforeIt(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")
	ctx := context.Background()
	if _, err := f.store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	read := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.repo.afterList = func() {
		once.Do(func() {
			close(read)
			<-release
		})
	}

	pageDone := make(chan []string, 1)
	go func() {
		rows, _ := f.store.Refresh(ctx)
		pageDone <- names(rows)
	}()
	<-read

	res, err := f.manager.MoveSection(ctx, 0, DirectionDown)
	if err != nil {
		t.Fatalf("first move: %v", err)
	}
	want := []string{"About", "Hero", "Skills"}
	if !equalStrings(names(res.Sections), want) {
		t.Fatalf("first move reconciled: want=%v got=%v", want, names(res.Sections))
	}

	close(release)
	if got := <-pageDone; !equalStrings(got, want) {
		t.Fatalf("delayed page refresh: want=%v got=%v", want, got)
	}
	if got := names(f.store.Snapshot().Sections); !equalStrings(got, want) {
		t.Fatalf("store after delayed refresh: want=%v got=%v", want, got)
	}

	res, err = f.manager.MoveSection(ctx, 0, DirectionDown)
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	want = []string{"Hero", "About", "Skills"}
	if !equalStrings(names(res.Sections), want) {
		t.Fatalf("second move reconciled: want=%v got=%v", want, names(res.Sections))
	}
	got := f.persisted(t)
	if got["Hero"] != 0 || got["About"] != 1 || got["Skills"] != 2 {
		t.Fatalf("persisted: want Hero=0 About=1 Skills=2 got=%v", got)
	}
}

func TestMoveSectionReadsTableNotSnapshot(t *testing.T) {
	f := newFixture(t, ReorderModeAtomic, "Hero", "About", "Skills")
	ctx := context.Background()
	if _, err := f.store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// Another instance swaps Hero and About behind this store's back.
	if err := f.db.Model(&f.seeded[0]).Update("order_index", 1).Error; err != nil {
		t.Fatalf("update Hero: %v", err)
	}
	if err := f.db.Model(&f.seeded[1]).Update("order_index", 0).Error; err != nil {
		t.Fatalf("update About: %v", err)
	}

	res, err := f.manager.MoveSection(ctx, 0, DirectionDown)
	if err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	want := []string{"Hero", "About", "Skills"}
	if !equalStrings(names(res.Sections), want) {
		t.Fatalf("reconciled: want=%v got=%v", want, names(res.Sections))
	}
}
