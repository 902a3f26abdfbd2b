package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/kanban/internal/domain"
)

var engineNow = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

// spySaver records every list sequence handed to Save.
type spySaver struct {
	mu    sync.Mutex
	saves [][]domain.List
	err   error
}

func (s *spySaver) Save(ctx context.Context, lists []domain.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("save without deadline")
	}
	s.saves = append(s.saves, lists)
	return s.err
}

func (s *spySaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *spySaver) last() []domain.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[len(s.saves)-1]
}

func newTestEngine(saver Saver, logger *mockLogger) *Engine {
	rules := domain.DefaultRules()
	rules.Now = func() time.Time { return engineNow }
	return NewEngine(domain.DefaultBoard(engineNow), saver, EngineConfig{Rules: rules}, logger)
}

func TestEngine_MutationsPersist(t *testing.T) {
	saver := &spySaver{}
	e := newTestEngine(saver, &mockLogger{})
	itemID := e.State().Lists[0].Items[0].ID

	steps := []struct {
		action    domain.Action
		wantLists []string
	}{
		{domain.AddList{Title: "Three"}, []string{"1", "2", "3"}},
		{domain.RemoveList{ID: "2"}, []string{"1", "3"}},
		{domain.UpdateList{ID: "1", Patch: domain.ListPatch{Title: domain.Some("First")}}, []string{"3", "1"}},
		{domain.UpdateItem{ID: itemID, Patch: domain.ItemPatch{Archived: domain.Some(true)}}, []string{"3", "1"}},
	}

	for i, st := range steps {
		b := e.Dispatch(st.action)
		if saver.count() != i+1 {
			t.Fatalf("after %s: saves = %d, want %d", domain.TypeOf(st.action), saver.count(), i+1)
		}
		if !reflect.DeepEqual(saver.last(), b.Lists) {
			t.Errorf("after %s: saved lists differ from returned board", domain.TypeOf(st.action))
		}
		var ids []string
		for _, l := range b.Lists {
			ids = append(ids, l.ID)
		}
		if !reflect.DeepEqual(ids, st.wantLists) {
			t.Errorf("after %s: list order = %v, want %v", domain.TypeOf(st.action), ids, st.wantLists)
		}
	}

	b := e.State()
	if b.Lists[1].Title != "First" {
		t.Errorf("list 1 title = %q, want First", b.Lists[1].Title)
	}
	items := b.Lists[1].Items
	if got := items[len(items)-1]; got.ID != itemID || !got.Archived {
		t.Errorf("updated item = %+v, want archived %s at end", got, itemID)
	}
}

func TestEngine_NoOpsDoNotPersist(t *testing.T) {
	saver := &spySaver{}
	e := newTestEngine(saver, &mockLogger{})
	before := e.State()

	actions := []domain.Action{
		domain.RemoveList{ID: "missing"},
		domain.UpdateList{ID: "missing", Patch: domain.ListPatch{Title: domain.Some("x")}},
		domain.UpdateItem{ID: "missing", Patch: domain.ItemPatch{Title: domain.Some("x")}},
		domain.SetDragging{Dragging: true},
		domain.SetClickedItem{Item: &domain.ClickedItem{ItemID: "a"}},
		domain.SetItemDragTarget{Target: &domain.ItemDragTarget{ListID: "1"}},
	}
	for _, a := range actions {
		e.Dispatch(a)
	}

	if saver.count() != 0 {
		t.Errorf("saves = %d, want 0", saver.count())
	}
	after := e.State()
	if !reflect.DeepEqual(after.Lists, before.Lists) {
		t.Error("lists changed by no-op actions")
	}
	if !after.Dragging || after.ClickedItem == nil || after.ItemDragTarget == nil {
		t.Errorf("transient fields not applied: %+v", after)
	}
}

func TestEngine_ReduceAbsentIDReturnsEqualBoard(t *testing.T) {
	e := newTestEngine(&spySaver{}, &mockLogger{})
	b := e.State()

	got := e.Reduce(b, domain.RemoveList{ID: "nope"})
	if !reflect.DeepEqual(got, b) {
		t.Error("Reduce with absent id changed the board")
	}
}

func TestEngine_SaveErrorIsLogged(t *testing.T) {
	saver := &spySaver{err: errors.New("store down")}
	logger := &mockLogger{}
	e := newTestEngine(saver, logger)

	b := e.Dispatch(domain.AddList{Title: "Three"})

	if len(b.Lists) != 3 {
		t.Errorf("lists = %d, want 3 despite save failure", len(b.Lists))
	}
	if logger.errorCount() != 1 {
		t.Errorf("logged errors = %d, want 1", logger.errorCount())
	}
}

type unknownAction struct{ domain.AddList }

func TestEngine_UnknownActionPanics(t *testing.T) {
	e := newTestEngine(&spySaver{}, &mockLogger{})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, domain.ErrUnhandledAction) {
			t.Errorf("recover() = %v, want ErrUnhandledAction", r)
		}
		// The engine lock must not be held after the panic.
		_ = e.State()
	}()
	e.Dispatch(unknownAction{})
}

func TestEngine_Subscribe(t *testing.T) {
	e := newTestEngine(&spySaver{}, &mockLogger{})

	var got []domain.Board
	unsubscribe := e.Subscribe(func(b domain.Board) { got = append(got, b) })

	e.Dispatch(domain.SetDragging{Dragging: true})
	e.Dispatch(domain.AddList{Title: "x"})
	unsubscribe()
	e.Dispatch(domain.SetDragging{Dragging: false})

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if !got[0].Dragging || len(got[1].Lists) != 3 {
		t.Errorf("unexpected snapshots: %+v", got)
	}
}

func TestEngine_ListenerMayDispatch(t *testing.T) {
	e := newTestEngine(&spySaver{}, &mockLogger{})

	e.Subscribe(func(b domain.Board) {
		if b.Dragging {
			e.Dispatch(domain.SetDragging{Dragging: false})
		}
	})
	e.Dispatch(domain.SetDragging{Dragging: true})

	if e.State().Dragging {
		t.Error("listener dispatch not applied")
	}
}

func TestEngine_ConcurrentDispatch(t *testing.T) {
	saver := &spySaver{}
	e := newTestEngine(saver, &mockLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Dispatch(domain.AddList{Title: "c"})
		}()
	}
	wg.Wait()

	if n := len(e.State().Lists); n != 52 {
		t.Errorf("lists = %d, want 52", n)
	}
	if saver.count() != 50 {
		t.Errorf("saves = %d, want 50", saver.count())
	}
}

func TestEngine_WithGatewayRoundTrip(t *testing.T) {
	store := newSpyStore()
	g := newTestGateway(store, false)
	ctx := context.Background()

	initial, err := g.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e := NewEngine(initial, g, EngineConfig{}, &mockLogger{})
	e.Dispatch(domain.AddList{Title: "Persisted"})
	e.Dispatch(domain.SetDragging{Dragging: true})

	if store.sets != 1 {
		t.Errorf("store writes = %d, want 1", store.sets)
	}
	reloaded, err := g.Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !reflect.DeepEqual(reloaded.Lists, e.State().Lists) {
		t.Error("reloaded lists differ from engine state")
	}
	if reloaded.Dragging {
		t.Error("transient dragging flag was persisted")
	}
}
