package storewatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/kanban/pkg/kanban"
)

func TestPlugin_ReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []kanban.List, 4)

	k, err := kanban.New(context.Background(), kanban.Config{},
		kanban.WithStore(kanban.NewFileStore(dir)),
		WithStoreWatcher(Config{
			DebounceDelay: 10 * time.Millisecond,
			OnChange:      func(lists []kanban.List) { changes <- lists },
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := k.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer k.Stop()

	// Another session sharing the directory.
	other, err := kanban.New(context.Background(), kanban.Config{},
		kanban.WithStore(kanban.NewFileStore(dir)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	other.Dispatch(kanban.AddList{Title: "From elsewhere"})

	select {
	case lists := <-changes:
		if len(lists) != 3 || lists[2].Title != "From elsewhere" {
			t.Errorf("OnChange lists = %+v", lists)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []kanban.List, 1)

	k, err := kanban.New(context.Background(), kanban.Config{},
		kanban.WithStore(kanban.NewFileStore(dir)),
		WithStoreWatcher(Config{
			DebounceDelay: 10 * time.Millisecond,
			OnChange:      func(lists []kanban.List) { changes <- lists },
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := k.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer k.Stop()

	if err := kanban.NewFileStore(dir).Set(context.Background(), "other", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	select {
	case lists := <-changes:
		t.Errorf("unexpected change: %+v", lists)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPlugin_DisabledForMemoryStore(t *testing.T) {
	p := New(Config{OnChange: func([]kanban.List) {}})
	if err := p.Initialize(context.Background(), kanban.PluginConfig{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPlugin_RequiresCallback(t *testing.T) {
	p := New(DefaultConfig())
	err := p.Initialize(context.Background(), kanban.PluginConfig{StorePath: "/tmp/x.json"})
	if !errors.Is(err, ErrNoCallback) {
		t.Errorf("Initialize() error = %v, want ErrNoCallback", err)
	}
}
