package memory

import (
	"context"
	"testing"
)

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, found, err := s.Get(ctx, "lists"); found || err != nil {
		t.Fatalf("Get on empty store = found %v, err %v", found, err)
	}

	if err := s.Set(ctx, "lists", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "lists", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, found, err := s.Get(ctx, "lists")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if v != `[{"id":"1"}]` {
		t.Errorf("value = %s, want last write", v)
	}
}
