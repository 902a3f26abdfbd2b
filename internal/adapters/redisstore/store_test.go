package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, prefix string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := Dial(context.Background(), &redis.Options{Addr: mr.Addr()}, prefix)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStore_MissingKey(t *testing.T) {
	s, _ := newTestStore(t, "kanban:")

	v, found, err := s.Get(context.Background(), "lists")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || v != "" {
		t.Errorf("Get = %q, %v; want empty, false", v, found)
	}
}

func TestStore_SetUsesPrefixAndNoTTL(t *testing.T) {
	s, mr := newTestStore(t, "kanban:")
	ctx := context.Background()

	if err := s.Set(ctx, "lists", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := mr.Get("kanban:lists")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if raw != `[{"id":"1"}]` {
		t.Errorf("raw = %s", raw)
	}
	if ttl := mr.TTL("kanban:lists"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}

	v, found, err := s.Get(ctx, "lists")
	if err != nil || !found || v != raw {
		t.Errorf("Get = %q, %v, %v", v, found, err)
	}
}

func TestStore_ReadError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	s, err := Dial(context.Background(), &redis.Options{Addr: mr.Addr(), MaxRetries: -1}, "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	mr.Close()

	if _, _, err := s.Get(context.Background(), "lists"); err == nil {
		t.Error("expected error after server shutdown")
	}
}

func TestDial_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := Dial(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, ""); err == nil {
		t.Error("expected dial error")
	}
}

func TestDialRetry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := DialRetry(context.Background(), &redis.Options{Addr: mr.Addr()}, "", 3, time.Millisecond)
	if err != nil {
		t.Fatalf("DialRetry: %v", err)
	}
	_ = s.Close()
}

func TestDialRetry_GivesUp(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err = DialRetry(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, "", 3, 5*time.Millisecond)
	if err == nil {
		t.Fatal("expected error")
	}
	// Two waits: ~5ms then ~10ms, each within ±20%.
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("gave up after %v, want backoff between attempts", elapsed)
	}
}

func TestBackoff_StopsOnCancel(t *testing.T) {
	b := newBackoff(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("wait = %v, want context.Canceled", err)
	}
}

func TestBackoff_Caps(t *testing.T) {
	b := newBackoff(time.Millisecond, 3*time.Millisecond)
	for i := 0; i < 3; i++ {
		_ = b.wait(context.Background())
	}
	if b.current != 3*time.Millisecond {
		t.Errorf("current = %v, want cap 3ms", b.current)
	}
}
