package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGetDel(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []int{1, 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got []int
	found, err := c.Get(ctx, "k", &got)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if len(got) != 2 || got[1] != 2 {
		t.Fatalf("unexpected value: %v", got)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if found, _ := c.Get(ctx, "k", &got); found {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", "v", time.Second)
	now = now.Add(2 * time.Second)

	var v string
	if found, _ := c.Get(ctx, "k", &v); found {
		t.Fatalf("expected expired entry to miss")
	}
}
