package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CachedUserDirectory, *fakeUserRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newFakeUserRepo()
	return NewCachedUserDirectory(repo, client, 30*time.Second), repo, mr
}

func seedUser(t *testing.T, dir UserRepository, username, email string) {
	t.Helper()
	if _, err := dir.Create(context.Background(), NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Fullname:     username,
	}); err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
}

func TestCachedUserDirectory_ListHitsRepoOnce(t *testing.T) {
	dir, repo, _ := newTestCache(t)
	seedUser(t, dir, "alice", "alice@example.com")

	ctx := context.Background()
	first, err := dir.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	second, err := dir.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1", repo.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || first[0].Username != second[0].Username {
		t.Fatalf("cached listing differs: %+v vs %+v", first, second)
	}
}

func TestCachedUserDirectory_CreateInvalidates(t *testing.T) {
	dir, repo, _ := newTestCache(t)
	seedUser(t, dir, "alice", "alice@example.com")

	ctx := context.Background()
	if _, err := dir.ListActive(ctx); err != nil {
		t.Fatalf("ListActive error: %v", err)
	}

	seedUser(t, dir, "bob", "bob@example.com")

	items, err := dir.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("listing has %d items after registration, want 2", len(items))
	}
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times, want 2 (cache invalidated once)", repo.listCalls)
	}
}

func TestCachedUserDirectory_TTLExpiry(t *testing.T) {
	dir, repo, mr := newTestCache(t)
	seedUser(t, dir, "alice", "alice@example.com")

	ctx := context.Background()
	if _, err := dir.ListActive(ctx); err != nil {
		t.Fatalf("ListActive error: %v", err)
	}

	mr.FastForward(time.Minute)

	if _, err := dir.ListActive(ctx); err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times after TTL expiry, want 2", repo.listCalls)
	}
}

func TestCachedUserDirectory_CorruptCacheFallsThrough(t *testing.T) {
	dir, repo, mr := newTestCache(t)
	seedUser(t, dir, "alice", "alice@example.com")

	mr.Set(activeUsersCacheKey, "{not json")

	items, err := dir.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(items) != 1 || repo.listCalls != 1 {
		t.Fatalf("corrupt cache not bypassed: items=%d calls=%d", len(items), repo.listCalls)
	}
}
