package lobby

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func exerciseDirectory(t *testing.T, d Directory) {
	t.Helper()
	ctx := context.Background()
	ok, err := d.Reserve(ctx, "12345")
	if err != nil || !ok {
		t.Fatalf("first reserve: %v %v", ok, err)
	}
	ok, err = d.Reserve(ctx, "12345")
	if err != nil || ok {
		t.Fatalf("second reserve should fail: %v %v", ok, err)
	}
	if err := d.Release(ctx, "12345"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = d.Reserve(ctx, "12345")
	if err != nil || !ok {
		t.Fatalf("reserve after release: %v %v", ok, err)
	}
}

func TestMemoryDirectory(t *testing.T) {
	d := NewMemoryDirectory()
	exerciseDirectory(t, d)
	if d.Len() != 1 {
		t.Fatalf("expected one reservation, got %d", d.Len())
	}
}

func TestRedisDirectory(t *testing.T) {
	_, rdb := newTestRedis(t)
	exerciseDirectory(t, NewRedisDirectory(rdb, time.Hour))
}

func TestRedisDirectoryExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	d := NewRedisDirectory(rdb, time.Minute)
	ctx := context.Background()

	if ok, err := d.Reserve(ctx, "AbC12"); err != nil || !ok {
		t.Fatalf("reserve: %v %v", ok, err)
	}
	if ttl := mr.TTL("chess:game:abc12"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
	if ok, _ := d.Reserve(ctx, "abc12"); ok {
		t.Fatalf("identifiers should be case-insensitive")
	}
	mr.FastForward(2 * time.Minute)
	if ok, err := d.Reserve(ctx, "abc12"); err != nil || !ok {
		t.Fatalf("expired identifier should be free: %v %v", ok, err)
	}
}

func TestDialRedis(t *testing.T) {
	mr, _ := newTestRedis(t)
	rdb, err := DialRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	_ = rdb.Close()

	if _, err := DialRedis(context.Background(), "http://nope"); err == nil {
		t.Fatalf("expected error for bad scheme")
	}
}
