package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"mall-pay-api/internal/dal"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)
	dal.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { dal.RedisClient = nil })
	return mr
}

func TestAcquireMutualExclusion(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	// 并发抢同一把锁，TTL 内恰好一个赢家
	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ok, err := Acquire(ctx, "order:ORD1", 30*time.Second, "owner-"+string(rune('a'+n)))
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	locked, err := IsLocked(ctx, "order:ORD1")
	if err != nil {
		t.Fatal(err)
	}
	if !locked {
		t.Error("lock should be held after a successful acquire")
	}
}

func TestReleaseOwnerGuard(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	ok, err := Acquire(ctx, "order:ORD2", 30*time.Second, "owner-a")
	if err != nil || !ok {
		t.Fatalf("acquire failed: ok=%v err=%v", ok, err)
	}

	// 非持有者释放无效且无副作用
	released, err := Release(ctx, "order:ORD2", "owner-b")
	if err != nil {
		t.Fatal(err)
	}
	if released {
		t.Fatal("non-owner must not release the lock")
	}
	if locked, _ := IsLocked(ctx, "order:ORD2"); !locked {
		t.Fatal("lock must survive a non-owner release attempt")
	}

	released, err = Release(ctx, "order:ORD2", "owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if !released {
		t.Fatal("owner release must succeed")
	}

	// 键不存在视为释放成功
	released, err = Release(ctx, "order:ORD2", "owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if !released {
		t.Error("releasing a missing key should report success")
	}
}

func TestAcquireAfterExpiry(t *testing.T) {
	mr := newTestRedis(t)
	ctx := context.Background()

	ok, err := Acquire(ctx, "order:ORD3", 5*time.Second, "owner-a")
	if err != nil || !ok {
		t.Fatalf("acquire failed: ok=%v err=%v", ok, err)
	}
	if ok, _ := Acquire(ctx, "order:ORD3", 5*time.Second, "owner-b"); ok {
		t.Fatal("second acquire must fail while TTL is live")
	}

	mr.FastForward(6 * time.Second)

	ok, err = Acquire(ctx, "order:ORD3", 5*time.Second, "owner-b")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("acquire should succeed after the previous holder expired")
	}
}

func TestWithReleasesOnEveryExit(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	wantErr := errors.New("boom")
	err := With(ctx, "order:ORD4", 30*time.Second, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("fn error must propagate, got %v", err)
	}
	if locked, _ := IsLocked(ctx, "order:ORD4"); locked {
		t.Fatal("lock must be released after fn returns an error")
	}

	// 锁被他人持有时快速失败
	if ok, _ := Acquire(ctx, "order:ORD4", 30*time.Second, "holder"); !ok {
		t.Fatal("setup acquire failed")
	}
	err = With(ctx, "order:ORD4", 30*time.Second, func() error { return nil })
	if !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}
}
