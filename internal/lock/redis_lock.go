package lock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"mall-pay-api/internal/dal"
)

// ErrNotAcquired 锁已被其他持有者占用
var ErrNotAcquired = errors.New("lock not acquired")

// Record 锁记录，状态只存在于共享 Redis 中，进程内不做任何镜像
type Record struct {
	Owner       string `json:"owner"`
	AcquireTime int64  `json:"acquire_time"` // unix 秒
	ExpireTime  int64  `json:"expire_time"`  // unix 秒
}

// Expired 判断记录在 now 时刻是否已过期
func (r Record) Expired(now time.Time) bool {
	return now.Unix() > r.ExpireTime
}

// releaseScript 仅持有者可删；键不存在视为释放成功
var releaseScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return 1
end
local ok, data = pcall(cjson.decode, v)
if not ok then
  return 0
end
if data.owner == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
return 0
`)

func lockKey(name string) string {
	return "lock:" + name
}

// Acquire 抢占命名锁，单次 SET NX EX，无排队无自旋
func Acquire(ctx context.Context, name string, ttl time.Duration, owner string) (bool, error) {
	now := time.Now()
	rec := Record{
		Owner:       owner,
		AcquireTime: now.Unix(),
		ExpireTime:  now.Add(ttl).Unix(),
	}
	b, _ := json.Marshal(rec)
	ok, err := dal.RedisClient.SetNX(ctx, lockKey(name), b, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock acquire %s failed: %w", name, err)
	}
	return ok, nil
}

// Release 释放命名锁。键不存在返回 true；持有者不匹配返回 false 且不产生副作用，
// 防止超时的旧持有者误删他人的锁。
func Release(ctx context.Context, name string, owner string) (bool, error) {
	n, err := releaseScript.Run(ctx, dal.RedisClient, []string{lockKey(name)}, owner).Int()
	if err != nil {
		return false, fmt.Errorf("lock release %s failed: %w", name, err)
	}
	return n == 1, nil
}

// IsLocked 查询锁是否存活，仅用于观测；过期记录顺手清理
func IsLocked(ctx context.Context, name string) (bool, error) {
	v, err := dal.RedisClient.Get(ctx, lockKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var rec Record
	if json.Unmarshal([]byte(v), &rec) != nil {
		return true, nil
	}
	if rec.Expired(time.Now()) {
		_ = dal.RedisClient.Del(ctx, lockKey(name)).Err()
		return false, nil
	}
	return true, nil
}

// With 获取锁后执行 fn，任意退出路径（含 panic 上抛前的 defer）都会释放。
// 抢锁失败返回 ErrNotAcquired，由调用方决定报冲突还是放弃。
func With(ctx context.Context, name string, ttl time.Duration, fn func() error) error {
	owner := uuid.NewString()
	ok, err := Acquire(ctx, name, ttl, owner)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAcquired
	}
	defer func() {
		_, _ = Release(ctx, name, owner)
	}()
	return fn()
}
