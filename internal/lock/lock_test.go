package lock

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecordExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := Record{Owner: "o1", AcquireTime: now.Unix() - 10, ExpireTime: now.Unix()}

	// 到期秒本身仍视为存活，严格大于才过期
	if rec.Expired(now) {
		t.Error("record at exact expire second must not be expired")
	}
	if !rec.Expired(now.Add(time.Second)) {
		t.Error("record past expire second must be expired")
	}
	if rec.Expired(now.Add(-time.Minute)) {
		t.Error("record before expiry must not be expired")
	}
}

func TestRecordJSONShape(t *testing.T) {
	rec := Record{Owner: "abc", AcquireTime: 100, ExpireTime: 130}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	// 释放脚本按 owner 字段匹配持有者，序列化键名不可漂移
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["owner"] != "abc" {
		t.Errorf("owner field missing or renamed: %v", m)
	}
	if _, ok := m["acquire_time"]; !ok {
		t.Errorf("acquire_time field missing: %v", m)
	}
	if _, ok := m["expire_time"]; !ok {
		t.Errorf("expire_time field missing: %v", m)
	}
}

func TestLockKeyPrefix(t *testing.T) {
	if got := lockKey("pay:ORD1"); got != "lock:pay:ORD1" {
		t.Errorf("lockKey = %s", got)
	}
}
