package timeutil

import (
	"strconv"
	"time"
)

// ParseTimestampMs 将毫秒时间戳字符串转换为 time.Time
func ParseTimestampMs(tsStr string) (time.Time, error) {
	ms, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	sec := ms / 1000
	nsec := (ms % 1000) * 1e6
	return time.Unix(sec, nsec), nil
}

func NowMs() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
