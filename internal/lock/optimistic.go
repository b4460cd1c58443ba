package lock

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrVersionConflict 乐观锁重试耗尽
var ErrVersionConflict = errors.New("optimistic version conflict")

// 首次重试等待，之后线性递增
const retryBaseDelay = 100 * time.Millisecond

// OptimisticUpdate 带版本号的条件更新：读当前 version，执行
// UPDATE ... WHERE id=? AND version=?，0 行命中说明竞争失败，重读后线性退避重试。
// fields 不应包含 version，版本号由本函数自增。
func OptimisticUpdate(db *gorm.DB, table string, id uint64, fields map[string]interface{}, maxRetries int) error {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var row struct {
			Version int64
		}
		err := db.Table(table).Select("version").Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("optimistic update: record %d not found in %s: %w", id, table, err)
		}
		if err != nil {
			return fmt.Errorf("optimistic update read version failed: %w", err)
		}

		update := make(map[string]interface{}, len(fields)+1)
		for k, v := range fields {
			update[k] = v
		}
		update["version"] = row.Version + 1

		res := db.Table(table).Where("id = ? AND version = ?", id, row.Version).Updates(update)
		if res.Error != nil {
			return fmt.Errorf("optimistic update failed: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// 竞争失败，退避后重读版本
		if attempt < maxRetries {
			time.Sleep(retryBaseDelay * time.Duration(attempt))
		}
	}
	return ErrVersionConflict
}
