package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"mall-pay-api/internal/dal"
	"mall-pay-api/internal/lock"
	ordermodel "mall-pay-api/internal/model/order"
)

type OrderDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.OrderDB
func NewOrderDao() *OrderDao {
	if dal.OrderDB == nil {
		log.Panic("[FATAL] dal.OrderDB is nil - database not initialized")
	}
	return &OrderDao{DB: dal.OrderDB}
}

func (r *OrderDao) checkDB() error {
	if r == nil {
		return errors.New("OrderDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// 插入订单
func (r *OrderDao) Insert(o *ordermodel.Order) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert order failed: %w", err)
	}
	return r.DB.Create(o).Error
}

// 根据ID获取订单
func (r *OrderDao) GetByID(id uint64) (*ordermodel.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by id failed: %w", err)
	}
	var m ordermodel.Order
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// 根据订单号获取订单
func (r *OrderDao) GetByOrderNo(orderNo string) (*ordermodel.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by order no failed: %w", err)
	}
	var m ordermodel.Order
	err := r.DB.Where("order_no = ?", orderNo).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// 订单号是否已占用，订单号生成时的碰撞检测
func (r *OrderDao) ExistsOrderNo(orderNo string) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("exists order no failed: %w", err)
	}
	var cnt int64
	if err := r.DB.Model(&ordermodel.Order{}).Where("order_no = ?", orderNo).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count failed: %w", err)
	}
	return cnt > 0, nil
}

// UpdateGuarded 订单状态字段的唯一合法写入口：乐观版本号条件更新。
// pay_status/status 不允许绕过本方法裸写。
func (r *OrderDao) UpdateGuarded(id uint64, fields map[string]interface{}, maxRetries int) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("guarded update failed: %w", err)
	}
	return lock.OptimisticUpdate(r.DB, ordermodel.Order{}.TableName(), id, fields, maxRetries)
}
