package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"mall-pay-api/internal/dal"
	"mall-pay-api/internal/dto"
	ordermodel "mall-pay-api/internal/model/order"
)

type PaymentDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.OrderDB（支付单与订单同库）
func NewPaymentDao() *PaymentDao {
	if dal.OrderDB == nil {
		log.Panic("[FATAL] dal.OrderDB is nil - database not initialized")
	}
	return &PaymentDao{DB: dal.OrderDB}
}

func (r *PaymentDao) checkDB() error {
	if r == nil {
		return errors.New("PaymentDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// 插入支付单
func (r *PaymentDao) Insert(po *ordermodel.PaymentOrder) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payment order failed: %w", err)
	}
	return r.DB.Create(po).Error
}

// 根据订单号获取支付单
func (r *PaymentDao) GetByOrderNo(orderNo string) (*ordermodel.PaymentOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payment order failed: %w", err)
	}
	var po ordermodel.PaymentOrder
	err := r.DB.Where("order_no = ?", orderNo).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &po, nil
}

// Updates 按订单号更新支付单字段
func (r *PaymentDao) Updates(orderNo string, fields map[string]interface{}) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update payment order failed: %w", err)
	}
	return r.DB.Model(&ordermodel.PaymentOrder{}).Where("order_no = ?", orderNo).Updates(fields).Error
}

// UpdateFromInit 同步应答回填，VO 零值字段不写
func (r *PaymentDao) UpdateFromInit(orderNo string, vo dto.UpdatePaymentOrderVo) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update payment order from init failed: %w", err)
	}
	return r.DB.Model(&ordermodel.PaymentOrder{}).Where("order_no = ?", orderNo).Updates(vo).Error
}

// 插入回调审计日志（验签失败也要落）
func (r *PaymentDao) InsertNotifyLog(l *ordermodel.PaymentNotifyLog) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert notify log failed: %w", err)
	}
	return r.DB.Create(l).Error
}

// 回填回调处理结果指针，审计行其余字段不再改动
func (r *PaymentDao) MarkNotifyLogProcessed(id uint64, processStatus string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("mark notify log failed: %w", err)
	}
	now := time.Now()
	return r.DB.Model(&ordermodel.PaymentNotifyLog{}).Where("id = ?", id).Updates(map[string]interface{}{
		"process_status": processStatus,
		"process_time":   now,
	}).Error
}

// 插入出站请求审计日志
func (r *PaymentDao) InsertRequestLog(l *ordermodel.PaymentRequestLog) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert request log failed: %w", err)
	}
	return r.DB.Create(l).Error
}
