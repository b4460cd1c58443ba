package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"mall-pay-api/internal/dal"
	mainmodel "mall-pay-api/internal/model/main"
)

type MainDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewMainDao() *MainDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &MainDao{DB: dal.MainDB}
}

func (r *MainDao) checkDB() error {
	if r == nil {
		return errors.New("MainDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// 根据ID获取商品
func (r *MainDao) GetGoods(id uint64) (*mainmodel.Goods, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get goods failed: %w", err)
	}
	var g mainmodel.Goods
	err := r.DB.Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &g, nil
}

// 根据渠道编码获取支付渠道配置
func (r *MainDao) GetChannelByCode(code string) (*mainmodel.PaymentChannel, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get channel by code failed: %w", err)
	}
	var ch mainmodel.PaymentChannel
	err := r.DB.Where("channel_code = ?", code).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &ch, nil
}

// 根据服务商商户号获取支付渠道配置，回调侧兜底路由用
func (r *MainDao) GetChannelByMerchantID(mercID string) (*mainmodel.PaymentChannel, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get channel by merchant id failed: %w", err)
	}
	var ch mainmodel.PaymentChannel
	err := r.DB.Where("merchant_id = ?", mercID).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &ch, nil
}
