package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 订单状态
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
)

// 支付状态，只允许 unpaid -> paid 单向迁移
const (
	PayStatusUnpaid = "unpaid"
	PayStatusPaid   = "paid"
)

// 支付模式
const (
	PaymentModeCash = "cash"
	PaymentModeCoin = "coin"
)

// Order 订单行。order_no 为全局唯一对外关联键，version 供乐观锁使用。
// pay_status/status 的写入必须走乐观版本号路径，不允许裸更新。
type Order struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo        string          `gorm:"column:order_no;type:varchar(32);not null;uniqueIndex" json:"orderNo"`
	UserID         uint64          `gorm:"column:user_id;not null;index" json:"userId"`
	GoodsID        uint64          `gorm:"column:goods_id;not null" json:"goodsId"`
	GoodsName      string          `gorm:"column:goods_name;type:varchar(100);not null" json:"goodsName"`
	GoodsType      string          `gorm:"column:goods_type;type:varchar(20);not null" json:"goodsType"`
	Quantity       int64           `gorm:"column:quantity;not null;default:1" json:"quantity"`
	PaymentMode    string          `gorm:"column:payment_mode;type:varchar(10);not null" json:"paymentMode"`
	CashAmount     decimal.Decimal `gorm:"column:cash_amount;type:decimal(18,2);not null" json:"cashAmount"`
	CoinCost       int64           `gorm:"column:coin_cost;not null;default:0" json:"coinCost"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"totalAmount"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(18,2);not null" json:"discountAmount"`
	FinalAmount    decimal.Decimal `gorm:"column:final_amount;type:decimal(18,2);not null" json:"finalAmount"`
	Status         string          `gorm:"column:status;type:varchar(16);not null;default:pending" json:"status"`
	PayStatus      string          `gorm:"column:pay_status;type:varchar(10);not null;default:unpaid" json:"payStatus"`
	PayMethod      *string         `gorm:"column:pay_method;type:varchar(32)" json:"payMethod"`
	PayTime        *time.Time      `gorm:"column:pay_time" json:"payTime"`
	Version        int64           `gorm:"column:version;not null;default:0" json:"-"`
	CreateTime     time.Time       `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime     time.Time       `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Order) TableName() string { return "t_order" }
