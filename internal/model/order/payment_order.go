package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支付单状态，pending -> paid/failed 均为终态
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// PaymentOrder 支付单，一笔订单一行（order_no 唯一）。
// 下单时写入，同步应答与异步回调各更新一次；paid 后不再改写金额与状态。
type PaymentOrder struct {
	ID              uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo         string           `gorm:"column:order_no;type:varchar(32);not null;uniqueIndex" json:"orderNo"`
	UserID          uint64           `gorm:"column:user_id;not null;index" json:"userId"`
	ChannelCode     string           `gorm:"column:channel_code;type:varchar(32);not null" json:"channelCode"`
	PayType         string           `gorm:"column:pay_type;type:varchar(32);not null" json:"payType"`
	Amount          decimal.Decimal  `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ActualAmount    *decimal.Decimal `gorm:"column:actual_amount;type:decimal(18,2)" json:"actualAmount"` // 回调告知的实付金额
	Status          string           `gorm:"column:status;type:varchar(10);not null;default:pending" json:"status"`
	PlatformOrderNo *string          `gorm:"column:platform_order_no;type:varchar(64)" json:"platformOrderNo"` // 服务商侧订单号
	PayURL          *string          `gorm:"column:pay_url;type:varchar(255)" json:"payUrl"`
	PayMode         *string          `gorm:"column:pay_mode;type:varchar(16)" json:"payMode"`
	RequestSign     *string          `gorm:"column:request_sign;type:varchar(64)" json:"-"`
	ResponseSign    *string          `gorm:"column:response_sign;type:varchar(64)" json:"-"`
	ReturnURL       *string          `gorm:"column:return_url;type:varchar(255)" json:"returnUrl"`
	ExpireTime      *time.Time       `gorm:"column:expire_time" json:"expireTime"`
	RequestTimeMs   int64            `gorm:"column:request_time_ms;not null;default:0" json:"-"`
	PayTime         *time.Time       `gorm:"column:pay_time" json:"payTime"`
	NotifyTime      *time.Time       `gorm:"column:notify_time" json:"notifyTime"`
	CreateTime      time.Time        `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime      time.Time        `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PaymentOrder) TableName() string { return "t_payment_order" }
