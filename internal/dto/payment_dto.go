package dto

import "time"

// InitPaymentReq 发起支付请求。
// 刻意不带金额字段，金额一律从持久化订单读取，防止客户端篡改。
type InitPaymentReq struct {
	OrderID     uint64 `json:"order_id" binding:"required"`
	UserID      uint64 `json:"user_id" binding:"required"`
	ChannelCode string `json:"channel_code" binding:"required"`
	PayType     string `json:"pay_type" binding:"required"`
	ReturnURL   string `json:"return_url" binding:"omitempty,url"`
}

// UpdatePaymentOrderVo 同步应答回填支付单，零值字段不更新
type UpdatePaymentOrderVo struct {
	PayURL          string    `gorm:"column:pay_url"`
	PayMode         string    `gorm:"column:pay_mode"`
	PlatformOrderNo string    `gorm:"column:platform_order_no"`
	ResponseSign    string    `gorm:"column:response_sign"`
	UpdateTime      time.Time `gorm:"column:update_time"`
}

// OrderPaidEvent 支付成功事件，routing key: order.paid
type OrderPaidEvent struct {
	OrderNo         string `json:"order_no"`
	UserID          uint64 `json:"user_id"`
	ChannelCode     string `json:"channel_code"`
	PayType         string `json:"pay_type"`
	Amount          string `json:"amount"`
	PlatformOrderNo string `json:"platform_order_no"`
	PaidAt          int64  `json:"paid_at"`
}
