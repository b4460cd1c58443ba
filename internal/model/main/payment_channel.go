package mainmodel

import "time"

// PaymentChannel 支付渠道配置，一行对应一个外部服务商账户
type PaymentChannel struct {
	ID             uint64    `gorm:"column:id;primaryKey" json:"id"`
	ChannelCode    string    `gorm:"column:channel_code;type:varchar(32);not null;uniqueIndex" json:"channelCode"`
	Provider       string    `gorm:"column:provider;type:varchar(32);not null" json:"provider"` // 适配器名，如 shark
	MerchantID     string    `gorm:"column:merchant_id;type:varchar(64);not null" json:"merchantId"`
	AppSecret      string    `gorm:"column:app_secret;type:varchar(128);not null" json:"-"`
	ApiGateway     string    `gorm:"column:api_gateway;type:varchar(255)" json:"apiGateway"`
	DefaultPayType string    `gorm:"column:default_pay_type;type:varchar(32)" json:"defaultPayType"`
	Status         int8      `gorm:"column:status;not null;default:1" json:"status"` // 1=启用 0=禁用
	CreateTime     time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime     time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PaymentChannel) TableName() string { return "t_payment_channel" }
