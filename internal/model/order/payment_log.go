package ordermodel

import "time"

// 回调处理结果
const (
	NotifyProcessPending = "pending"
	NotifyProcessDone    = "done"
	NotifyProcessIgnored = "ignored"
)

// PaymentNotifyLog 入站回调审计，insert-only，仅回填处理结果指针。
// 验签失败也要落库，供重放排查与重复投递检测。
type PaymentNotifyLog struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo         string     `gorm:"column:order_no;type:varchar(32);not null;index" json:"orderNo"`
	PlatformOrderNo *string    `gorm:"column:platform_order_no;type:varchar(64)" json:"platformOrderNo"`
	ChannelCode     string     `gorm:"column:channel_code;type:varchar(32);not null" json:"channelCode"`
	NotifyType      string     `gorm:"column:notify_type;type:varchar(16);not null;default:payment" json:"notifyType"`
	NotifyData      string     `gorm:"column:notify_data;type:text;not null" json:"notifyData"` // 原始报文
	NotifySign      *string    `gorm:"column:notify_sign;type:varchar(64)" json:"notifySign"`
	SignVerify      int8       `gorm:"column:sign_verify;not null;default:0" json:"signVerify"` // 1=验签通过
	ProcessStatus   string     `gorm:"column:process_status;type:varchar(10);not null;default:pending" json:"processStatus"`
	NotifyTime      time.Time  `gorm:"column:notify_time;not null" json:"notifyTime"`
	CreateTime      time.Time  `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	ProcessTime     *time.Time `gorm:"column:process_time" json:"processTime"`
}

func (PaymentNotifyLog) TableName() string { return "t_payment_notify_log" }

// PaymentRequestLog 出站请求审计，insert-only，业务逻辑不读取
type PaymentRequestLog struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo        string    `gorm:"column:order_no;type:varchar(32);not null;index" json:"orderNo"`
	ChannelCode    string    `gorm:"column:channel_code;type:varchar(32);not null" json:"channelCode"`
	AttemptNo      int       `gorm:"column:attempt_no;not null;default:1" json:"attemptNo"`
	RequestTimeMs  int64     `gorm:"column:request_time_ms;not null" json:"requestTimeMs"`
	RequestBody    string    `gorm:"column:request_body;type:text;not null" json:"requestBody"`
	RequestSign    *string   `gorm:"column:request_sign;type:varchar(64)" json:"requestSign"`
	ResponseTimeMs int64     `gorm:"column:response_time_ms;not null;default:0" json:"responseTimeMs"`
	HttpStatus     int       `gorm:"column:http_status;not null;default:0" json:"httpStatus"`
	ResponseBody   string    `gorm:"column:response_body;type:text" json:"responseBody"`
	ResponseSign   *string   `gorm:"column:response_sign;type:varchar(64)" json:"responseSign"`
	Success        int8      `gorm:"column:success;not null;default:0" json:"success"`
	CreateTime     time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}

func (PaymentRequestLog) TableName() string { return "t_payment_request_log" }
