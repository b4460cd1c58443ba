package channel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 归一化支付状态
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Config 渠道配置，由支付渠道表解出
type Config struct {
	MerchantID     string
	AppSecret      string
	DefaultPayType string
	ApiGateway     string
	Mode           string
}

// InitResult 同步下单应答的归一化结果
type InitResult struct {
	PayURL          string
	Status          string // pending / failed
	PayMode         string
	PlatformOrderNo string
	ResponseSign    string
}

// NormalizedCallback 异步回调的归一化结果。
// Status 为 paid 要求服务商成功码与验签同时通过，缺一即 failed。
type NormalizedCallback struct {
	OrderNo         string
	PlatformOrderNo string
	Status          string
	ActualAmount    *decimal.Decimal
	PayTime         *time.Time
	Raw             string
	Sign            string
	Verified        bool
	Code            string
	MercID          string
}

// Adapter 渠道适配器能力集，一个服务商一个实现。
// 签名字段顺序由服务商协议规定，下单与回调两侧必须逐字节一致。
// ExtractOrderNo/ExtractMercID 在验签前调用，只能用于路由渠道密钥，
// 绝不能作为任何授权判断的依据。
type Adapter interface {
	Name() string
	BuildInitRequest(orderNo string, amount decimal.Decimal, notifyURL string, cfg Config, returnURL string) map[string]interface{}
	InitEndpoint(cfg Config) string
	ParseInitResponse(body []byte) InitResult
	VerifyAndParseCallback(raw string, cfg Config) NormalizedCallback
	SuccessResponseText() string
	FailResponseText() string
	ExtractOrderNo(raw string) string
	ExtractMercID(raw string) string
}

var registry = map[string]Adapter{}

// Register 注册适配器，新增服务商只需新增一个实现
func Register(a Adapter) {
	registry[a.Name()] = a
}

// Get 按名称取适配器，未注册返回 nil
func Get(name string) Adapter {
	return registry[name]
}
