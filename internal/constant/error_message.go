package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeDatabaseError: {"数据库错误", "Database error"},
	CodeRedisError:    {"缓存服务错误", "Cache service error"},
	CodeInternalError: {"内部服务错误", "Internal error"},
	CodeTimeout:       {"请求超时", "Request timeout"},
	CodeConflict:      {"并发冲突，请重试", "Concurrent update conflict"},

	// 参数错误
	CodeInvalidParams:   {"参数格式错误", "Invalid params"},
	CodeMissingParams:   {"缺少必要参数", "Missing params"},
	CodeParamsTypeError: {"参数类型错误", "Params type error"},

	// 认证授权
	CodeUnauthorized:   {"未授权访问", "Unauthorized"},
	CodeSignatureError: {"签名验证失败", "Signature mismatch"},
	CodeAccessDenied:   {"访问权限不足", "Access denied"},

	// 商品相关
	CodeGoodsNotFound:     {"商品不存在", "Goods not found"},
	CodeGoodsTypeMismatch: {"商品类型不匹配", "Goods type mismatch"},
	CodeGoodsNoCoinPrice:  {"该商品不支持金币支付", "Goods has no coin price"},
	CodeGoodsCoinSelfPay:  {"金币类商品不支持金币支付", "Coin goods cannot be paid with coins"},

	// 订单相关
	CodeOrderNotFound:       {"订单不存在", "Order not found"},
	CodeOrderStatusInvalid:  {"订单当前状态不可操作", "Order status invalid"},
	CodeOrderPaid:           {"订单已支付", "Order already paid"},
	CodeOrderNoGenerateFail: {"订单号生成失败", "Order no generation failed"},
	CodePaymentModeInvalid:  {"支付模式不合法", "Invalid payment mode"},

	// 支付通道相关
	CodeChannelNotFound: {"支付渠道不存在或未配置", "Channel not found"},
	CodeChannelDisabled: {"支付渠道已禁用", "Channel disabled"},

	// 支付相关
	CodePaymentFailed:       {"支付失败", "Payment failed"},
	CodePaymentNotFound:     {"支付单不存在", "Payment order not found"},
	CodePaymentOwnerInvalid: {"无权操作该支付单", "Not the payment owner"},

	// 上游错误
	CodeUpstreamError:   {"上游通道错误", "Upstream channel error"},
	CodeUpstreamTimeout: {"上游通道请求超时", "Upstream timeout"},
}
