package constant

// 业务级错误码 (2xxx)

// 商品相关错误码
const (
	CodeGoodsNotFound     = 2000 // 商品不存在
	CodeGoodsTypeMismatch = 2001 // 商品类型与请求不匹配
	CodeGoodsNoCoinPrice  = 2002 // 该商品不支持金币支付
	CodeGoodsCoinSelfPay  = 2003 // 金币类商品不支持金币支付
)

// 订单相关错误码
const (
	CodeOrderNotFound       = 2100 // 订单不存在
	CodeOrderStatusInvalid  = 2102 // 订单状态无效，无法进行当前操作
	CodeOrderPaid           = 2105 // 订单已支付，请勿重复支付
	CodeOrderNoGenerateFail = 2108 // 订单号生成失败（候选号重试耗尽）
	CodePaymentModeInvalid  = 2109 // 支付模式不合法
)

// 支付通道相关错误码
const (
	CodeChannelNotFound = 2200 // 支付通道不存在或未配置
	CodeChannelDisabled = 2201 // 支付通道已禁用
)

// 支付相关错误码
const (
	CodePaymentFailed       = 2300 // 支付失败
	CodePaymentNotFound     = 2301 // 支付单不存在
	CodePaymentOwnerInvalid = 2302 // 无权操作该支付单
)

// 上游通道错误码 (3xxx)
const (
	CodeUpstreamError   = 3000 // 上游通道通用错误
	CodeUpstreamTimeout = 3001 // 上游通道请求超时
)
