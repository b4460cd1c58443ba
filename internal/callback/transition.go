package callback

import (
	"mall-pay-api/internal/channel"
	ordermodel "mall-pay-api/internal/model/order"
)

// Action 回调对支付单的处置
type Action int

const (
	ActionNone Action = iota // 终态重放或未知状态，仅确认不改写
	ActionMarkPaid
	ActionMarkFailed
	// 支付单已 paid 的 paid 重放：支付单不动，但要补推订单侧落账。
	// 首次投递可能在支付单置 paid 后、订单标记前失败，重放是唯一的对账机会。
	ActionEnsureOrderPaid
)

// Decide 根据支付单当前状态与归一化回调状态决定迁移。
// paid 为不可逆终态；failed 之后仍允许被 paid 覆盖（服务商先失败后成功的补单）。
func Decide(current string, incoming string) Action {
	switch incoming {
	case channel.StatusPaid:
		if current != ordermodel.PaymentStatusPaid {
			return ActionMarkPaid
		}
		return ActionEnsureOrderPaid
	case channel.StatusFailed:
		if current != ordermodel.PaymentStatusPaid && current != ordermodel.PaymentStatusFailed {
			return ActionMarkFailed
		}
	}
	return ActionNone
}
