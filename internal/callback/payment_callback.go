package callback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mall-pay-api/internal/channel"
	"mall-pay-api/internal/config"
	"mall-pay-api/internal/dao"
	"mall-pay-api/internal/dto"
	"mall-pay-api/internal/event"
	"mall-pay-api/internal/lock"
	"mall-pay-api/internal/logger"
	ordermodel "mall-pay-api/internal/model/order"
	"mall-pay-api/internal/service"
)

// TokenRetry 基础设施故障时的应答体。与业务拒绝的 fail token 区分开：
// fail 会让服务商停止重投，瞬态故障返回 fail 会导致已支付交易永远无法对账。
const TokenRetry = "retry"

type PaymentCallback struct {
	mainDao  *dao.MainDao
	payDao   *dao.PaymentDao
	orderSvc *service.OrderService
	pub      event.Publisher
}

func NewPaymentCallback(pub event.Publisher) *PaymentCallback {
	return &PaymentCallback{
		mainDao:  dao.NewMainDao(),
		payDao:   dao.NewPaymentDao(),
		orderSvc: service.NewOrderService(),
		pub:      pub,
	}
}

// Handle 处理服务商异步回调，返回写入 HTTP 响应体的 token。
// HTTP 状态恒为 200，服务商的重投语义完全由响应体驱动。
func (s *PaymentCallback) Handle(ctx context.Context, provider string, rawBody []byte) string {
	adapter := channel.Get(provider)
	if adapter == nil {
		log.Printf("[CALLBACK] 未知服务商: %s", provider)
		return "fail"
	}
	raw := string(rawBody)

	// 验签前的字段提取只用于定位渠道密钥，不做任何授权判断
	orderNo := adapter.ExtractOrderNo(raw)
	cfg, channelCode, infraErr := s.resolveChannel(adapter, orderNo, raw)
	if infraErr != nil {
		log.Printf("[CALLBACK] 渠道配置查询失败: %v", infraErr)
		return TokenRetry
	}
	if cfg == nil {
		log.Printf("[CALLBACK] 无法路由渠道, provider=%s orderNo=%s", provider, orderNo)
		return adapter.FailResponseText()
	}

	normalized := adapter.VerifyAndParseCallback(raw, *cfg)

	// 回调审计无条件落库，验签失败也要留痕
	notifyLog := s.buildNotifyLog(normalized, channelCode)
	if err := s.payDao.InsertNotifyLog(notifyLog); err != nil {
		log.Printf("[CALLBACK] 回调审计落库失败, orderNo=%s: %v", normalized.OrderNo, err)
		return TokenRetry
	}
	if logger.PaymentLog != nil {
		logger.PaymentLog.WithField("order_no", normalized.OrderNo).
			WithField("provider", provider).
			WithField("verified", normalized.Verified).
			WithField("status", normalized.Status).
			Info("gateway callback")
	}

	// 同一订单的并发投递持锁串行化，抢不到锁让服务商稍后重投
	token := TokenRetry
	lockErr := lock.With(ctx, "pay:cb:"+normalized.OrderNo,
		time.Duration(config.C.Lock.TTLSec)*time.Second, func() error {
			token = s.process(adapter, normalized, notifyLog.ID)
			return nil
		})
	if lockErr != nil {
		if !errors.Is(lockErr, lock.ErrNotAcquired) {
			log.Printf("[CALLBACK] 回调锁异常, orderNo=%s: %v", normalized.OrderNo, lockErr)
		}
		return TokenRetry
	}
	return token
}

// process 持锁执行状态迁移，返回应答 token
func (s *PaymentCallback) process(adapter channel.Adapter, normalized channel.NormalizedCallback, logID uint64) string {
	po, err := s.payDao.GetByOrderNo(normalized.OrderNo)
	if err != nil {
		return TokenRetry
	}
	if po == nil {
		// 本地无支付单，确认即可停止重投
		s.markLogProcessed(logID, ordermodel.NotifyProcessIgnored)
		return adapter.SuccessResponseText()
	}

	switch Decide(po.Status, normalized.Status) {
	case ActionMarkPaid:
		if err := s.applyPaid(po, normalized); err != nil {
			log.Printf("[CALLBACK] 支付落账失败, orderNo=%s: %v", po.OrderNo, err)
			return TokenRetry
		}
		s.publishPaid(po, normalized)
		s.markLogProcessed(logID, ordermodel.NotifyProcessDone)
	case ActionMarkFailed:
		now := time.Now()
		fields := map[string]interface{}{
			"status":      ordermodel.PaymentStatusFailed,
			"notify_time": now,
			"update_time": now,
		}
		if err := s.payDao.Updates(po.OrderNo, fields); err != nil {
			log.Printf("[CALLBACK] 支付单置失败异常, orderNo=%s: %v", po.OrderNo, err)
			return TokenRetry
		}
		s.markLogProcessed(logID, ordermodel.NotifyProcessDone)
	case ActionEnsureOrderPaid:
		// 支付单已 paid，订单侧幂等补推（已落账则直接成功）
		if err := s.orderSvc.MarkPaid(po.OrderNo, po.PayType); err != nil {
			log.Printf("[CALLBACK] 订单补落账失败, orderNo=%s: %v", po.OrderNo, err)
			return TokenRetry
		}
		s.markLogProcessed(logID, ordermodel.NotifyProcessIgnored)
	default:
		// 终态重放：确认但不再施加任何副作用
		s.markLogProcessed(logID, ordermodel.NotifyProcessIgnored)
	}

	return adapter.SuccessResponseText()
}

// resolveChannel 双路定位渠道配置：优先用支付单上已存的 channel_code，
// 支付单未落时退回报文里的服务商商户号。error 仅表示基础设施故障。
func (s *PaymentCallback) resolveChannel(adapter channel.Adapter, orderNo, raw string) (*channel.Config, string, error) {
	if orderNo != "" {
		po, err := s.payDao.GetByOrderNo(orderNo)
		if err != nil {
			return nil, "", err
		}
		if po != nil {
			ch, err := s.mainDao.GetChannelByCode(po.ChannelCode)
			if err != nil {
				return nil, "", err
			}
			if ch != nil {
				return &channel.Config{MerchantID: ch.MerchantID, AppSecret: ch.AppSecret}, ch.ChannelCode, nil
			}
		}
	}
	if mercID := adapter.ExtractMercID(raw); mercID != "" {
		ch, err := s.mainDao.GetChannelByMerchantID(mercID)
		if err != nil {
			return nil, "", err
		}
		if ch != nil {
			return &channel.Config{MerchantID: ch.MerchantID, AppSecret: ch.AppSecret}, ch.ChannelCode, nil
		}
	}
	return nil, "", nil
}

func (s *PaymentCallback) buildNotifyLog(n channel.NormalizedCallback, channelCode string) *ordermodel.PaymentNotifyLog {
	signVerify := int8(0)
	if n.Verified {
		signVerify = 1
	}
	l := &ordermodel.PaymentNotifyLog{
		OrderNo:       n.OrderNo,
		ChannelCode:   channelCode,
		NotifyType:    "payment",
		NotifyData:    n.Raw,
		SignVerify:    signVerify,
		ProcessStatus: ordermodel.NotifyProcessPending,
		NotifyTime:    time.Now(),
	}
	if n.Sign != "" {
		l.NotifySign = &n.Sign
	}
	if n.PlatformOrderNo != "" {
		l.PlatformOrderNo = &n.PlatformOrderNo
	}
	return l
}

// applyPaid 支付单置 paid 并驱动订单侧幂等落账
func (s *PaymentCallback) applyPaid(po *ordermodel.PaymentOrder, n channel.NormalizedCallback) error {
	now := time.Now()
	payTime := now
	if n.PayTime != nil {
		payTime = *n.PayTime
	}
	fields := map[string]interface{}{
		"status":      ordermodel.PaymentStatusPaid,
		"pay_time":    payTime,
		"notify_time": now,
		"update_time": now,
	}
	if n.ActualAmount != nil {
		fields["actual_amount"] = *n.ActualAmount
	}
	if n.PlatformOrderNo != "" {
		fields["platform_order_no"] = n.PlatformOrderNo
	}
	if err := s.payDao.Updates(po.OrderNo, fields); err != nil {
		return fmt.Errorf("update payment order: %w", err)
	}
	if err := s.orderSvc.MarkPaid(po.OrderNo, po.PayType); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	return nil
}

func (s *PaymentCallback) publishPaid(po *ordermodel.PaymentOrder, n channel.NormalizedCallback) {
	if s.pub == nil {
		return
	}
	evt := dto.OrderPaidEvent{
		OrderNo:         po.OrderNo,
		UserID:          po.UserID,
		ChannelCode:     po.ChannelCode,
		PayType:         po.PayType,
		Amount:          po.Amount.StringFixed(2),
		PlatformOrderNo: n.PlatformOrderNo,
		PaidAt:          time.Now().Unix(),
	}
	if err := s.pub.Publish("order.paid", evt); err != nil {
		log.Printf("[CALLBACK] 支付事件发布失败, orderNo=%s: %v", po.OrderNo, err)
	}
}

func (s *PaymentCallback) markLogProcessed(id uint64, status string) {
	if err := s.payDao.MarkNotifyLogProcessed(id, status); err != nil {
		log.Printf("[CALLBACK] 回填审计状态失败, id=%d: %v", id, err)
	}
}
