package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"mall-pay-api/internal/channel"
	"mall-pay-api/internal/config"
	"mall-pay-api/internal/constant"
	"mall-pay-api/internal/dao"
	"mall-pay-api/internal/dto"
	"mall-pay-api/internal/lock"
	"mall-pay-api/internal/logger"
	ordermodel "mall-pay-api/internal/model/order"
	"mall-pay-api/internal/utils"
	"mall-pay-api/internal/utils/timeutil"
)

// 支付单有效期
const paymentExpireWindow = 30 * time.Minute

type PaymentService struct {
	mainDao  *dao.MainDao
	orderDao *dao.OrderDao
	payDao   *dao.PaymentDao
	client   *http.Client
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		mainDao:  dao.NewMainDao(),
		orderDao: dao.NewOrderDao(),
		payDao:   dao.NewPaymentDao(),
		client: utils.NewGatewayClient(
			time.Duration(config.C.Payment.ConnectTimeoutSec)*time.Second,
			time.Duration(config.C.Payment.ReadTimeoutSec)*time.Second,
		),
	}
}

// InitPayment 发起支付。返回值为直接写给客户端的原始报文：
// 上游应答原样透传，客户端 SDK 依赖服务商原生字段，不做内部包装。
// 同一订单的并发发起用分布式锁串行化，抢锁失败按冲突上报。
func (s *PaymentService) InitPayment(ctx context.Context, userID uint64, req dto.InitPaymentReq) ([]byte, error) {
	if req.UserID != userID {
		return nil, constant.NewError(constant.CodeAccessDenied)
	}
	order, err := s.orderDao.GetByID(req.OrderID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}
	if order.UserID != userID {
		return nil, constant.NewError(constant.CodeAccessDenied)
	}
	// 已支付直接短路，返回成功形状但不带支付链接
	if order.PayStatus == ordermodel.PayStatusPaid {
		body := fmt.Sprintf(`{"code":200,"msg":{"tradeNo":"%s","mode":"url","payUrl":null}}`, order.OrderNo)
		return []byte(body), nil
	}

	var raw []byte
	lockErr := lock.With(ctx, "pay:init:"+order.OrderNo, time.Duration(config.C.Lock.TTLSec)*time.Second, func() error {
		var innerErr error
		raw, innerErr = s.initLocked(order, req)
		return innerErr
	})
	if errors.Is(lockErr, lock.ErrNotAcquired) {
		return nil, constant.NewError(constant.CodeConflict)
	}
	if lockErr != nil {
		return nil, lockErr
	}
	return raw, nil
}

// initLocked 持锁执行：支付单落库、出站下单、应答回填与审计
func (s *PaymentService) initLocked(order *ordermodel.Order, req dto.InitPaymentReq) ([]byte, error) {
	amount := order.FinalAmount

	// 创建/复位支付单
	if err := s.upsertPaymentOrder(order, req); err != nil {
		return nil, err
	}

	// 渠道配置
	ch, err := s.mainDao.GetChannelByCode(req.ChannelCode)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if ch == nil {
		return nil, constant.NewError(constant.CodeChannelNotFound)
	}
	if ch.Status != 1 {
		return nil, constant.NewError(constant.CodeChannelDisabled)
	}
	adapter := channel.Get(ch.Provider)
	if adapter == nil {
		return nil, constant.NewError(constant.CodeChannelNotFound)
	}

	cfg := channel.Config{
		MerchantID:     ch.MerchantID,
		AppSecret:      ch.AppSecret,
		DefaultPayType: req.PayType,
		ApiGateway:     ch.ApiGateway,
	}
	notifyURL := buildNotifyURL(config.C.Payment.PublicBaseUrl, ch.Provider)

	payload := adapter.BuildInitRequest(order.OrderNo, amount, notifyURL, cfg, req.ReturnURL)
	reqSign, _ := payload["sign"].(string)

	baseURL := strings.TrimRight(ch.ApiGateway, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(config.C.Payment.DefaultGatewayUrl, "/")
	}
	url := baseURL + adapter.InitEndpoint(cfg)

	// 出站调用，不自动重试；结果无论成败都落一条审计
	requestTimeMs := timeutil.NowMs()
	httpStatus, respBody, callErr := utils.HttpPostJson(s.client, url, payload)

	var parsed channel.InitResult
	if callErr == nil {
		parsed = adapter.ParseInitResponse([]byte(respBody))
		// 可解析的应答回填支付单；失败形状只留审计，不改支付单状态
		var vo dto.UpdatePaymentOrderVo
		_ = copier.Copy(&vo, &parsed)
		vo.UpdateTime = time.Now()
		if err := s.payDao.UpdateFromInit(order.OrderNo, vo); err != nil {
			log.Printf("[PAYMENT-INIT] 回填支付单失败, orderNo=%s: %v", order.OrderNo, err)
		}
	} else {
		log.Printf("[PAYMENT-INIT] 上游调用失败, orderNo=%s: %v", order.OrderNo, callErr)
	}

	s.writeRequestLog(order.OrderNo, req.ChannelCode, payload, reqSign, requestTimeMs, httpStatus, respBody, parsed)

	if callErr != nil || respBody == "" {
		code := httpStatus
		if code == 0 {
			code = 500
		}
		return []byte(fmt.Sprintf(`{"code":%d,"err":"empty response"}`, code)), nil
	}
	return []byte(respBody), nil
}

// GetPaymentOrder 查询本人支付单
func (s *PaymentService) GetPaymentOrder(userID uint64, orderNo string) (*ordermodel.PaymentOrder, error) {
	po, err := s.payDao.GetByOrderNo(orderNo)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if po == nil {
		return nil, constant.NewError(constant.CodePaymentNotFound)
	}
	if po.UserID != userID {
		return nil, constant.NewError(constant.CodePaymentOwnerInvalid)
	}
	return po, nil
}

func (s *PaymentService) upsertPaymentOrder(order *ordermodel.Order, req dto.InitPaymentReq) error {
	existing, err := s.payDao.GetByOrderNo(order.OrderNo)
	if err != nil {
		return constant.NewError(constant.CodeDatabaseError)
	}
	now := time.Now()
	expire := now.Add(paymentExpireWindow)
	if existing == nil {
		po := &ordermodel.PaymentOrder{
			OrderNo:       order.OrderNo,
			UserID:        order.UserID,
			ChannelCode:   req.ChannelCode,
			PayType:       req.PayType,
			Amount:        order.FinalAmount,
			Status:        ordermodel.PaymentStatusPending,
			ExpireTime:    &expire,
			RequestTimeMs: timeutil.NowMs(),
		}
		if req.ReturnURL != "" {
			po.ReturnURL = &req.ReturnURL
		}
		if err := s.payDao.Insert(po); err != nil {
			log.Printf("[PAYMENT-INIT] 支付单入库失败, orderNo=%s: %v", order.OrderNo, err)
			return constant.NewError(constant.CodeDatabaseError)
		}
		return nil
	}
	fields := map[string]interface{}{
		"channel_code": req.ChannelCode,
		"pay_type":     req.PayType,
		"amount":       order.FinalAmount,
		"status":       ordermodel.PaymentStatusPending,
		"expire_time":  expire,
		"update_time":  now,
	}
	if err := s.payDao.Updates(order.OrderNo, fields); err != nil {
		log.Printf("[PAYMENT-INIT] 支付单复位失败, orderNo=%s: %v", order.OrderNo, err)
		return constant.NewError(constant.CodeDatabaseError)
	}
	return nil
}

func (s *PaymentService) writeRequestLog(orderNo, channelCode string, payload map[string]interface{}, reqSign string, requestTimeMs int64, httpStatus int, respBody string, parsed channel.InitResult) {
	success := int8(0)
	if httpStatus == http.StatusOK && parsed.PayURL != "" {
		success = 1
	}
	l := &ordermodel.PaymentRequestLog{
		OrderNo:        orderNo,
		ChannelCode:    channelCode,
		AttemptNo:      1,
		RequestTimeMs:  requestTimeMs,
		RequestBody:    utils.MapToJSON(payload),
		ResponseTimeMs: timeutil.NowMs(),
		HttpStatus:     httpStatus,
		ResponseBody:   respBody,
		Success:        success,
	}
	if reqSign != "" {
		l.RequestSign = &reqSign
	}
	if parsed.ResponseSign != "" {
		l.ResponseSign = &parsed.ResponseSign
	}
	if err := s.payDao.InsertRequestLog(l); err != nil {
		log.Printf("[PAYMENT-INIT] 请求审计落库失败, orderNo=%s: %v", orderNo, err)
	}
	if logger.PaymentLog != nil {
		logger.PaymentLog.WithField("order_no", orderNo).
			WithField("channel", channelCode).
			WithField("http_status", httpStatus).
			WithField("success", success).
			Info("gateway init request")
	}
}

// buildNotifyURL 拼接回调地址 {publicBase}/api/v1/payments/callback/{provider}
func buildNotifyURL(publicBase, provider string) string {
	path := "/api/v1/payments/callback/" + provider
	base := strings.TrimRight(publicBase, "/")
	if base == "" {
		return path
	}
	return base + path
}
