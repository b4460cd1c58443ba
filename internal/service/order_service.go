package service

import (
	"log"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"mall-pay-api/internal/config"
	"mall-pay-api/internal/constant"
	"mall-pay-api/internal/dao"
	"mall-pay-api/internal/dto"
	"mall-pay-api/internal/idgen"
	mainmodel "mall-pay-api/internal/model/main"
	ordermodel "mall-pay-api/internal/model/order"
)

// 订单号候选重试上限，碰撞耗尽视为生成失败
const orderNoMaxAttempts = 5

type OrderService struct {
	mainDao  *dao.MainDao
	orderDao *dao.OrderDao

	// 碰撞检测钩子，默认查订单库
	orderNoExists func(orderNo string) (bool, error)
}

func NewOrderService() *OrderService {
	orderDao := dao.NewOrderDao()
	return &OrderService{
		mainDao:       dao.NewMainDao(),
		orderDao:      orderDao,
		orderNoExists: orderDao.ExistsOrderNo,
	}
}

// amountBreakdown 下单金额计算结果
type amountBreakdown struct {
	Total    decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal
	Cash     decimal.Decimal
	CoinCost int64
}

// computeAmounts 校验支付模式并计算金额。
// coin 模式拒绝金币类商品（自指）以及 coin_price<=0 的商品。
func computeAmounts(goods *mainmodel.Goods, quantity int64, paymentMode string) (amountBreakdown, error) {
	var out amountBreakdown
	if paymentMode != ordermodel.PaymentModeCash && paymentMode != ordermodel.PaymentModeCoin {
		return out, constant.NewError(constant.CodePaymentModeInvalid)
	}
	if quantity < 1 {
		quantity = 1
	}

	out.Total = goods.Price.Mul(decimal.NewFromInt(quantity)).Round(2)
	out.Discount = decimal.Zero
	out.Final = out.Total.Sub(out.Discount).Round(2)

	if paymentMode == ordermodel.PaymentModeCash {
		out.Cash = out.Final
		return out, nil
	}

	if goods.GoodsType == mainmodel.GoodsTypeCoin {
		return out, constant.NewError(constant.CodeGoodsCoinSelfPay)
	}
	if goods.CoinPrice <= 0 {
		return out, constant.NewError(constant.CodeGoodsNoCoinPrice)
	}
	out.Cash = decimal.Zero
	out.CoinCost = goods.CoinPrice * quantity
	return out, nil
}

// generateOrderNo 生成全局唯一订单号：候选号 + 碰撞重试，重试耗尽显式报错
func (s *OrderService) generateOrderNo() (string, error) {
	for attempt := 1; attempt <= orderNoMaxAttempts; attempt++ {
		candidate := strconv.FormatUint(idgen.New(), 10)
		exists, err := s.orderNoExists(candidate)
		if err != nil {
			return "", constant.NewError(constant.CodeDatabaseError)
		}
		if !exists {
			return candidate, nil
		}
		log.Printf("[ORDER] 订单号碰撞, candidate=%s attempt=%d", candidate, attempt)
	}
	return "", constant.NewError(constant.CodeOrderNoGenerateFail)
}

// Create 创建订单
func (s *OrderService) Create(userID uint64, req dto.CreateOrderReq) (*dto.OrderInfo, error) {
	goods, err := s.mainDao.GetGoods(req.GoodsID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if goods == nil || goods.Status != 1 {
		return nil, constant.NewError(constant.CodeGoodsNotFound)
	}
	if goods.GoodsType != req.GoodsType {
		return nil, constant.NewError(constant.CodeGoodsTypeMismatch)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	amounts, err := computeAmounts(goods, quantity, req.PaymentMode)
	if err != nil {
		return nil, err
	}

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, err
	}

	order := &ordermodel.Order{
		OrderNo:        orderNo,
		UserID:         userID,
		GoodsID:        goods.ID,
		GoodsName:      goods.Name,
		GoodsType:      goods.GoodsType,
		Quantity:       quantity,
		PaymentMode:    req.PaymentMode,
		CashAmount:     amounts.Cash,
		CoinCost:       amounts.CoinCost,
		TotalAmount:    amounts.Total,
		DiscountAmount: amounts.Discount,
		FinalAmount:    amounts.Final,
		Status:         ordermodel.OrderStatusPending,
		PayStatus:      ordermodel.PayStatusUnpaid,
	}
	if err := s.orderDao.Insert(order); err != nil {
		log.Printf("[ORDER] 订单入库失败: %v", err)
		return nil, constant.NewError(constant.CodeDatabaseError)
	}

	var info dto.OrderInfo
	_ = copier.Copy(&info, order)
	return &info, nil
}

// Get 查询订单，校验归属
func (s *OrderService) Get(orderNo string, userID uint64) (*dto.OrderInfo, error) {
	order, err := s.orderDao.GetByOrderNo(orderNo)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}
	if order.UserID != userID {
		return nil, constant.NewError(constant.CodeAccessDenied)
	}
	var info dto.OrderInfo
	_ = copier.Copy(&info, order)
	return &info, nil
}

// Cancel 取消订单，已支付/已发货/已完成不可取消
func (s *OrderService) Cancel(orderNo string, userID uint64) error {
	order, err := s.orderDao.GetByOrderNo(orderNo)
	if err != nil {
		return constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil || order.UserID != userID {
		return constant.NewError(constant.CodeOrderNotFound)
	}
	switch order.Status {
	case ordermodel.OrderStatusPaid, ordermodel.OrderStatusShipped, ordermodel.OrderStatusCompleted:
		return constant.NewError(constant.CodeOrderStatusInvalid)
	}
	fields := map[string]interface{}{
		"status":      ordermodel.OrderStatusCancelled,
		"update_time": time.Now(),
	}
	if err := s.orderDao.UpdateGuarded(order.ID, fields, config.C.Lock.MaxRetries); err != nil {
		log.Printf("[ORDER] 取消订单失败, orderNo=%s: %v", orderNo, err)
		return constant.NewError(constant.CodeConflict)
	}
	return nil
}

// MarkPaid 标记订单已支付。幂等：已支付直接返回成功，不重复施加副作用。
// 状态迁移走乐观版本号路径，与并发的状态轮询/重复回调串行化。
func (s *OrderService) MarkPaid(orderNo string, payMethod string) error {
	order, err := s.orderDao.GetByOrderNo(orderNo)
	if err != nil {
		return constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return constant.NewError(constant.CodeOrderNotFound)
	}
	if order.PayStatus == ordermodel.PayStatusPaid {
		return nil
	}
	now := time.Now()
	fields := map[string]interface{}{
		"pay_status":  ordermodel.PayStatusPaid,
		"status":      ordermodel.OrderStatusPaid,
		"pay_method":  payMethod,
		"pay_time":    now,
		"update_time": now,
	}
	if err := s.orderDao.UpdateGuarded(order.ID, fields, config.C.Lock.MaxRetries); err != nil {
		// 竞争方可能已经标记成功，复读确认后按幂等收敛
		latest, rerr := s.orderDao.GetByOrderNo(orderNo)
		if rerr == nil && latest != nil && latest.PayStatus == ordermodel.PayStatusPaid {
			return nil
		}
		log.Printf("[ORDER] 标记支付失败, orderNo=%s: %v", orderNo, err)
		return constant.NewError(constant.CodeConflict)
	}
	return nil
}
