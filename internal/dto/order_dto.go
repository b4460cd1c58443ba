package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderReq 下单请求
type CreateOrderReq struct {
	GoodsID     uint64 `json:"goods_id" binding:"required"`
	GoodsType   string `json:"goods_type" binding:"required,oneof=coin content subscription physical"`
	Quantity    int64  `json:"quantity" binding:"required,min=1"`
	PaymentMode string `json:"payment_mode" binding:"required,oneof=cash coin"`
}

// OrderInfo 订单对外视图
type OrderInfo struct {
	OrderNo     string          `json:"orderNo"`
	UserID      uint64          `json:"userId"`
	GoodsID     uint64          `json:"goodsId"`
	GoodsName   string          `json:"goodsName"`
	GoodsType   string          `json:"goodsType"`
	Quantity    int64           `json:"quantity"`
	PaymentMode string          `json:"paymentMode"`
	CashAmount  decimal.Decimal `json:"cashAmount"`
	CoinCost    int64           `json:"coinCost"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	Status      string          `json:"status"`
	PayStatus   string          `json:"payStatus"`
	PayMethod   *string         `json:"payMethod"`
	PayTime     *time.Time      `json:"payTime"`
	CreateTime  time.Time       `json:"createTime"`
}
