package handler

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"mall-pay-api/internal/callback"
	"mall-pay-api/internal/constant"
	"mall-pay-api/internal/dto"
	"mall-pay-api/internal/middleware"
	"mall-pay-api/internal/mq"
	"mall-pay-api/internal/service"
	"mall-pay-api/internal/utils"
)

type PaymentHandler struct {
	svc *service.PaymentService
	cb  *callback.PaymentCallback
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		svc: service.NewPaymentService(),
		cb:  callback.NewPaymentCallback(mq.NewPublisher()),
	}
}

// Init 发起支付。成功路径把上游应答原样透传给客户端。
func (h *PaymentHandler) Init(c *gin.Context) {
	var req dto.InitPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, utils.CustomError(constant.CodeInvalidParams, utils.BindErrorMsg(err)))
		return
	}
	raw, err := h.svc.InitPayment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(200, utils.FromError(err))
		return
	}
	c.Data(200, "application/json; charset=utf-8", raw)
}

// Get 查询支付单
func (h *PaymentHandler) Get(c *gin.Context) {
	orderNo := c.Param("order_no")
	po, err := h.svc.GetPaymentOrder(middleware.UserID(c), orderNo)
	if err != nil {
		c.JSON(200, utils.FromError(err))
		return
	}
	c.JSON(200, utils.Success(po))
}

// Callback 服务商异步通知。HTTP 状态恒 200，重投语义由响应体 token 承载。
func (h *PaymentHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	log.Printf("[CALLBACK] 收到回调, provider=%s ip=%s", provider, utils.GetClientIP(c))
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(200, callback.TokenRetry)
		return
	}
	c.String(200, h.cb.Handle(c.Request.Context(), provider, body))
}
