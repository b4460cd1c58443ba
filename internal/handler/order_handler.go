package handler

import (
	"github.com/gin-gonic/gin"

	"mall-pay-api/internal/constant"
	"mall-pay-api/internal/dto"
	"mall-pay-api/internal/middleware"
	"mall-pay-api/internal/service"
	"mall-pay-api/internal/utils"
)

type OrderHandler struct{ svc *service.OrderService }

func NewOrderHandler() *OrderHandler { return &OrderHandler{svc: service.NewOrderService()} }

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, utils.CustomError(constant.CodeInvalidParams, utils.BindErrorMsg(err)))
		return
	}
	info, err := h.svc.Create(middleware.UserID(c), req)
	if err != nil {
		c.JSON(200, utils.FromError(err))
		return
	}
	c.JSON(200, utils.Success(info))
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderNo := c.Param("order_no")
	info, err := h.svc.Get(orderNo, middleware.UserID(c))
	if err != nil {
		c.JSON(200, utils.FromError(err))
		return
	}
	c.JSON(200, utils.Success(info))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderNo := c.Param("order_no")
	if err := h.svc.Cancel(orderNo, middleware.UserID(c)); err != nil {
		c.JSON(200, utils.FromError(err))
		return
	}
	c.JSON(200, utils.Success(nil))
}
