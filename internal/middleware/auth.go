package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mall-pay-api/internal/constant"
	"mall-pay-api/internal/utils"
)

const ctxUserID = "user_id"

// Auth 从网关注入的 X-User-Id 头解出用户身份。
// 身份鉴别由上游网关完成，这里只做存在性校验与透传。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-Id")
		uid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || uid == 0 {
			c.JSON(200, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

// UserID 取出 Auth 中间件注入的用户 ID
func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ctxUserID); ok {
		if uid, ok := v.(uint64); ok {
			return uid
		}
	}
	return 0
}
