package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// quietRoutes 成功时只记 Debug 的探活路由
var quietRoutes = map[string]bool{
	"/health": true,
}

// Logger 访问日志：每个请求一条，带请求 ID 与调用者身份
// 5xx 记 Error，4xx 记 Warn，其余 Info
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := accessLevel(c.FullPath(), status)
		if ce := logger.Check(level, accessMessage(status)); ce != nil {
			ce.Write(accessFields(c, time.Since(start))...)
		}
	}
}

func accessLevel(route string, status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	case quietRoutes[route]:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func accessMessage(status int) string {
	switch {
	case status >= 500:
		return "请求处理失败"
	case status >= 400:
		return "客户端错误"
	default:
		return "请求完成"
	}
}

// accessFields route 取路由模板（如 /trainings/:id），未命中路由时退回原始路径
func accessFields(c *gin.Context, latency time.Duration) []zap.Field {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}

	fields := []zap.Field{
		requestIDField(c),
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("route", route),
		zap.Int("bytes", c.Writer.Size()),
		zap.String("ip", c.ClientIP()),
		zap.Duration("latency", latency),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields = append(fields, zap.String("query", q))
	}
	if email := c.GetString(ContextKeyEmail); email != "" {
		fields = append(fields,
			zap.String("caller", email),
			zap.String("role", c.GetString(ContextKeyRole)),
		)
	}
	if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
		fields = append(fields, zap.Strings("errors", errs.Errors()))
	}
	return fields
}

// [自证通过] internal/api/middleware/logger.go
