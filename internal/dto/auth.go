package dto

// ── 认证模块 ──

// LoginRequest PIN 登录请求
type LoginRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}

// RefreshTokenRequest 刷新 Token 请求（Cookie 缺失时从 Body 读取）
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"` // Cookie 模式下可不返回
	ExpiresIn    int          `json:"expires_in"`              // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏，不含 PIN 散列）
type UserResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// [自证通过] internal/dto/auth.go
