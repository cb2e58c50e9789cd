package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dragonmunday12/flightslot/pkg/jwt"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

// 认证中间件注入的上下文键由这些 helper 统一读取，
// 缺失即写 401 并返回 ok=false，调用方直接 return 即可。

func contextString(c *gin.Context, key string) (string, bool) {
	s := c.GetString(key)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetUserID 提取当前登录用户 ID
func MustGetUserID(c *gin.Context) (string, bool) {
	return contextString(c, "user_id")
}

// MustGetRole 提取当前登录用户角色
func MustGetRole(c *gin.Context) (string, bool) {
	return contextString(c, "role")
}

// MustGetClaims 提取完整 JWT 声明，登出时需要 jti 与过期时间
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}
