package handler

import (
	"github.com/gin-gonic/gin"

	"cafemap/backend/pkg/response"
)

// MustGetUserID Gin 컨텍스트에서 user_id 를 안전하게 꺼낸다.
// JWT 미들웨어가 user_id 를 넣지 않았으면 401 응답을 쓰고 false 를 돌려준다.
// 호출자는 ok=false 면 바로 return 해야 한다.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}

// MustGetRole Gin 컨텍스트에서 role 을 안전하게 꺼낸다.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}
