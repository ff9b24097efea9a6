package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cafemap/backend/pkg/jwt"
	"cafemap/backend/pkg/redis"
	"cafemap/backend/pkg/response"
)

// JWTAuth JWT 인증 미들웨어
// Authorization: Bearer <token> 에서 Access Token 을 추출해 검증하고,
// rdb 가 있으면 블랙리스트(로그아웃된 토큰)도 확인한다. rdb 가 nil 이면
// 블랙리스트 검사 없이 degraded 모드로 동작한다.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "인증 헤더가 없습니다")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "인증 헤더 형식이 잘못되었습니다")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "유효하지 않거나 만료된 토큰입니다")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "토큰 타입이 잘못되었습니다")
			c.Abort()
			return
		}

		if rdb != nil {
			blocked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blocked {
				response.Unauthorized(c, 10002, "로그아웃된 토큰입니다")
				c.Abort()
				return
			}
			// Redis 오류는 통과 (인증 가용성 우선)
		}

		// 사용자 정보를 컨텍스트에 주입
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth 역할 권한 미들웨어
// 현재 사용자가 지정된 역할 중 하나인지 확인한다
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "인증되지 않았습니다")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "접근 권한이 없습니다")
		c.Abort()
	}
}
