package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/api/handler"
	"cafemap/backend/internal/api/middleware"
	"cafemap/backend/pkg/jwt"
	"cafemap/backend/pkg/redis"
)

// Setup Gin 라우터 초기화
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 전역 미들웨어 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 헬스체크 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 인증 (비로그인)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 장소 조회 (비로그인 허용)
		places := v1.Group("/places")
		places.Use(middleware.RateLimit(rdb, 120, time.Minute))
		{
			places.GET("", h.Place.ListPlaces)
			places.GET("/24h", h.Place.List24h)
			places.GET("/status-logs", h.Place.ListStatusLogs)
			places.GET("/:id", h.Place.GetPlace)
		}

		// 로그인 필요
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 북마크
			bookmarks := authorized.Group("/bookmarks")
			{
				bookmarks.POST("", h.Bookmark.Create)
				bookmarks.GET("", h.Bookmark.List)
				bookmarks.GET("/calendar", h.Bookmark.Calendar)
				bookmarks.PATCH("/:id", h.Bookmark.UpdateMemo)
				bookmarks.DELETE("/:id", h.Bookmark.Delete)
			}

			// 수집 파이프라인 (admin 전용)
			collect := authorized.Group("/collect")
			collect.Use(middleware.RoleAuth("admin"))
			{
				collect.POST("/places", h.Place.CollectPlaces)
				collect.POST("/details", h.Place.CollectDetails)
				collect.POST("/refresh", h.Place.RefreshStatus)
			}

			// 내보내기 (admin 전용)
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth("admin"))
			{
				export.GET("/places", h.Export.ExportPlaces)
				export.GET("/map", h.Export.RenderMap)
			}
		}
	}

	return r
}
