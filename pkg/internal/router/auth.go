package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
	"github.com/yeisme/photovault/pkg/middleware"
)

// RegisterAuthRoutes 注册认证相关路由.
func RegisterAuthRoutes(g *gin.RouterGroup) {
	authRoutes := g.Group("/auth")
	{
		// 登录无需认证（在中间件跳过路径中）
		authRoutes.POST("/login", handle.Login)
		// 创建账号仅限管理员
		authRoutes.POST("/register", middleware.RequireAdmin(), handle.Register)
		// 当前用户
		authRoutes.GET("/me", handle.Me)
	}
}
