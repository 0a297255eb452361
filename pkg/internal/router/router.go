// Package router 管理路由配置，将路径绑定到 pkg/internal/handle 提供的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/storage"
)

// RegisterAPIRoutes 在 /api 前缀下注册全部业务路由组.
func RegisterAPIRoutes(e *gin.Engine, mgr *storage.Manager) {
	api := e.Group("/api")
	{
		RegisterAuthRoutes(api)
		RegisterUserRoutes(api)
		RegisterGalleryRoutes(api)
		RegisterAnalyticsRoutes(api, mgr)
	}
}
