package router

import (
	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/photovault/pkg/cache"
	"github.com/yeisme/photovault/pkg/internal/handle"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/middleware"
)

// RegisterAnalyticsRoutes 注册统计分析路由，整组仅限管理员.
// 总览统计对所有管理员返回相同内容，KV 可用时加一层短 TTL 响应缓存.
func RegisterAnalyticsRoutes(g *gin.RouterGroup, mgr *storage.Manager) {
	analyticsRoutes := g.Group("/analytics", middleware.RequireAdmin())
	{
		if kvClient := mgr.GetKVClient(); kvClient != nil {
			cacheCfg := middleware.DefaultCacheConfig(appcache.NewCache(kvClient.KVStore))
			analyticsRoutes.GET("/dashboard", middleware.CacheMiddleware(cacheCfg), handle.Dashboard)
		} else {
			analyticsRoutes.GET("/dashboard", handle.Dashboard)
		}

		analyticsRoutes.GET("/logins", handle.LoginEvents)
		analyticsRoutes.GET("/downloads", handle.DownloadEvents)
		analyticsRoutes.GET("/users/:id/activity", handle.UserActivity)
	}
}
