// Package api 汇总 HTTP 服务的路由注册入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/router"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/middleware"
)

// RegisterGroup 注册全部路由到传入的 gin 引擎：
// /api 下的业务路由、健康检查、调度器管理，本地存储模式下再挂 /uploads 静态目录.
func RegisterGroup(e *gin.Engine, mgr *storage.Manager) *gin.Engine {
	router.RegisterAPIRoutes(e, mgr)
	router.RegisterHealthCheckRoute(e)

	adminGroup := e.Group("/api", middleware.RequireAdmin())
	router.RegisterSchedulerRoutes(adminGroup)

	// S3 凭证缺失时回退本地磁盘，对象经静态路由直出
	if obj := mgr.GetObjectStore(); obj != nil && obj.IsLocal() {
		e.Static("/uploads", obj.BaseDir())
	}

	return e
}
