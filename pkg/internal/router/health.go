package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(e *gin.Engine) {
	e.GET("/health", handle.Health)

	healthRoutes := e.Group("/health")
	{
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/storage", handle.HealthStorage)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}
