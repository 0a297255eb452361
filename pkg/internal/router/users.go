package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
	"github.com/yeisme/photovault/pkg/middleware"
)

// RegisterUserRoutes 注册用户管理路由，整组仅限管理员.
func RegisterUserRoutes(g *gin.RouterGroup) {
	userRoutes := g.Group("/users", middleware.RequireAdmin())
	{
		userRoutes.GET("", handle.ListUsers)
		userRoutes.POST("", handle.CreateUser)

		// 批量操作
		userRoutes.POST("/bulk", handle.BulkCreateUsers)
		userRoutes.DELETE("/bulk", handle.BulkDeleteUsers)

		singleGroup := userRoutes.Group("/:id")
		{
			singleGroup.GET("", handle.GetUser)
			singleGroup.PUT("", handle.UpdateUser)
			singleGroup.DELETE("", handle.DeleteUser)
			// 重置密码，新密码只返回一次
			singleGroup.POST("/reset-password", handle.ResetUserPassword)
		}
	}
}
