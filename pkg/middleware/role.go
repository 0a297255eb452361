// Package middleware 提供角色与权限相关的中间件和辅助方法。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// AuthedUser 从 gin.Context 获取认证中间件注入的用户.
func AuthedUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxPkg.GinUserKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}

	return nil
}

// RequireAdmin 要求 admin 角色，不满足则返回 403。
// 未认证（用户缺失）返回 401，需置于 AuthMiddleware 之后.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := AuthedUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("UNAUTHORIZED", "authentication required"))
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, types.Fail("FORBIDDEN", "admin role required"))
			return
		}

		c.Next()
	}
}
