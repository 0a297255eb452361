package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// AuthMiddleware 基于 Bearer JWT 做统一身份认证。
//   - 校验 Authorization: Bearer <token> 并解析 JWT
//   - 按 sub 加载用户并注入 gin.Context 与 request.Context，角色变更即时生效
//   - 支持通过配置跳过某些路径（如 /metrics, /health, /api/auth/login）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("UNAUTHORIZED", "missing bearer token"))

			return
		}

		claims, err := service.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("UNAUTHORIZED", "invalid or expired token"))

			return
		}

		dbc := ctxPkg.GetDBClient(c.Request.Context())
		if dbc == nil || dbc.DB == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.Fail("STORAGE_UNAVAILABLE", "database not ready"))

			return
		}

		var user model.User
		if err := dbc.DB.WithContext(c.Request.Context()).
			First(&user, "id = ?", claims.Subject).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("UNAUTHORIZED", "user no longer exists"))

				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, types.Fail("INTERNAL_ERROR", "internal error"))

			return
		}

		c.Set(ctxPkg.GinUserKey, &user)
		ctx := context.WithValue(c.Request.Context(), ctxPkg.UserIDKey, user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken 从 Authorization 头提取 token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
