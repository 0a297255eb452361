// Package handle 提供 HTTP 请求处理器的实现.
package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// respondOK 写出统一成功信封.
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, types.OK(data))
}

// respondErr 将业务错误映射为统一错误信封与 HTTP 状态码.
func respondErr(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.HTTPStatus(), types.Fail(string(ae.Code), ae.Message))
}

// currentUser 从 gin 上下文取出认证中间件写入的用户.
func currentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(ctxPkg.GinUserKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*model.User)
	if !ok || user == nil {
		return nil, false
	}

	return user, true
}

// requireUser 取当前用户，缺失时直接写出 401.
func requireUser(c *gin.Context) (*model.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.Fail(string(apperr.CodeUnauthorized), "authentication required"))

		return nil, false
	}

	return user, true
}
