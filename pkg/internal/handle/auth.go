// Package handle 认证相关处理器.
package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// Login 用户名密码登录，返回 JWT 与用户信息.
func Login(c *gin.Context) {
	l := log.Logger()

	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewAuthService(c.Request.Context())

	resp, err := svc.Login(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// Register 管理员创建账号，初始密码仅在本次响应返回一次.
func Register(c *gin.Context) {
	l := log.Logger()

	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewAuthService(c.Request.Context())

	resp, err := svc.Register(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusCreated, resp)
}

// Me 返回当前认证用户.
func Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewAuthService(c.Request.Context())

	fresh, err := svc.Me(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, fresh)
}
