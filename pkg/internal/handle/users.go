// Package handle 用户管理处理器，全部要求管理员权限（由路由中间件保证）.
package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// ListUsers 列出全部用户.
func ListUsers(c *gin.Context) {
	svc := service.NewUserService(c.Request.Context())

	users, err := svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, users)
}

// GetUser 按 ID 获取用户.
func GetUser(c *gin.Context) {
	svc := service.NewUserService(c.Request.Context())

	user, err := svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, user)
}

// CreateUser 创建单个用户，响应中一次性返回生成的初始密码.
func CreateUser(c *gin.Context) {
	l := log.Logger()

	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create user request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewUserService(c.Request.Context())

	created, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusCreated, created)
}

// BulkCreateUsers 批量创建用户，逐条处理，失败项汇总返回.
func BulkCreateUsers(c *gin.Context) {
	l := log.Logger()

	var req types.BulkCreateUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid bulk create request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.BulkCreate(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusCreated, resp)
}

// UpdateUser 更新用户资料（email、role）.
func UpdateUser(c *gin.Context) {
	l := log.Logger()

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid update user request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewUserService(c.Request.Context())

	user, err := svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, user)
}

// DeleteUser 删除用户并清理其访问授权.
func DeleteUser(c *gin.Context) {
	svc := service.NewUserService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// BulkDeleteUsers 批量删除用户，逐条处理.
func BulkDeleteUsers(c *gin.Context) {
	l := log.Logger()

	var req types.BulkDeleteUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid bulk delete request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.BulkDelete(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// ResetUserPassword 重置用户密码，新密码仅在本次响应返回.
func ResetUserPassword(c *gin.Context) {
	svc := service.NewUserService(c.Request.Context())

	resp, err := svc.ResetPassword(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}
