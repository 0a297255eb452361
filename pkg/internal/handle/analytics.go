// Package handle 统计分析处理器，仅管理员可访问（由路由中间件保证）.
package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
)

// limitQuery 解析 limit 查询参数，非法值回退默认.
func limitQuery(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}

	return n
}

// Dashboard 返回全局统计概览.
func Dashboard(c *gin.Context) {
	svc := service.NewAnalyticsService(c.Request.Context())

	resp, err := svc.Dashboard(c.Request.Context())
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// LoginEvents 返回最近登录事件.
func LoginEvents(c *gin.Context) {
	svc := service.NewAnalyticsService(c.Request.Context())

	resp, err := svc.Logins(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// DownloadEvents 返回最近下载事件.
func DownloadEvents(c *gin.Context) {
	svc := service.NewAnalyticsService(c.Request.Context())

	resp, err := svc.Downloads(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// UserActivity 返回指定用户的行为事件.
func UserActivity(c *gin.Context) {
	svc := service.NewAnalyticsService(c.Request.Context())

	resp, err := svc.UserActivity(c.Request.Context(), c.Param("id"), limitQuery(c, 100))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}
