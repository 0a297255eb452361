// Package handle 健康检查处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
)

const timeout = 2 * time.Second

// Health 汇总健康检查，任一必要组件异常即 503.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	if dbc := ctxPkg.GetDBClient(c.Request.Context()); dbc != nil && dbc.DB != nil {
		if sqlDB, err := dbc.DB.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			components["db"] = "ok"
		} else {
			components["db"] = "unhealthy"
			healthy = false
		}
	} else {
		components["db"] = "unhealthy"
		healthy = false
	}

	if obj := ctxPkg.GetObjectStore(c.Request.Context()); obj != nil {
		if err := obj.HealthCheck(ctx); err == nil {
			components["storage"] = "ok"
		} else {
			components["storage"] = "unhealthy"
			healthy = false
		}
	} else {
		components["storage"] = "unhealthy"
		healthy = false
	}

	// MQ/KV 可选，缺失只降级不致不健康
	if mqc := ctxPkg.GetMQClient(c.Request.Context()); mqc != nil {
		components["mq"] = "ok"
	} else {
		components["mq"] = "disabled"
	}

	if kvc := ctxPkg.GetKVClient(c.Request.Context()); kvc != nil {
		components["kv"] = "ok"
	} else {
		components["kv"] = "disabled"
	}

	status, overall := http.StatusOK, "ok"
	if !healthy {
		status, overall = http.StatusServiceUnavailable, "unhealthy"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// HealthDB 数据库健康检查.
func HealthDB(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.DB == nil { // dbc.DB 来自于嵌入的 *gorm.DB
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": "db client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	sqlDB, err := dbc.DB.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "db", "status": "ok"})
}

// HealthStorage 对象存储健康检查（S3 或本地磁盘）.
func HealthStorage(c *gin.Context) {
	obj := ctxPkg.GetObjectStore(c.Request.Context())
	if obj == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "storage", "status": "unhealthy", "error": "object store not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if err := obj.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "storage", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "storage", "status": "ok", "local": obj.IsLocal()})
}

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil { // publisher 与 subscriber 初始化在 New 中, 判空即可
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "mq", "status": "unhealthy", "error": "mq client not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "ok"})
}
