// Package handle 图集（collection）处理器.
package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// ListCollections 列出当前用户可见的图集.
func ListCollections(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	views, err := svc.List(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, views)
}

// GetCollection 获取单个图集详情，访问受控.
func GetCollection(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	view, err := svc.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, view)
}

// CreateCollection 创建图集，创建者自动获得访问权.
func CreateCollection(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	l := log.Logger()

	var req types.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create collection request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	view, err := svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusCreated, view)
}

// UpdateCollection 更新图集元数据（名称、描述、封面）.
func UpdateCollection(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	l := log.Logger()

	var req types.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid update collection request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	view, err := svc.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, view)
}

// DeleteCollection 删除图集及其全部图片（元数据先行，远端对象尽力清理）.
func DeleteCollection(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// SetCollectionAccess 授予或回收用户对图集的访问权.
func SetCollectionAccess(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	l := log.Logger()

	var req types.CollectionAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid access request")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	svc := service.NewCollectionService(c.Request.Context())

	view, err := svc.SetAccess(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, view)
}
