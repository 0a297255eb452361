package types

import "github.com/yeisme/photovault/pkg/internal/model"

// CreateCollectionRequest 创建集合请求.
type CreateCollectionRequest struct {
	Name        string `binding:"required,min=1,max=255" json:"name"`
	Description string `binding:"omitempty,max=2000"     json:"description"`
}

// UpdateCollectionRequest 更新集合请求，空字段保持不变.
type UpdateCollectionRequest struct {
	Name         string  `binding:"omitempty,min=1,max=255" json:"name"`
	Description  *string `json:"description,omitempty"`
	CoverImageID *string `json:"coverImageId,omitempty"`
}

// CollectionAccessRequest 授权/撤销集合访问请求.
type CollectionAccessRequest struct {
	UserID string `binding:"required"                  json:"userId"`
	Action string `binding:"required,oneof=grant revoke" json:"action"`
}

// CollectionView 集合详情视图，带访问列表与图片数.
type CollectionView struct {
	*model.Collection

	AccessibleUserIDs []string `json:"accessibleUserIds"`
	ImageCount        int64    `json:"imageCount"`
}
