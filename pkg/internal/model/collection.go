package model

import (
	"time"
)

// Collection 相册集合模型.
type Collection struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255;index"     json:"name"`
	Description  string    `gorm:"type:text"          json:"description"`
	CreatedBy    string    `gorm:"size:36;index"      json:"createdBy"`
	CoverImageID *string   `gorm:"size:36"            json:"coverImageId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CollectionAccess 集合访问授权关系.
// 该连接表是访问关系的唯一事实来源，用户侧的可访问集合列表由此表查询得出.
type CollectionAccess struct {
	CollectionID string    `gorm:"primaryKey;size:36;index" json:"collectionId"`
	UserID       string    `gorm:"primaryKey;size:36;index" json:"userId"`
	GrantedBy    string    `gorm:"size:36"                  json:"grantedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName 指定表名.
func (CollectionAccess) TableName() string {
	return "collection_access"
}
