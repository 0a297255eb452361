package model

import (
	"time"
)

// Image 图片/视频元数据模型.
// StorageKey 对应对象存储中的键：collections/{collectionID}/{generatedFilename}.
type Image struct {
	ID            string    `gorm:"primaryKey;size:36"                   json:"id"`
	CollectionID  string    `gorm:"size:36;index:idx_collection_uploaded" json:"collectionId"`
	FileName      string    `gorm:"size:512"                             json:"fileName"`
	OriginalName  string    `gorm:"size:512"                             json:"originalName"`
	StorageKey    string    `gorm:"size:1024;uniqueIndex"                json:"storageKey"`
	ContentType   string    `gorm:"size:255"                             json:"contentType"`
	SizeBytes     int64     `json:"sizeBytes"`
	UploadedBy    string    `gorm:"size:36;index"                        json:"uploadedBy"`
	DownloadCount int64     `gorm:"default:0"                            json:"downloadCount"`
	ViewCount     int64     `gorm:"default:0"                            json:"viewCount"`
	UploadedAt    time.Time `gorm:"index:idx_collection_uploaded,sort:desc" json:"uploadedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
