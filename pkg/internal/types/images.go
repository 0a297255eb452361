package types

import "github.com/yeisme/photovault/pkg/internal/model"

// UploadImageResponse 单文件上传响应.
type UploadImageResponse struct {
	Image *model.Image `json:"image"`
}

// FailedUploadItem 批量上传中单个失败项.
type FailedUploadItem struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// BatchUploadResponse 批量上传结果，部分成功不视为整体失败.
type BatchUploadResponse struct {
	Uploaded    []*model.Image     `json:"uploaded"`
	Failed      []FailedUploadItem `json:"failed,omitempty"`
	FailedCount int                `json:"failedCount"`
}

// ListImagesResponse 集合内图片列表，按上传时间倒序.
type ListImagesResponse struct {
	Images []*model.Image `json:"images"`
	Total  int64          `json:"total"`
}

// DownloadURLResponse 带有效期的下载 URL.
type DownloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"` // 秒
}
