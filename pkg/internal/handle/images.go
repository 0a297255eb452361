// Package handle 图片上传、浏览、下载处理器.
package handle

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// uploadFileFromHeader 打开 multipart 文件并封装为服务层的上传描述.
// 调用方负责关闭返回的 closer.
func uploadFileFromHeader(fh *multipart.FileHeader) (*service.UploadFile, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &service.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, f, nil
}

// UploadImage 单文件上传到指定图集.
func UploadImage(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	l := log.Logger()

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("missing upload file")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", "file field is required"))

		return
	}

	upload, f, err := uploadFileFromHeader(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}
	defer f.Close()

	svc := service.NewImageService(c.Request.Context())

	img, err := svc.UploadSingle(c.Request.Context(), user, c.Param("id"), upload)
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusCreated, img)
}

// UploadImages 批量上传（multipart files 字段），尽力而为，部分失败不影响其余文件.
func UploadImages(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	l := log.Logger()

	form, err := c.MultipartForm()
	if err != nil {
		l.Warn().Err(err).Msg("invalid multipart form")
		c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", err.Error()))

		return
	}

	headers := form.File["files"]
	uploads := make([]*service.UploadFile, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))

	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()

	for _, fh := range headers {
		upload, f, openErr := uploadFileFromHeader(fh)
		if openErr != nil {
			c.JSON(http.StatusBadRequest, types.Fail("VALIDATION_ERROR", openErr.Error()))

			return
		}

		closers = append(closers, f)
		uploads = append(uploads, upload)
	}

	svc := service.NewImageService(c.Request.Context())

	resp, err := svc.UploadBatch(c.Request.Context(), user, c.Param("id"), uploads)
	if err != nil {
		respondErr(c, err)

		return
	}

	status := http.StatusCreated
	if resp.FailedCount > 0 {
		status = http.StatusMultiStatus
	}

	respondOK(c, status, resp)
}

// ListImages 列出图集图片，按上传时间倒序.
func ListImages(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewImageService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}

// GetImage 获取图片详情，递增查看计数.
func GetImage(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewImageService(c.Request.Context())

	img, err := svc.Get(c.Request.Context(), user, c.Param("imageId"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, img)
}

// DeleteImage 删除图片，远端失败不阻塞元数据清理.
func DeleteImage(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewImageService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), user, c.Param("imageId")); err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, gin.H{"deleted": c.Param("imageId")})
}

// GetImageDownloadURL 获取带时效的下载 URL，递增下载计数.
func GetImageDownloadURL(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewImageService(c.Request.Context())

	resp, err := svc.DownloadURL(c.Request.Context(), user, c.Param("imageId"))
	if err != nil {
		respondErr(c, err)

		return
	}

	respondOK(c, http.StatusOK, resp)
}
