package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid"

	"github.com/yeisme/photovault/pkg/internal/apperr"
)

// allowedFileRe 允许上传的图片/视频扩展名.
var allowedFileRe = regexp.MustCompile(`(?i)\.(jpeg|jpg|png|gif|bmp|webp|mp4|mov|avi|webm)$`)

// allowedContentTypes 允许上传的 MIME 类型.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/webp": {},
	"video/mp4":  {},
	"video/quicktime": {},
	"video/x-msvideo": {},
	"video/webm": {},
}

// validateUploadFile 校验文件名、大小与类型，扩展名和 MIME 类型都需要在允许列表内.
func validateUploadFile(fileName string, size, maxSize int64, contentType string) error {
	if fileName == "" {
		return apperr.Validation("file name is required")
	}

	if size <= 0 {
		return apperr.Validation("empty file")
	}

	if size > maxSize {
		return apperr.Validation(fmt.Sprintf("file %s exceeds the %d byte limit", fileName, maxSize))
	}

	if !allowedFileRe.MatchString(fileName) {
		return apperr.Validation(fmt.Sprintf("file type of %s is not allowed", fileName))
	}

	base := contentType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}

	if _, ok := allowedContentTypes[strings.ToLower(strings.TrimSpace(base))]; !ok {
		return apperr.Validation(fmt.Sprintf("content type %s is not allowed", contentType))
	}

	return nil
}

// buildStorageKey 构造对象键：collections/{collectionID}/{unix毫秒}-{ulid}{扩展名}.
// 时间戳前缀保持按上传时间排序，ULID 保证同毫秒内不冲突.
func buildStorageKey(collectionID, originalName string) string {
	now := time.Now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader)
	ext := strings.ToLower(path.Ext(originalName))

	return fmt.Sprintf("collections/%s/%d-%s%s", collectionID, now.UnixMilli(), strings.ToLower(id.String()), ext)
}

// collectionKeyPrefix 返回集合下全部对象的键前缀.
func collectionKeyPrefix(collectionID string) string {
	return "collections/" + collectionID + "/"
}

// passwordCharset 初始密码字符集，排除易混淆字符.
const passwordCharset = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789!@#$%"

const generatedPasswordLength = 16

// generatePassword 生成随机初始密码，仅在创建/重置时返回一次.
func generatePassword() (string, error) {
	var b strings.Builder

	for range generatedPasswordLength {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}

		b.WriteByte(passwordCharset[n.Int64()])
	}

	return b.String(), nil
}
