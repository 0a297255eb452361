package service

import (
	"strings"
	"testing"

	"github.com/yeisme/photovault/pkg/internal/apperr"
)

const testMaxSize = 50 * 1024 * 1024

// TestValidateUploadFile 校验文件名、大小与类型限制.
func TestValidateUploadFile(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"合法 jpeg", "photo.jpg", 1024, "image/jpeg", false},
		{"合法大写扩展名", "PHOTO.JPG", 1024, "image/jpeg", false},
		{"合法 webp", "pic.webp", 1024, "image/webp", false},
		{"合法 mp4 视频", "clip.mp4", 1024, "video/mp4", false},
		{"合法 mov 视频", "clip.mov", 1024, "video/quicktime", false},
		{"带参数的 content type", "photo.png", 1024, "image/png; charset=binary", false},
		{"空文件名", "", 1024, "image/jpeg", true},
		{"空文件", "photo.jpg", 0, "image/jpeg", true},
		{"超过大小限制", "photo.jpg", testMaxSize + 1, "image/jpeg", true},
		{"不允许的扩展名", "archive.zip", 1024, "application/zip", true},
		{"扩展名合法但类型不合法", "photo.jpg", 1024, "application/octet-stream", true},
		{"无扩展名", "photo", 1024, "image/jpeg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUploadFile(tt.fileName, tt.size, testMaxSize, tt.contentType)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateUploadFile(%q) error = %v, wantErr %v", tt.fileName, err, tt.wantErr)
			}

			if err != nil && !apperr.IsCode(err, apperr.CodeValidation) {
				t.Errorf("validateUploadFile(%q) error code = %v, want VALIDATION_ERROR", tt.fileName, err)
			}
		})
	}
}

// TestBuildStorageKey 对象键需要带集合前缀且全小写.
func TestBuildStorageKey(t *testing.T) {
	key := buildStorageKey("col-1", "My Photo.JPG")

	if !strings.HasPrefix(key, "collections/col-1/") {
		t.Errorf("key %q missing collection prefix", key)
	}

	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q should keep a lowercased extension", key)
	}

	if key != strings.ToLower(key) {
		t.Errorf("key %q should be lowercase", key)
	}

	other := buildStorageKey("col-1", "My Photo.JPG")
	if key == other {
		t.Error("two keys for the same file should not collide")
	}
}

// TestCollectionKeyPrefix 前缀需与 buildStorageKey 的布局一致.
func TestCollectionKeyPrefix(t *testing.T) {
	key := buildStorageKey("col-9", "a.png")
	if !strings.HasPrefix(key, collectionKeyPrefix("col-9")) {
		t.Errorf("key %q not under prefix %q", key, collectionKeyPrefix("col-9"))
	}
}

// TestGeneratePassword 长度与字符集.
func TestGeneratePassword(t *testing.T) {
	seen := map[string]struct{}{}

	for range 8 {
		pw, err := generatePassword()
		if err != nil {
			t.Fatalf("generatePassword: %v", err)
		}

		if len(pw) != generatedPasswordLength {
			t.Errorf("password length = %d, want %d", len(pw), generatedPasswordLength)
		}

		for _, r := range pw {
			if !strings.ContainsRune(passwordCharset, r) {
				t.Errorf("password contains %q outside charset", r)
			}
		}

		if _, dup := seen[pw]; dup {
			t.Error("duplicate password generated")
		}

		seen[pw] = struct{}{}
	}
}
