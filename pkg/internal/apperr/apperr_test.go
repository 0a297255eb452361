package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yeisme/photovault/pkg/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.Error
		want int
	}{
		{"参数校验", apperr.Validation("bad input"), http.StatusBadRequest},
		{"未认证", apperr.Unauthorized("no token"), http.StatusUnauthorized},
		{"权限不足", apperr.Forbidden("not yours"), http.StatusForbidden},
		{"资源不存在", apperr.NotFound("image"), http.StatusNotFound},
		{"资源冲突", apperr.Conflict("duplicate"), http.StatusConflict},
		{"存储不可用", apperr.StorageUnavailable(errors.New("minio down")), http.StatusServiceUnavailable},
		{"内部错误", apperr.Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	forbidden := apperr.Forbidden("nope")

	if got := apperr.From(forbidden); got != forbidden {
		t.Errorf("From should return the original *Error, got %+v", got)
	}

	// 包装后的分类错误仍可提取
	wrapped := fmt.Errorf("handler: %w", forbidden)
	if got := apperr.From(wrapped); got.Code != apperr.CodeForbidden {
		t.Errorf("From(wrapped).Code = %s", got.Code)
	}

	plain := apperr.From(errors.New("boom"))
	if plain.Code != apperr.CodeInternal {
		t.Errorf("From(plain).Code = %s", plain.Code)
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("upload: %w", apperr.Validation("too big"))

	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Error("IsCode should see through wrapping")
	}

	if apperr.IsCode(err, apperr.CodeNotFound) {
		t.Error("IsCode must not match a different code")
	}

	if apperr.IsCode(errors.New("boom"), apperr.CodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := apperr.NotFound("collection")

	if err.Message != "collection not found" {
		t.Errorf("Message = %q", err.Message)
	}
}
