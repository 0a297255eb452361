// Package apperr 定义领域错误类型及其到 HTTP 状态码的映射.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 错误分类.
type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Error 带分类的领域错误.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus 返回错误对应的 HTTP 状态码.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New 创建指定分类的错误.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap 包装底层错误.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation 参数校验错误.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Unauthorized 未认证错误.
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

// Forbidden 权限不足错误.
func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

// NotFound 资源不存在错误.
func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found")
}

// Conflict 资源冲突错误.
func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

// StorageUnavailable 存储不可用错误.
func StorageUnavailable(err error) *Error {
	return Wrap(CodeStorageUnavailable, "storage unavailable", err)
}

// Internal 内部错误.
func Internal(err error) *Error {
	return Wrap(CodeInternal, "internal error", err)
}

// From 从任意 error 提取分类错误，非分类错误归为 Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	return Internal(err)
}

// IsCode 判断错误是否属于指定分类.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}

	return false
}
