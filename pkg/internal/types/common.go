// Package types 定义 HTTP API 的请求与响应结构.
package types

// Response 统一响应信封.
// 成功: {"success": true, "data": ...}
// 失败: {"success": false, "error": {"code": ..., "message": ...}}
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody 错误响应体.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK 构造成功响应.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail 构造失败响应.
func Fail(code, message string) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}
