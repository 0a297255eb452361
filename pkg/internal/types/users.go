package types

import "github.com/yeisme/photovault/pkg/internal/model"

// CreateUserRequest 管理员创建用户请求.
type CreateUserRequest struct {
	Username string `binding:"required,min=3,max=64"       json:"username"`
	Email    string `binding:"required,email"              json:"email"`
	Role     string `binding:"omitempty,oneof=admin user"  json:"role"`
}

// BulkCreateUsersRequest 批量创建用户请求.
type BulkCreateUsersRequest struct {
	Users []CreateUserRequest `binding:"required,min=1,max=50,dive" json:"users"`
}

// CreatedUser 创建结果，含一次性初始密码.
type CreatedUser struct {
	User            *model.User `json:"user"`
	InitialPassword string      `json:"initialPassword"`
}

// BulkCreateUsersResponse 批量创建结果，逐条成功或失败.
type BulkCreateUsersResponse struct {
	Created     []CreatedUser    `json:"created"`
	Failed      []FailedUserItem `json:"failed,omitempty"`
	FailedCount int              `json:"failedCount"`
}

// FailedUserItem 批量操作中单条失败项.
type FailedUserItem struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// UpdateUserRequest 更新用户请求，空字段保持不变.
type UpdateUserRequest struct {
	Email string `binding:"omitempty,email"             json:"email"`
	Role  string `binding:"omitempty,oneof=admin user"  json:"role"`
}

// BulkDeleteUsersRequest 批量删除用户请求.
type BulkDeleteUsersRequest struct {
	UserIDs []string `binding:"required,min=1" json:"userIds"`
}

// BulkDeleteUsersResponse 批量删除结果.
type BulkDeleteUsersResponse struct {
	Deleted     []string         `json:"deleted"`
	Failed      []FailedUserItem `json:"failed,omitempty"`
	FailedCount int              `json:"failedCount"`
}

// ResetPasswordResponse 重置密码响应，新密码仅在此返回一次.
type ResetPasswordResponse struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}
