package types

import "github.com/yeisme/photovault/pkg/internal/model"

// LoginRequest 登录请求.
type LoginRequest struct {
	Username string `binding:"required" json:"username"`
	Password string `binding:"required" json:"password"`
}

// LoginResponse 登录响应，包含 JWT 与用户信息.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterRequest 管理员注册新用户请求.
type RegisterRequest struct {
	Username string `binding:"required,min=3,max=64" json:"username"`
	Email    string `binding:"required,email"        json:"email"`
	Role     string `binding:"omitempty,oneof=admin user" json:"role"`
}

// RegisterResponse 注册响应，初始密码仅在此返回一次.
type RegisterResponse struct {
	User            *model.User `json:"user"`
	InitialPassword string      `json:"initialPassword"`
}
