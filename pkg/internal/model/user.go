// Package model 定义相册服务的数据库模型.
package model

import (
	"time"
)

// Role 用户角色.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid 检查角色是否合法.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User 用户模型.
type User struct {
	ID       string `gorm:"primaryKey;size:36"        json:"id"`
	Username string `gorm:"size:255;uniqueIndex"      json:"username"`
	Email    string `gorm:"size:255;uniqueIndex"      json:"email"`
	// 密码哈希不参与序列化
	PasswordHash string     `gorm:"size:255"           json:"-"`
	Role         Role       `gorm:"size:16;default:user;index" json:"role"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsAdmin 判断是否管理员.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
