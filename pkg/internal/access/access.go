// Package access 实现集合与图片的访问控制判定.
// 全部为纯函数，不做任何 I/O，调用方负责加载所需数据.
package access

import (
	"slices"

	"github.com/yeisme/photovault/pkg/internal/model"
)

// CanAccessCollection 判断用户是否可以读取集合内容.
// 管理员、创建者以及被授权用户可以访问.
func CanAccessCollection(user *model.User, collection *model.Collection, accessUserIDs []string) bool {
	if user == nil || collection == nil {
		return false
	}

	if user.IsAdmin() {
		return true
	}

	if collection.CreatedBy == user.ID {
		return true
	}

	return slices.Contains(accessUserIDs, user.ID)
}

// CanModifyCollection 判断用户是否可以修改或删除集合.
// 仅管理员与创建者可以修改，被授权用户只读.
func CanModifyCollection(user *model.User, collection *model.Collection) bool {
	if user == nil || collection == nil {
		return false
	}

	if user.IsAdmin() {
		return true
	}

	return collection.CreatedBy == user.ID
}

// CanModifyImage 判断用户是否可以删除图片.
// 管理员、集合创建者以及图片上传者可以删除.
func CanModifyImage(user *model.User, image *model.Image, collection *model.Collection) bool {
	if user == nil || image == nil {
		return false
	}

	if user.IsAdmin() {
		return true
	}

	if collection != nil && collection.CreatedBy == user.ID {
		return true
	}

	return image.UploadedBy == user.ID
}
