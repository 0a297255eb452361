package access_test

import (
	"testing"

	"github.com/yeisme/photovault/pkg/internal/access"
	"github.com/yeisme/photovault/pkg/internal/model"
)

var (
	admin   = &model.User{ID: "u-admin", Role: model.RoleAdmin}
	creator = &model.User{ID: "u-creator", Role: model.RoleUser}
	member  = &model.User{ID: "u-member", Role: model.RoleUser}
	someone = &model.User{ID: "u-other", Role: model.RoleUser}

	coll = &model.Collection{ID: "c1", CreatedBy: "u-creator"}
)

func TestCanAccessCollection(t *testing.T) {
	accessIDs := []string{"u-member"}

	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{"admin 可访问任意集合", admin, true},
		{"创建者可访问", creator, true},
		{"被授权用户可访问", member, true},
		{"未授权用户不可访问", someone, false},
		{"nil 用户不可访问", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.CanAccessCollection(tt.user, coll, accessIDs); got != tt.want {
				t.Errorf("CanAccessCollection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessCollectionNilCollection(t *testing.T) {
	if access.CanAccessCollection(admin, nil, nil) {
		t.Error("nil collection 不应可访问")
	}
}

func TestCanModifyCollection(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{"admin 可修改", admin, true},
		{"创建者可修改", creator, true},
		{"被授权用户只读，不可修改", member, false},
		{"未授权用户不可修改", someone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.CanModifyCollection(tt.user, coll); got != tt.want {
				t.Errorf("CanModifyCollection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyImage(t *testing.T) {
	img := &model.Image{ID: "i1", CollectionID: "c1", UploadedBy: "u-member"}

	tests := []struct {
		name string
		user *model.User
		coll *model.Collection
		want bool
	}{
		{"admin 可删除", admin, coll, true},
		{"集合创建者可删除", creator, coll, true},
		{"上传者可删除自己的图片", member, coll, true},
		{"上传者无需集合信息也可删除", member, nil, true},
		{"其他用户不可删除", someone, coll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.CanModifyImage(tt.user, img, tt.coll); got != tt.want {
				t.Errorf("CanModifyImage() = %v, want %v", got, tt.want)
			}
		})
	}
}
