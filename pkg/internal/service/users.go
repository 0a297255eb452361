package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// UserService 用户管理服务，仅管理员入口使用.
type UserService struct {
	clients
}

func NewUserService(c context.Context) *UserService {
	return &UserService{clients: clientsFromContext(c)}
}

// List 列出全部用户.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return users, nil
}

// Get 获取单个用户.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}

		return nil, apperr.Internal(err)
	}

	return &user, nil
}

// Create 创建用户，返回一次性初始密码.
func (s *UserService) Create(ctx context.Context, req *types.CreateUserRequest) (*types.CreatedUser, error) {
	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleUser
	}

	if !role.Valid() {
		return nil, apperr.Validation("invalid role: " + req.Role)
	}

	user, password, err := createUserWithPassword(ctx, s.db.DB, req.Username, req.Email, role)
	if err != nil {
		return nil, err
	}

	return &types.CreatedUser{User: user, InitialPassword: password}, nil
}

// BulkCreate 批量创建用户，逐条处理，单条失败不影响其余.
func (s *UserService) BulkCreate(ctx context.Context, req *types.BulkCreateUsersRequest) (*types.BulkCreateUsersResponse, error) {
	resp := &types.BulkCreateUsersResponse{}

	for i := range req.Users {
		item := &req.Users[i]

		created, err := s.Create(ctx, item)
		if err != nil {
			resp.Failed = append(resp.Failed, types.FailedUserItem{
				Username: item.Username,
				Reason:   apperr.From(err).Message,
			})

			continue
		}

		resp.Created = append(resp.Created, *created)
	}

	resp.FailedCount = len(resp.Failed)

	return resp, nil
}

// Update 更新用户邮箱或角色，空字段不变.
func (s *UserService) Update(ctx context.Context, userID string, req *types.UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if req.Email != "" && req.Email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("email = ? AND id <> ?", req.Email, userID).
			Count(&count).Error; err != nil {
			return nil, apperr.Internal(err)
		}

		if count > 0 {
			return nil, apperr.Conflict("email already exists")
		}

		updates["email"] = req.Email
	}

	if req.Role != "" {
		role := model.Role(req.Role)
		if !role.Valid() {
			return nil, apperr.Validation("invalid role: " + req.Role)
		}

		updates["role"] = role
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return s.Get(ctx, userID)
}

// Delete 删除用户及其访问授权关系.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.CollectionAccess{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// BulkDelete 批量删除用户，逐条处理.
func (s *UserService) BulkDelete(ctx context.Context, req *types.BulkDeleteUsersRequest) (*types.BulkDeleteUsersResponse, error) {
	resp := &types.BulkDeleteUsersResponse{}

	for _, id := range req.UserIDs {
		if err := s.Delete(ctx, id); err != nil {
			resp.Failed = append(resp.Failed, types.FailedUserItem{
				Username: id,
				Reason:   apperr.From(err).Message,
			})

			continue
		}

		resp.Deleted = append(resp.Deleted, id)
	}

	resp.FailedCount = len(resp.Failed)

	return resp, nil
}

// ResetPassword 重置用户密码，新密码仅返回一次.
func (s *UserService) ResetPassword(ctx context.Context, userID string) (*types.ResetPasswordResponse, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), configs.GetConfig().Auth.BcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.db.WithContext(ctx).Model(user).
		UpdateColumn("password_hash", string(hash)).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &types.ResetPasswordResponse{UserID: userID, NewPassword: password}, nil
}
