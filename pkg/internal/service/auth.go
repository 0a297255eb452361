package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
	nlog "github.com/yeisme/photovault/pkg/log"
)

// AuthService 认证服务.
type AuthService struct {
	clients

	analytics *AnalyticsService
}

func NewAuthService(c context.Context) *AuthService {
	return &AuthService{
		clients:   clientsFromContext(c),
		analytics: NewAnalyticsService(c),
	}
}

// Claims JWT 负载.
type Claims struct {
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// SignToken 为用户签发 HS256 JWT.
func SignToken(user *model.User) (string, error) {
	cfg := configs.GetConfig().Auth

	now := time.Now().UTC()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWTExpiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", apperr.Internal(err)
	}

	return signed, nil
}

// ParseToken 校验并解析 JWT.
func ParseToken(tokenString string) (*Claims, error) {
	cfg := configs.GetConfig().Auth

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid token claims")
	}

	return claims, nil
}

// Login 用户名密码登录，成功后更新 LastLogin 并记录登录事件.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}

		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&user).
		UpdateColumn("last_login", now).Error; err != nil {
		// LastLogin 更新失败不阻断登录
		nlog.Logger().Warn().Err(err).Str("user", user.ID).Msg("更新 last_login 失败")
	} else {
		user.LastLogin = &now
	}

	s.analytics.recordEvent(ctx, queue.AnalyticsEventPayload{
		UserID:    user.ID,
		EventType: string(model.EventLogin),
	})

	token, err := SignToken(&user)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{Token: token, User: &user}, nil
}

// Register 创建新用户并生成一次性初始密码，仅管理员可调用（路由层校验角色）.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.RegisterResponse, error) {
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

	return &types.RegisterResponse{User: user, InitialPassword: password}, nil
}

// Me 返回当前用户信息.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}

		return nil, apperr.Internal(err)
	}

	return &user, nil
}

// createUserWithPassword 创建用户，返回生成的明文初始密码.
func createUserWithPassword(ctx context.Context, db *gorm.DB, username, email string, role model.Role) (*model.User, string, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, "", apperr.Internal(err)
	}

	if count > 0 {
		return nil, "", apperr.Conflict("username or email already exists")
	}

	password, err := generatePassword()
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), configs.GetConfig().Auth.BcryptCost)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", apperr.Internal(err)
	}

	return user, password, nil
}
