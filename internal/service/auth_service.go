package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-contacts-api/internal/core/auth"
	"go-contacts-api/internal/domain"
	"go-contacts-api/pkg/utils"
)

// 同一邮箱的忘记密码请求窗口
const forgotThrottleWindow = 15 * time.Minute

// ResetGuard 重置令牌一次性使用标记与忘记密码节流，Redis 实现见 core/cache
type ResetGuard interface {
	ConsumeResetToken(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	AllowForgotRequest(ctx context.Context, email string, window time.Duration) (bool, error)
}

type AuthService struct {
	db       *gorm.DB
	users    domain.UserRepository
	contacts domain.ContactRepository
	jwter    *auth.JWTer
	guard    ResetGuard // 可为 nil（未配置 Redis 时降级为不限流、不限次）
	log      *zap.Logger
}

func NewAuthService(db *gorm.DB, users domain.UserRepository, contacts domain.ContactRepository, jwter *auth.JWTer, guard ResetGuard, log *zap.Logger) *AuthService {
	return &AuthService{db: db, users: users, contacts: contacts, jwter: jwter, guard: guard, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register 建号并把各个通讯录里同邮箱的联系人置为 registered。
// 建号与联系人晋升在同一事务内，失败整体回滚。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := domain.NormalizeEmail(in.Email)

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, "", Internal("check email failed", err)
	}
	if exists {
		return nil, "", BadRequest("email already registered")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: utils.HashPassword(in.Password),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(u); err != nil {
			return err
		}
		if _, err := s.contacts.WithTx(tx).SetStatusByEmail(email, domain.StatusRegistered, ""); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// 并发注册兜底：唯一索引冲突按重复邮箱处理
		if isDupKey(err) {
			return nil, "", BadRequest("email already registered")
		}
		return nil, "", Internal("register failed", err)
	}

	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", Internal("issue token failed", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, token, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", Internal("find user failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", BadRequest("invalid credentials")
	}
	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", Internal("issue token failed", err)
	}
	return u, token, nil
}

// ForgotPassword 无论邮箱是否存在都静默成功，不向调用方泄露注册状态。
// 重置令牌只写日志（不发邮件），有 Redis 时按邮箱节流。
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	u, err := s.users.FindByEmail(email)
	if err != nil {
		return Internal("find user failed", err)
	}
	if u == nil {
		s.log.Info("password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	if s.guard != nil {
		ok, err := s.guard.AllowForgotRequest(ctx, email, forgotThrottleWindow)
		if err != nil {
			s.log.Warn("forgot-password throttle unavailable", zap.Error(err))
		} else if !ok {
			s.log.Info("password reset throttled", zap.String("user_id", u.ID))
			return nil
		}
	}

	token, err := s.jwter.IssueReset(u.ID, u.Email)
	if err != nil {
		return Internal("issue reset token failed", err)
	}
	s.log.Info("password reset token issued",
		zap.String("user_id", u.ID),
		zap.String("reset_token", token),
	)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.jwter.Parse(token)
	if err != nil {
		if err == auth.ErrExpiredToken {
			return BadRequest("token expired, request a new reset")
		}
		return BadRequest("invalid token")
	}
	if claims.Type != auth.TokenTypePasswordReset {
		return BadRequest("invalid token")
	}
	if len(newPassword) < 6 {
		return BadRequest("password must be at least 6 characters")
	}

	if s.guard != nil && claims.ExpiresAt != nil {
		ok, err := s.guard.ConsumeResetToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
		if err != nil {
			return Internal("reset token check failed", err)
		}
		if !ok {
			return BadRequest("token already used")
		}
	}

	if err := s.users.UpdatePassword(claims.UID, utils.HashPassword(newPassword)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return BadRequest("invalid token")
		}
		return Internal("update password failed", err)
	}
	s.log.Info("password reset", zap.String("user_id", claims.UID))
	return nil
}
