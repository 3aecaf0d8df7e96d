package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-contacts-api/internal/domain"
)

type UserService struct {
	db       *gorm.DB
	users    domain.UserRepository
	contacts domain.ContactRepository
	log      *zap.Logger
}

func NewUserService(db *gorm.DB, users domain.UserRepository, contacts domain.ContactRepository, log *zap.Logger) *UserService {
	return &UserService{db: db, users: users, contacts: contacts, log: log}
}

func (s *UserService) Profile(userID string) (*domain.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, Internal("find user failed", err)
	}
	if u == nil {
		return nil, NotFound("user not found")
	}
	return u, nil
}

type ProfileInput struct {
	Name      string
	Phone     string
	AvatarURL string
}

// UpdateProfile 只改 name/phone/avatar，email 建号后不可变
func (s *UserService) UpdateProfile(userID string, in ProfileInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, BadRequest("name is required")
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, Internal("find user failed", err)
	}
	if u == nil {
		return nil, NotFound("user not found")
	}
	u.Name = in.Name
	u.Phone = strings.TrimSpace(in.Phone)
	u.AvatarURL = strings.TrimSpace(in.AvatarURL)
	if err := s.users.Update(u); err != nil {
		return nil, Internal("update user failed", err)
	}
	return u, nil
}

// DeleteAccount 删号一致性流程，三步必须同一事务：
//  1. 其他通讯录里指向该邮箱的联系人降级为 not_registered
//  2. 清空本人通讯录
//  3. 删用户行
//
// 任一步失败整体回滚，降级必须发生在用户行还在时（按其 email 匹配）。
// 重复调用：第二次在前置校验就返回 not found，不产生写入。
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return Internal("find user failed", err)
	}
	if u == nil {
		return NotFound("user not found")
	}

	var demoted, purged int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contacts := s.contacts.WithTx(tx)
		users := s.users.WithTx(tx)

		var err error
		if demoted, err = contacts.SetStatusByEmail(u.Email, domain.StatusNotRegistered, u.ID); err != nil {
			return err
		}
		if purged, err = contacts.DeleteAllByOwner(u.ID); err != nil {
			return err
		}
		n, err := users.Delete(u.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			// 并发删除抢先，整体回滚保持降级不生效
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("user not found")
		}
		return Internal("delete account failed", err)
	}

	s.log.Info("account deleted",
		zap.String("user_id", u.ID),
		zap.Int64("contacts_demoted", demoted),
		zap.Int64("contacts_purged", purged),
	)
	return nil
}
