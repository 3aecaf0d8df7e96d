package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Phone        string    `gorm:"size:32" json:"phone"`
	AvatarURL    string    `gorm:"size:255" json:"avatar_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// NormalizeEmail 入库/查询统一小写，联系人状态按 email 精确匹配
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	EmailExists(email string) (bool, error)
	Update(u *User) error
	UpdatePassword(id, passwordHash string) error
	Delete(id string) (int64, error)

	// WithTx 返回绑定到事务连接的仓库，配合 gorm.DB.Transaction 使用
	WithTx(tx *gorm.DB) UserRepository
}
