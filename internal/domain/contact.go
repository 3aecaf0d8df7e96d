package domain

import (
	"time"

	"gorm.io/gorm"
)

// 联系人状态：是否对应一个已注册账号（按 email 匹配）
const (
	StatusRegistered    = "registered"
	StatusNotRegistered = "not_registered"
)

type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"index;size:36;not null" json:"owner_id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"index;size:191;not null" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Notes     string    `gorm:"size:1024" json:"notes"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Contact) TableName() string { return "contacts" }

// ContactFilter 列表筛选条件，零值表示不过滤
type ContactFilter struct {
	Search string // name/email 模糊匹配
	Status string // registered / not_registered
	Letter string // name 首字母
}

type ContactRepository interface {
	Create(ct *Contact) error
	ListByOwner(ownerID string, f ContactFilter) ([]Contact, error)
	// FindByID 带 owner 校验，查不到或不属于该 owner 都返回 nil
	FindByID(id, ownerID string) (*Contact, error)
	Update(ct *Contact) (int64, error)
	Delete(id, ownerID string) (int64, error)
	DeleteAllByOwner(ownerID string) (int64, error)
	// SetStatusByEmail 同步所有 email 匹配的联系人状态，excludeOwnerID 非空时跳过该 owner
	SetStatusByEmail(email, status, excludeOwnerID string) (int64, error)

	WithTx(tx *gorm.DB) ContactRepository
}
