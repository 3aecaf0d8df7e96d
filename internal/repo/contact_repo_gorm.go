package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-contacts-api/internal/domain"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) WithTx(tx *gorm.DB) domain.ContactRepository { return &ContactRepo{db: tx} }

func (r *ContactRepo) Create(ct *domain.Contact) error { return r.db.Create(ct).Error }

func (r *ContactRepo) ListByOwner(ownerID string, f domain.ContactFilter) ([]domain.Contact, error) {
	q := r.db.Model(&domain.Contact{}).Where("owner_id = ?", ownerID)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Letter != "" {
		q = q.Where("UPPER(SUBSTR(name, 1, 1)) = ?", strings.ToUpper(f.Letter[:1]))
	}
	var cts []domain.Contact
	err := q.Order("name").Find(&cts).Error
	return cts, err
}

func (r *ContactRepo) FindByID(id, ownerID string) (*domain.Contact, error) {
	var ct domain.Contact
	err := r.db.First(&ct, "id = ? AND owner_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ct, err
}

func (r *ContactRepo) Update(ct *domain.Contact) (int64, error) {
	// 整行按主键+owner覆盖，避免跨 owner 改写
	res := r.db.Model(&domain.Contact{}).
		Where("id = ? AND owner_id = ?", ct.ID, ct.OwnerID).
		Updates(map[string]any{
			"name":   ct.Name,
			"email":  ct.Email,
			"phone":  ct.Phone,
			"notes":  ct.Notes,
			"status": ct.Status,
		})
	return res.RowsAffected, res.Error
}

func (r *ContactRepo) Delete(id, ownerID string) (int64, error) {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Contact{})
	return res.RowsAffected, res.Error
}

func (r *ContactRepo) DeleteAllByOwner(ownerID string) (int64, error) {
	res := r.db.Where("owner_id = ?", ownerID).Delete(&domain.Contact{})
	return res.RowsAffected, res.Error
}

func (r *ContactRepo) SetStatusByEmail(email, status, excludeOwnerID string) (int64, error) {
	q := r.db.Model(&domain.Contact{}).Where("email = ?", domain.NormalizeEmail(email))
	if excludeOwnerID != "" {
		q = q.Where("owner_id <> ?", excludeOwnerID)
	}
	res := q.Update("status", status)
	return res.RowsAffected, res.Error
}
