package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-contacts-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) WithTx(tx *gorm.DB) domain.UserRepository { return &UserRepo{db: tx} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", domain.NormalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) EmailExists(email string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.User{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	res := r.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.User{})
	return res.RowsAffected, res.Error
}
