package repository

import (
	"errors"
	"fmt"
	"time"

	"logistics-accounts/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the lookup. Any other error from
// a repository method means the store itself misbehaved.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uuid.UUID) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByPhone(phone string) (*model.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByPhone(phone string) (bool, error)
	UpdatePassword(email string, passwordHash string) error

	// Reset-token lifecycle. The token lives on the user row, so saving a new
	// one replaces whatever was pending for that email.
	SaveResetToken(email string, token string, expiry time.Time) error
	FindByResetToken(token string) (*model.User, error)
	ClearResetToken(token string) error
	DeleteExpiredResetTokens(now time.Time) error
}

type pgUserRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *pgUserRepo) GetByID(id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *pgUserRepo) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *pgUserRepo) GetByPhone(phone string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *pgUserRepo) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pgUserRepo) ExistsByPhone(phone string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pgUserRepo) UpdatePassword(email string, passwordHash string) error {
	res := r.db.Model(&model.User{}).Where("email = ?", email).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgUserRepo) SaveResetToken(email string, token string, expiry time.Time) error {
	res := r.db.Model(&model.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgUserRepo) FindByResetToken(token string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("reset_token = ?", token).First(&u).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *pgUserRepo) ClearResetToken(token string) error {
	// Idempotent: clearing an unknown token matches zero rows and is fine
	return r.db.Model(&model.User{}).Where("reset_token = ?", token).Updates(map[string]interface{}{
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
}

func (r *pgUserRepo) DeleteExpiredResetTokens(now time.Time) error {
	return r.db.Model(&model.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("user store: %w", err)
}
