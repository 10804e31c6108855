package repository

import (
	"context"
	"errors"
	"time"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"

	"gorm.io/gorm"
)

type SessionGormRepository struct {
	db *gorm.DB
}

// DI
func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *SessionGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	var s model.Session

	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) DeleteByID(ctx context.Context, sessionID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", sessionID).
		Delete(&model.Session{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 期限切れセッションの掃除
func (r *SessionGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Session{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
