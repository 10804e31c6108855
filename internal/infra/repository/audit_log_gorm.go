package repository

import (
	"context"

	"stylemart/internal/domain/model"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog

	q := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&logs).Error; err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}
