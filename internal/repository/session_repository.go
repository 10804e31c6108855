package repository

import (
	"context"
	"time"

	"stylemart/internal/domain/model"
)

// ログインセッションの保存・取得・破棄
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
	DeleteByID(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
