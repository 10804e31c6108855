package repository

import (
	"context"

	"stylemart/internal/domain/model"
)

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log model.AuditLog) error
	//新しい順に取得
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}
