package repository

import (
	"context"

	"stylemart/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//管理者用の注文一覧（新しい順）
	ListAll(ctx context.Context, limit int) ([]model.Order, error)
}

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
}
