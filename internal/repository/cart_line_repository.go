package repository

import (
	"context"

	"stylemart/internal/domain/model"
)

type CartLineRepository interface {
	// Productを含めて一覧取得
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	// 同一商品はプラス
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error
	DeleteByID(ctx context.Context, cartLineID int64) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
	FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error)
}
