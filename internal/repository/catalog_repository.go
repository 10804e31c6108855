package repository

import (
	"context"

	"stylemart/internal/domain/model"
)

// カテゴリの取得だけを約束（アプリからは読み取り専用）
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
}

// 商品の取得だけを約束（アプリからは読み取り専用）
type ProductRepository interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
}
