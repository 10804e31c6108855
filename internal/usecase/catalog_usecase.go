package usecase

import (
	"context"
	"errors"
	"net/http"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"
)

// カタログ閲覧（アプリからは読み取り専用）
type CatalogUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

func NewCatalogUsecase(categories repo.CategoryRepository, products repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, products: products}
}

type HomeOutput struct {
	Categories []model.Category
	Featured   []model.Product
	Products   []model.Product
}

// Home はトップページ用のデータをまとめて返す。
func (u *CatalogUsecase) Home(ctx context.Context) (HomeOutput, error) {
	categories, err := u.categories.ListAll(ctx)
	if err != nil {
		return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.ListAll(ctx)
	if err != nil {
		return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//先頭4件をおすすめ枠に使う
	featured := products
	if len(featured) > 4 {
		featured = featured[:4]
	}

	return HomeOutput{
		Categories: categories,
		Featured:   featured,
		Products:   products,
	}, nil
}

func (u *CatalogUsecase) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	p, err := u.products.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CategoryProductsOutput struct {
	Category model.Category
	Products []model.Product
}

func (u *CatalogUsecase) CategoryProducts(ctx context.Context, slug string) (CategoryProductsOutput, error) {
	c, err := u.categories.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return CategoryProductsOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CategoryProductsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.ListByCategoryID(ctx, c.ID)
	if err != nil {
		return CategoryProductsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CategoryProductsOutput{Category: c, Products: products}, nil
}
