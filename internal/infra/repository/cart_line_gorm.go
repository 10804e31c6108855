package repository

import (
	"context"
	"errors"
	"time"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) *CartLineGormRepository {
	return &CartLineGormRepository{db: db}
}

// カート明細を一覧取得（Product込み）
func (r *CartLineGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 同一商品は数量加算
func (r *CartLineGormRepository) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {

	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line model.CartLine

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&line).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			newQty := line.Quantity + addQty

			res := tx.Model(&model.CartLine{}).
				Where("id = ?", line.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newLine := model.CartLine{
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newLine).Error; err != nil {
			return err
		}

		return nil
	})
}

// 明細の数量を更新
func (r *CartLineGormRepository) UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ?", cartLineID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartLineGormRepository) DeleteByID(ctx context.Context, cartLineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartLine{}, cartLineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーの明細を全削除（チェックアウト後のクリア）
func (r *CartLineGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}

// 明細を取得
func (r *CartLineGormRepository) FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error) {
	var line model.CartLine

	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", cartLineID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}
