package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "stylemart/internal/repository"

	"github.com/shopspring/decimal"
)

// カート操作の業務ロジック
type CartUsecase struct {
	cartLines repo.CartLineRepository
	products  repo.ProductRepository
}

func NewCartUsecase(cartLines repo.CartLineRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartLines: cartLines, products: products}
}

// カート画面の1行
type CartLineView struct {
	ID        int64
	ProductID int64
	Name      string
	Slug      string
	UnitPrice decimal.Decimal
	Quantity  int64
	LineTotal decimal.Decimal
}

type CartView struct {
	Lines []CartLineView
	Total decimal.Decimal
}

// /cart/update/ の入力
type UpdateCartLineInput struct {
	LineID   int64
	Action   string // "remove" | "set_quantity"
	Quantity int64
}

// AddToCart は商品をカートに入れる（既にあれば数量+1）。
// 戻り値はflash表示用の商品名。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, productID int64) (string, error) {
	if userID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return "", NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は+1）
	if err := u.cartLines.UpsertByUserAndProduct(ctx, userID, productID, 1); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p.Name, nil
}

// ViewCart はカートの明細と合計を返す。
// 行合計＝数量×現在の商品価格。
func (u *CartUsecase) ViewCart(ctx context.Context, userID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := u.cartLines.ListByUserID(ctx, userID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]CartLineView, 0, len(lines))
	total := decimal.Zero

	for _, l := range lines {
		lineTotal := l.Product.Price.Mul(decimal.NewFromInt(l.Quantity))

		views = append(views, CartLineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Slug:      l.Product.Slug,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
		})

		total = total.Add(lineTotal)
	}

	return CartView{Lines: views, Total: total}, nil
}

// UpdateLine は数量変更か削除を行う（所有チェック込み）。
// 戻り値はflash表示用メッセージ。
func (u *CartUsecase) UpdateLine(ctx context.Context, userID int64, in UpdateCartLineInput) (string, error) {
	if userID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.LineID <= 0 {
		return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}

	line, err := u.cartLines.FindByID(ctx, in.LineID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if line.UserID != userID {
		//他人のカート行は「存在しない扱い」
		return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
	}

	switch in.Action {
	case "remove":
		if err := u.cartLines.DeleteByID(ctx, in.LineID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
			}
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return "Item removed from cart.", nil

	case "set_quantity":
		//0以下は削除と同じ扱い
		if in.Quantity <= 0 {
			if err := u.cartLines.DeleteByID(ctx, in.LineID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
				}
				return "", NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return "Item removed from cart.", nil
		}

		if err := u.cartLines.UpdateQuantity(ctx, in.LineID, in.Quantity); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return "", NewHTTPError(http.StatusNotFound, "Cart item not found.")
			}
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return "Quantity updated.", nil

	default:
		return "", NewHTTPError(http.StatusBadRequest, "invalid action")
	}
}
