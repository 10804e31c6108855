package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"

	"github.com/shopspring/decimal"
)

// カートが空のままチェックアウトした
var ErrCartEmpty = errors.New("cart empty")

type OrderUsecase struct {
	tx       repo.TransactionManager
	profiles repo.ProfileRepository
}

func NewOrderUsecase(tx repo.TransactionManager, profiles repo.ProfileRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, profiles: profiles}
}

// チェックアウトフォームの入力。
// 空欄はProfileの値で補う。
type PlaceOrderInput struct {
	FullName string
	Address  string
	Phone    string
}

type OrderLineView struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
	LineTotal   decimal.Decimal
}

type OrderView struct {
	ID        int64
	Status    string
	Phone     string
	Address   string
	CreatedAt time.Time
	Lines     []OrderLineView
	//合計は保存せず明細から計算する
	Total decimal.Decimal
}

// PlaceOrder はチェックアウト本体。
// 注文作成・明細作成・カートクリアを1トランザクションで行う。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	address := strings.TrimSpace(in.Address)
	phone := strings.TrimSpace(in.Phone)

	//電話が空欄ならプロフィールで補う（注文には電話と住所を持つ）
	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if profile != nil && phone == "" {
		phone = profile.Phone
	}

	var orderID int64

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.CartLines().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		now := time.Now()

		//商品名と単価は注文時点の値をスナップショット
		orderLines := make([]model.OrderLine, 0, len(lines))
		for _, l := range lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderLines = append(orderLines, model.OrderLine{
				ProductID:   l.ProductID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    l.Quantity,
				CreatedAt:   now,
			})
		}

		id, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Phone:     phone,
			Address:   address,
			Status:    model.OrderStatusPlaced,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderLines().CreateBulk(ctx, id, orderLines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをクリア（同一トランザクション内）
		if err := r.CartLines().DeleteAllByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID = id
		return nil
	})

	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// Confirmation は注文確認ページ用。他人の注文は404扱い。
func (u *OrderUsecase) Confirmation(ctx context.Context, userID int64, orderID int64) (OrderView, error) {
	if userID <= 0 {
		return OrderView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderView{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	var out OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderView(o, lines)
		return nil
	})

	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

// History は自分の注文を新しい順で返す。
func (u *OrderUsecase) History(ctx context.Context, userID int64) ([]OrderView, error) {
	if userID <= 0 {
		return []OrderView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderView, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderView(o, lines))
		}
		return nil
	})

	if err != nil {
		return []OrderView{}, err
	}
	return outs, nil
}

// 合計は明細のスナップショット単価から毎回計算する
func toOrderView(o model.Order, lines []model.OrderLine) OrderView {
	views := make([]OrderLineView, 0, len(lines))
	total := decimal.Zero

	for _, l := range lines {
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))

		views = append(views, OrderLineView{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   lineTotal,
		})

		total = total.Add(lineTotal)
	}

	return OrderView{
		ID:        o.ID,
		Status:    string(o.Status),
		Phone:     o.Phone,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		Lines:     views,
		Total:     total,
	}
}
