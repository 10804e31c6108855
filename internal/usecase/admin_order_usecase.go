package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"
)

// 管理画面の注文操作
type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminOrdersOutput struct {
	Orders []OrderView
	Audit  []model.AuditLog
}

// List は全注文（新しい順）と直近の監査ログを返す。
func (u *AdminOrderUsecase) List(ctx context.Context) (AdminOrdersOutput, error) {
	var out AdminOrdersOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx, 100)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out.Orders = make([]OrderView, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Orders = append(out.Orders, toOrderView(o, lines))
		}

		logs, err := r.AuditLogs().ListRecent(ctx, 20)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.Audit = logs

		return nil
	})

	if err != nil {
		return AdminOrdersOutput{}, err
	}
	return out, nil
}

// UpdateStatus は注文ステータスを更新して監査ログを残す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, status string) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(status))
	switch newStatus {
	case model.OrderStatusPlaced, model.OrderStatusShipped, model.OrderStatusCanceled:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status == newStatus {
			//変更なしなら何もしない
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		before, _ := json.Marshal(map[string]string{"status": string(o.Status)})
		after, _ := json.Marshal(map[string]string{"status": string(newStatus)})

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			Before:       string(before),
			After:        string(after),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}
