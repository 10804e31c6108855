package usecase_test

import (
	"context"
	"testing"
	"time"

	"stylemart/internal/domain/model"
	"stylemart/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test: 空カートでは注文を作らない
func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	tx, repos := newTxStub()
	profileRepo := new(ProfileRepoMock)
	uc := usecase.NewOrderUsecase(tx, profileRepo)

	profileRepo.On("FindByUserID", mock.Anything, int64(1)).Return(&model.Profile{UserID: 1, Phone: "090-0000-0000"}, nil)
	repos.cartLines.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartLine{}, nil)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{Address: "1-2-3 Shibuya"})
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)

	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.cartLines.AssertNotCalled(t, "DeleteAllByUserID", mock.Anything, mock.Anything)
}

// Test: 注文作成・明細スナップショット・カートクリアが揃って行われる
func TestOrderUsecase_PlaceOrder_SnapshotsAndClearsCart(t *testing.T) {
	tx, repos := newTxStub()
	profileRepo := new(ProfileRepoMock)
	uc := usecase.NewOrderUsecase(tx, profileRepo)

	profileRepo.On("FindByUserID", mock.Anything, int64(1)).Return(&model.Profile{UserID: 1, Phone: "090-0000-0000"}, nil)

	cartLines := []model.CartLine{
		{ID: 1, UserID: 1, ProductID: 10, Quantity: 2},
		{ID: 2, UserID: 1, ProductID: 11, Quantity: 1},
	}
	repos.cartLines.On("ListByUserID", mock.Anything, int64(1)).Return(cartLines, nil)

	repos.products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, Name: "Denim Jacket", Price: decimal.RequireFromString("20.00")}, nil)
	repos.products.On("FindByID", mock.Anything, int64(11)).
		Return(model.Product{ID: 11, Name: "Wool Scarf", Price: decimal.RequireFromString("9.50")}, nil)

	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 && o.Status == model.OrderStatusPlaced && o.Address == "1-2-3 Shibuya"
	})).Return(int64(100), nil)

	repos.orderLines.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(lines []model.OrderLine) bool {
		if len(lines) != 2 {
			return false
		}
		//商品名と単価は注文時点の値が入っていること
		return lines[0].ProductName == "Denim Jacket" &&
			lines[0].UnitPrice.Equal(decimal.RequireFromString("20.00")) &&
			lines[0].Quantity == 2
	})).Return(nil)

	repos.cartLines.On("DeleteAllByUserID", mock.Anything, int64(1)).Return(nil)

	orderID, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{Address: "1-2-3 Shibuya"})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), orderID)

	repos.orders.AssertExpectations(t)
	repos.orderLines.AssertExpectations(t)
	repos.cartLines.AssertExpectations(t)
}

// Test: 電話が空欄ならプロフィールの値で補う
func TestOrderUsecase_PlaceOrder_PhoneFallsBackToProfile(t *testing.T) {
	tx, repos := newTxStub()
	profileRepo := new(ProfileRepoMock)
	uc := usecase.NewOrderUsecase(tx, profileRepo)

	profileRepo.On("FindByUserID", mock.Anything, int64(1)).Return(&model.Profile{UserID: 1, Phone: "090-1111-2222"}, nil)

	repos.cartLines.On("ListByUserID", mock.Anything, int64(1)).
		Return([]model.CartLine{{ID: 1, UserID: 1, ProductID: 10, Quantity: 1}}, nil)
	repos.products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, Name: "Denim Jacket", Price: decimal.RequireFromString("20.00")}, nil)

	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Phone == "090-1111-2222"
	})).Return(int64(101), nil)
	repos.orderLines.On("CreateBulk", mock.Anything, int64(101), mock.Anything).Return(nil)
	repos.cartLines.On("DeleteAllByUserID", mock.Anything, int64(1)).Return(nil)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{Address: "1-2-3 Shibuya", Phone: ""})
	assert.NoError(t, err)

	repos.orders.AssertExpectations(t)
}

// Test: 他人の注文確認は404
func TestOrderUsecase_Confirmation_OtherUsersOrderIsNotFound(t *testing.T) {
	tx, repos := newTxStub()
	uc := usecase.NewOrderUsecase(tx, new(ProfileRepoMock))

	repos.orders.On("FindByID", mock.Anything, int64(100)).
		Return(model.Order{ID: 100, UserID: 2, Status: model.OrderStatusPlaced}, nil)

	_, err := uc.Confirmation(context.Background(), 1, 100)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)

	repos.orderLines.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

// Test: 合計はスナップショット単価から毎回計算される
func TestOrderUsecase_Confirmation_TotalDerivedFromSnapshots(t *testing.T) {
	tx, repos := newTxStub()
	uc := usecase.NewOrderUsecase(tx, new(ProfileRepoMock))

	repos.orders.On("FindByID", mock.Anything, int64(100)).
		Return(model.Order{ID: 100, UserID: 1, Status: model.OrderStatusPlaced, CreatedAt: time.Now()}, nil)

	lines := []model.OrderLine{
		{OrderID: 100, ProductID: 10, ProductName: "Denim Jacket", UnitPrice: decimal.RequireFromString("20.00"), Quantity: 2},
		{OrderID: 100, ProductID: 11, ProductName: "Wool Scarf", UnitPrice: decimal.RequireFromString("9.50"), Quantity: 1},
	}
	repos.orderLines.On("ListByOrderID", mock.Anything, int64(100)).Return(lines, nil)

	out, err := uc.Confirmation(context.Background(), 1, 100)
	assert.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("49.50")))
	assert.Len(t, out.Lines, 2)
}

// Test: 履歴は自分の注文だけを返す
func TestOrderUsecase_History(t *testing.T) {
	tx, repos := newTxStub()
	uc := usecase.NewOrderUsecase(tx, new(ProfileRepoMock))

	repos.orders.On("ListByUserID", mock.Anything, int64(1)).
		Return([]model.Order{
			{ID: 101, UserID: 1, Status: model.OrderStatusShipped},
			{ID: 100, UserID: 1, Status: model.OrderStatusPlaced},
		}, nil)
	repos.orderLines.On("ListByOrderID", mock.Anything, int64(101)).Return([]model.OrderLine{}, nil)
	repos.orderLines.On("ListByOrderID", mock.Anything, int64(100)).Return([]model.OrderLine{}, nil)

	out, err := uc.History(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, int64(101), out[0].ID)
}
