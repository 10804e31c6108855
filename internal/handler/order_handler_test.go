package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/handler"
	appmw "stylemart/internal/middleware"
	repo "stylemart/internal/repository"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// =====================
// Stubs（空カートのユーザーを再現する固定実装）
// =====================

type emptyCartLinesStub struct{}

func (s *emptyCartLinesStub) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return []model.CartLine{}, nil
}
func (s *emptyCartLinesStub) UpsertByUserAndProduct(ctx context.Context, userID, productID, addQty int64) error {
	return nil
}
func (s *emptyCartLinesStub) UpdateQuantity(ctx context.Context, cartLineID, qty int64) error {
	return nil
}
func (s *emptyCartLinesStub) DeleteByID(ctx context.Context, cartLineID int64) error    { return nil }
func (s *emptyCartLinesStub) DeleteAllByUserID(ctx context.Context, userID int64) error { return nil }
func (s *emptyCartLinesStub) FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error) {
	return model.CartLine{}, repo.ErrNotFound
}

type productsStub struct{}

func (s *productsStub) ListAll(ctx context.Context) ([]model.Product, error) { return nil, nil }
func (s *productsStub) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return nil, nil
}
func (s *productsStub) FindByID(ctx context.Context, id int64) (model.Product, error) {
	return model.Product{}, repo.ErrNotFound
}
func (s *productsStub) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	return model.Product{}, repo.ErrNotFound
}

type ordersStub struct{}

func (s *ordersStub) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	return model.Order{}, repo.ErrNotFound
}
func (s *ordersStub) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	return nil, nil
}
func (s *ordersStub) Create(ctx context.Context, order model.Order) (int64, error) { return 0, nil }
func (s *ordersStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return nil
}
func (s *ordersStub) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	return nil, nil
}

type orderLinesStub struct{}

func (s *orderLinesStub) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	return nil
}
func (s *orderLinesStub) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	return nil, nil
}

type auditLogsStub struct{}

func (s *auditLogsStub) Create(ctx context.Context, log model.AuditLog) error { return nil }
func (s *auditLogsStub) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	return nil, nil
}

type txReposStub struct{}

func (s *txReposStub) Orders() repo.OrderRepository         { return &ordersStub{} }
func (s *txReposStub) OrderLines() repo.OrderLineRepository { return &orderLinesStub{} }
func (s *txReposStub) CartLines() repo.CartLineRepository   { return &emptyCartLinesStub{} }
func (s *txReposStub) Products() repo.ProductRepository     { return &productsStub{} }
func (s *txReposStub) AuditLogs() repo.AuditLogRepository   { return &auditLogsStub{} }

type txStub struct{}

func (t *txStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&txReposStub{})
}

type profilesStub struct{}

func (s *profilesStub) Create(ctx context.Context, profile *model.Profile) error { return nil }
func (s *profilesStub) FindByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	return nil, repo.ErrNotFound
}

type usersStub struct{}

func (s *usersStub) Create(ctx context.Context, user *model.User) error { return nil }
func (s *usersStub) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return nil, repo.ErrNotFound
}
func (s *usersStub) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repo.ErrNotFound
}

type sessionsStub struct{}

func (s *sessionsStub) Create(ctx context.Context, session *model.Session) error { return nil }
func (s *sessionsStub) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	return nil, repo.ErrNotFound
}
func (s *sessionsStub) DeleteByID(ctx context.Context, sessionID string) error { return nil }
func (s *sessionsStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newOrderHandlerEcho() (*echo.Echo, *flash.Store) {
	cfg := config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour}
	flashes := flash.NewStore(cfg.SessionSecret, false)

	cartUC := usecase.NewCartUsecase(&emptyCartLinesStub{}, &productsStub{})
	orderUC := usecase.NewOrderUsecase(&txStub{}, &profilesStub{})
	authUC := usecase.NewAuthUsecase(cfg, &usersStub{}, &profilesStub{}, &sessionsStub{})

	h := handler.NewOrderHandler(orderUC, cartUC, authUC, flashes, zap.NewNop())

	e := echo.New()

	//認証ミドルウェアの代わりにユーザーを直接積む
	fakeAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appmw.CtxUserIDKey, int64(1))
			c.Set(appmw.CtxUserKey, &model.User{ID: 1, Email: "taro@example.com"})
			return next(c)
		}
	}
	h.RegisterRoutes(e, fakeAuth)

	return e, flashes
}

func popFlashes(e *echo.Echo, flashes *flash.Store, rec *httptest.ResponseRecorder) []flash.Message {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return flashes.Pop(c)
}

// Test: 空カートでのチェックアウト画面はinfoのflash付きでトップへ戻す
func TestOrderHandler_CheckoutPage_EmptyCartRedirectsWithInfo(t *testing.T) {
	e, flashes := newOrderHandlerEcho()

	req := httptest.NewRequest(http.MethodGet, "/order/", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	msgs := popFlashes(e, flashes, rec)
	assert.Len(t, msgs, 1)
	assert.Equal(t, flash.LevelInfo, msgs[0].Level)
	assert.Equal(t, "Your cart is empty.", msgs[0].Text)
}

// Test: 空カートでの注文確定も同じ扱い
func TestOrderHandler_PlaceOrder_EmptyCartRedirectsWithInfo(t *testing.T) {
	e, flashes := newOrderHandlerEcho()

	req := httptest.NewRequest(http.MethodPost, "/order/", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	msgs := popFlashes(e, flashes, rec)
	assert.Len(t, msgs, 1)
	assert.Equal(t, flash.LevelInfo, msgs[0].Level)
}
