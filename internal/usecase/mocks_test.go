package usecase_test

import (
	"context"
	"time"

	"stylemart/internal/domain/model"
	repo "stylemart/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepoMock) FindByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	args := m.Called(ctx, tokenHash)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *SessionRepoMock) DeleteByID(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *SessionRepoMock) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type CartLineRepoMock struct{ mock.Mock }

func (m *CartLineRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartLineRepoMock) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, userID, productID, addQty)
	return args.Error(0)
}

func (m *CartLineRepoMock) UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error {
	args := m.Called(ctx, cartLineID, qty)
	return args.Error(0)
}

func (m *CartLineRepoMock) DeleteByID(ctx context.Context, cartLineID int64) error {
	args := m.Called(ctx, cartLineID)
	return args.Error(0)
}

func (m *CartLineRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *CartLineRepoMock) FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error) {
	args := m.Called(ctx, cartLineID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

type OrderLineRepoMock struct{ mock.Mock }

func (m *OrderLineRepoMock) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *OrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	ls, _ := args.Get(0).([]model.OrderLine)
	return ls, args.Error(1)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	args := m.Called(ctx, limit)
	ls, _ := args.Get(0).([]model.AuditLog)
	return ls, args.Error(1)
}

// =====================
// Tx（fnをそのまま実行するだけの偽トランザクション）
// =====================

type txReposStub struct {
	orders     *OrderRepoMock
	orderLines *OrderLineRepoMock
	cartLines  *CartLineRepoMock
	products   *ProductRepoMock
	auditLogs  *AuditLogRepoMock
}

func (s *txReposStub) Orders() repo.OrderRepository         { return s.orders }
func (s *txReposStub) OrderLines() repo.OrderLineRepository { return s.orderLines }
func (s *txReposStub) CartLines() repo.CartLineRepository   { return s.cartLines }
func (s *txReposStub) Products() repo.ProductRepository     { return s.products }
func (s *txReposStub) AuditLogs() repo.AuditLogRepository   { return s.auditLogs }

type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

func newTxStub() (*txManagerStub, *txReposStub) {
	repos := &txReposStub{
		orders:     new(OrderRepoMock),
		orderLines: new(OrderLineRepoMock),
		cartLines:  new(CartLineRepoMock),
		products:   new(ProductRepoMock),
		auditLogs:  new(AuditLogRepoMock),
	}
	return &txManagerStub{repos: repos}, repos
}
