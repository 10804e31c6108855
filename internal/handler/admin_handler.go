package handler

import (
	"errors"
	"net/http"
	"strconv"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/middleware"
	"stylemart/internal/usecase"
	"stylemart/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 管理画面（/admin配下）。セッションcookieは顧客側と分離されている。
type AdminHandler struct {
	auth        *usecase.AuthUsecase
	adminOrders *usecase.AdminOrderUsecase
	flashes     *flash.Store
	cfg         config.Config
	log         *zap.Logger
}

func NewAdminHandler(
	auth *usecase.AuthUsecase,
	adminOrders *usecase.AdminOrderUsecase,
	flashes *flash.Store,
	cfg config.Config,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{auth: auth, adminOrders: adminOrders, flashes: flashes, cfg: cfg, log: log}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group, requireAdmin ...echo.MiddlewareFunc) {
	g.GET("/login/", h.loginPage)
	g.POST("/login/", h.login)
	g.POST("/logout/", h.logout, requireAdmin...)
	g.GET("/orders/", h.orders, requireAdmin...)
	g.POST("/orders/:order_id/status", h.updateStatus, requireAdmin...)
}

func (h *AdminHandler) loginPage(c echo.Context) error {
	return render(c, h.flashes, "admin_login.html", echo.Map{
		"Form":   validator.LoginForm{},
		"Errors": map[string]string{},
	})
}

// login は管理者としてのログイン。ADMINロール以外は認証失敗と同じ扱い。
func (h *AdminHandler) login(c echo.Context) error {
	form := validator.LoginForm{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	fieldErrors := validator.ValidateLogin(form)
	if fieldErrors != nil {
		return render(c, h.flashes, "admin_login.html", echo.Map{
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	user, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err == nil && user.Role != model.RoleAdmin {
		//一般ユーザーに管理画面の入口を教えない
		err = usecase.ErrInvalidCredentials
	}
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		h.flashes.Add(c, flash.LevelError, "Invalid credentials.")
		return render(c, h.flashes, "admin_login.html", echo.Map{
			"Form":   validator.LoginForm{Email: form.Email},
			"Errors": map[string]string{},
		})
	}
	if err != nil {
		h.log.Error("admin login failed", zap.Error(err))
		return htmlError(c, err)
	}

	token, err := h.auth.StartSession(c.Request().Context(), user.ID, model.SurfaceAdmin)
	if err != nil {
		h.log.Error("start session failed", zap.Error(err))
		return htmlError(c, err)
	}
	//handler内ではsessionid名で発行し、/admin配下のミドルウェアが改名する
	setSessionCookie(c, h.cfg, token)

	h.flashes.Add(c, flash.LevelSuccess, "Logged in successfully.")
	return c.Redirect(http.StatusFound, "/admin/orders/")
}

func (h *AdminHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), sessionToken(c)); err != nil {
		h.log.Error("admin logout failed", zap.Error(err))
	}
	clearSessionCookie(c, h.cfg)

	h.flashes.Add(c, flash.LevelSuccess, "You have logged out.")
	return c.Redirect(http.StatusFound, "/admin/login/")
}

func (h *AdminHandler) orders(c echo.Context) error {
	out, err := h.adminOrders.List(c.Request().Context())
	if err != nil {
		h.log.Error("admin orders failed", zap.Error(err))
		return htmlError(c, err)
	}

	return render(c, h.flashes, "admin_orders.html", echo.Map{
		"Orders": out.Orders,
		"Audit":  out.Audit,
	})
}

func (h *AdminHandler) updateStatus(c echo.Context) error {
	actorID, _ := middleware.GetUserID(c)

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	status := c.FormValue("status")

	err = h.adminOrders.UpdateStatus(c.Request().Context(), actorID, orderID, status)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
			h.flashes.Add(c, flash.LevelError, he.Message)
			return c.Redirect(http.StatusFound, "/admin/orders/")
		}
		h.log.Error("update order status failed", zap.Error(err), zap.Int64("order_id", orderID))
		return htmlError(c, err)
	}

	h.flashes.Add(c, flash.LevelSuccess, "Order status updated.")
	return c.Redirect(http.StatusFound, "/admin/orders/")
}
