package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"stylemart/internal/flash"
	"stylemart/internal/middleware"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// カート閲覧・追加・数量変更
type CartHandler struct {
	cart    *usecase.CartUsecase
	flashes *flash.Store
	log     *zap.Logger
}

func NewCartHandler(cart *usecase.CartUsecase, flashes *flash.Store, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, flashes: flashes, log: log}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/cart/add/:product_id/", h.add, requireAuth)
	e.GET("/cart/", h.view, requireAuth)
	e.POST("/cart/update/", h.update, requireAuth)
}

func (h *CartHandler) add(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	name, err := h.cart.AddToCart(c.Request().Context(), userID, productID)
	if err != nil {
		h.log.Error("add to cart failed", zap.Error(err), zap.Int64("product_id", productID))
		return htmlError(c, err)
	}

	h.flashes.Add(c, flash.LevelSuccess, fmt.Sprintf("%s added to your cart.", name))
	return c.Redirect(http.StatusFound, refererOrHome(c))
}

func (h *CartHandler) view(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	cart, err := h.cart.ViewCart(c.Request().Context(), userID)
	if err != nil {
		h.log.Error("view cart failed", zap.Error(err))
		return htmlError(c, err)
	}

	return render(c, h.flashes, "cart.html", echo.Map{
		"Cart": cart,
	})
}

// update は数量変更と削除をまとめて受ける。結果に関わらずカートに戻す。
func (h *CartHandler) update(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	lineID, err := strconv.ParseInt(c.FormValue("item_id"), 10, 64)
	if err != nil {
		h.flashes.Add(c, flash.LevelError, "Cart item not found.")
		return c.Redirect(http.StatusFound, "/cart/")
	}

	quantity, _ := strconv.ParseInt(c.FormValue("quantity"), 10, 64)

	msg, err := h.cart.UpdateLine(c.Request().Context(), userID, usecase.UpdateCartLineInput{
		LineID:   lineID,
		Action:   c.FormValue("action"),
		Quantity: quantity,
	})
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
			h.flashes.Add(c, flash.LevelError, he.Message)
			return c.Redirect(http.StatusFound, "/cart/")
		}
		h.log.Error("update cart failed", zap.Error(err), zap.Int64("item_id", lineID))
		return htmlError(c, err)
	}

	h.flashes.Add(c, flash.LevelSuccess, msg)
	return c.Redirect(http.StatusFound, "/cart/")
}

// 外部サイトのRefererには飛ばさない
func refererOrHome(c echo.Context) string {
	ref := c.Request().Referer()
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return ref
	}
	if u, err := c.Request().URL.Parse(ref); err == nil && u.Host == c.Request().Host && strings.HasPrefix(u.Path, "/") {
		return u.Path
	}
	return "/"
}
