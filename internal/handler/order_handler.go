package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stylemart/internal/flash"
	"stylemart/internal/middleware"
	"stylemart/internal/usecase"
	"stylemart/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// チェックアウト・注文確認・注文履歴
type OrderHandler struct {
	orders  *usecase.OrderUsecase
	cart    *usecase.CartUsecase
	auth    *usecase.AuthUsecase
	flashes *flash.Store
	log     *zap.Logger
}

func NewOrderHandler(
	orders *usecase.OrderUsecase,
	cart *usecase.CartUsecase,
	auth *usecase.AuthUsecase,
	flashes *flash.Store,
	log *zap.Logger,
) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart, auth: auth, flashes: flashes, log: log}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/order/", h.checkoutPage, requireAuth)
	e.POST("/order/", h.placeOrder, requireAuth)
	e.GET("/order/confirmation/:order_id/", h.confirmation, requireAuth)
	e.GET("/orders/", h.history, requireAuth)
}

// checkoutPage はカート内容と配送先フォームを出す。
// 氏名・電話はプロフィールで初期値を埋める。
func (h *OrderHandler) checkoutPage(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	cart, err := h.cart.ViewCart(c.Request().Context(), userID)
	if err != nil {
		h.log.Error("view cart failed", zap.Error(err))
		return htmlError(c, err)
	}

	if len(cart.Lines) == 0 {
		h.flashes.Add(c, flash.LevelInfo, "Your cart is empty.")
		return c.Redirect(http.StatusFound, "/")
	}

	fullName, phone := "", ""
	if p, err := h.auth.ProfileOf(c.Request().Context(), userID); err == nil && p != nil {
		fullName = p.FullName
		phone = p.Phone
	}

	return render(c, h.flashes, "place_order.html", echo.Map{
		"Cart":     cart,
		"FullName": fullName,
		"Phone":    phone,
		"Address":  "",
		"Errors":   map[string]string{},
	})
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	form := validator.CheckoutForm{
		FullName: c.FormValue("full_name"),
		Address:  c.FormValue("address"),
		Phone:    c.FormValue("phone"),
	}

	if fieldErrors := validator.ValidateCheckout(form); fieldErrors != nil {
		cart, err := h.cart.ViewCart(c.Request().Context(), userID)
		if err != nil {
			return htmlError(c, err)
		}
		return render(c, h.flashes, "place_order.html", echo.Map{
			"Cart":     cart,
			"FullName": form.FullName,
			"Phone":    form.Phone,
			"Address":  form.Address,
			"Errors":   fieldErrors,
		})
	}

	orderID, err := h.orders.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		FullName: form.FullName,
		Address:  form.Address,
		Phone:    form.Phone,
	})
	if errors.Is(err, usecase.ErrCartEmpty) {
		h.flashes.Add(c, flash.LevelInfo, "Your cart is empty.")
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		h.log.Error("place order failed", zap.Error(err))
		return htmlError(c, err)
	}

	h.flashes.Add(c, flash.LevelSuccess, "Order placed successfully.")
	return c.Redirect(http.StatusFound, fmt.Sprintf("/order/confirmation/%d/", orderID))
}

func (h *OrderHandler) confirmation(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	order, err := h.orders.Confirmation(c.Request().Context(), userID, orderID)
	if err != nil {
		return htmlError(c, err)
	}

	return render(c, h.flashes, "order_confirmation.html", echo.Map{
		"Order": order,
	})
}

func (h *OrderHandler) history(c echo.Context) error {
	userID, _ := middleware.GetUserID(c)

	orders, err := h.orders.History(c.Request().Context(), userID)
	if err != nil {
		h.log.Error("order history failed", zap.Error(err))
		return htmlError(c, err)
	}

	return render(c, h.flashes, "order_history.html", echo.Map{
		"Orders": orders,
	})
}
