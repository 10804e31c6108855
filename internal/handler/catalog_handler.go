package handler

import (
	"fmt"
	"net/http"

	"stylemart/internal/flash"
	"stylemart/internal/middleware"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// トップ・商品詳細・カテゴリ一覧
type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	cart    *usecase.CartUsecase
	flashes *flash.Store
	log     *zap.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, cart *usecase.CartUsecase, flashes *flash.Store, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cart: cart, flashes: flashes, log: log}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/product/:slug/", h.productDetail)
	e.POST("/product/:slug/", h.productAction)
	e.GET("/category/:slug/", h.categoryProducts)
}

func (h *CatalogHandler) home(c echo.Context) error {
	out, err := h.catalog.Home(c.Request().Context())
	if err != nil {
		h.log.Error("home failed", zap.Error(err))
		return htmlError(c, err)
	}

	return render(c, h.flashes, "home.html", echo.Map{
		"Categories": out.Categories,
		"Featured":   out.Featured,
		"Products":   out.Products,
	})
}

func (h *CatalogHandler) productDetail(c echo.Context) error {
	p, err := h.catalog.ProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return htmlError(c, err)
	}

	return render(c, h.flashes, "product_detail.html", echo.Map{
		"Product": p,
	})
}

// productAction は商品詳細のボタン（カート追加 or 今すぐ注文）。
// どちらもログイン必須。
func (h *CatalogHandler) productAction(c echo.Context) error {
	slug := c.Param("slug")

	p, err := h.catalog.ProductBySlug(c.Request().Context(), slug)
	if err != nil {
		return htmlError(c, err)
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.flashes.Add(c, flash.LevelInfo, "Please login to order.")
		return c.Redirect(http.StatusFound, "/login/")
	}

	name, err := h.cart.AddToCart(c.Request().Context(), userID, p.ID)
	if err != nil {
		h.log.Error("add to cart failed", zap.Error(err), zap.Int64("product_id", p.ID))
		return htmlError(c, err)
	}

	switch c.FormValue("action") {
	case "order_now":
		//カートに入れてそのままチェックアウトへ
		return c.Redirect(http.StatusFound, "/order/")
	default: // add_to_cart
		h.flashes.Add(c, flash.LevelSuccess, fmt.Sprintf("%s added to your cart.", name))
		return c.Redirect(http.StatusFound, "/product/"+slug+"/")
	}
}

func (h *CatalogHandler) categoryProducts(c echo.Context) error {
	out, err := h.catalog.CategoryProducts(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return htmlError(c, err)
	}

	return render(c, h.flashes, "category_products.html", echo.Map{
		"Category": out.Category,
		"Products": out.Products,
	})
}
