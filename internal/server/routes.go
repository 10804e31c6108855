package server

import (
	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/handler"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"

	appmw "stylemart/internal/middleware"
)

// RegisterRoutes は全ルートを登録する。
// 顧客画面はstoreセッション、/admin配下はadminセッションで認証する。
func RegisterRoutes(
	e *echo.Echo,
	auth *usecase.AuthUsecase,
	flashes *flash.Store,
	authH *handler.AuthHandler,
	catalogH *handler.CatalogHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	adminH *handler.AdminHandler,
) {
	requireStoreAuth := appmw.SessionAuth(auth, flashes, model.SurfaceStore, "/login/")

	//公開ページもナビ表示のためにログイン状態は読む
	e.Use(appmw.LoadUser(auth, model.SurfaceStore))

	catalogH.RegisterRoutes(e)
	authH.RegisterRoutes(e, requireStoreAuth)
	cartH.RegisterRoutes(e, requireStoreAuth)
	orderH.RegisterRoutes(e, requireStoreAuth)

	admin := e.Group(config.AdminPathPrefix)
	adminH.RegisterRoutes(admin,
		appmw.SessionAuth(auth, flashes, model.SurfaceAdmin, "/admin/login/"),
		appmw.AdminOnly(flashes, "/admin/login/"),
	)
}
