package handler

import (
	"net/http"

	"stylemart/internal/config"
	"stylemart/internal/flash"
	"stylemart/internal/middleware"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// render はflashとログインユーザーを足してテンプレートを描画する。
func render(c echo.Context, flashes *flash.Store, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}

	data["Messages"] = flashes.Pop(c)

	if _, ok := data["User"]; !ok {
		u, _ := middleware.GetUser(c)
		data["User"] = u
	}

	return c.Render(http.StatusOK, name, data)
}

// usecaseのHTTPErrorをHTMLのエラーレスポンスに変換する
func htmlError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return echo.NewHTTPError(he.Status, he.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// セッションcookieを発行する。/admin配下ではミドルウェアが改名する。
func setSessionCookie(c echo.Context, cfg config.Config, token string) {
	c.SetCookie(&http.Cookie{
		Name:     config.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, cfg config.Config) {
	c.SetCookie(&http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionToken(c echo.Context) string {
	if ck, err := c.Cookie(config.SessionCookieName); err == nil {
		return ck.Value
	}
	return ""
}
