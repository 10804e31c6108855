package middleware

import (
	"net/http"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // int64
	CtxUserKey   = "user"    // *model.User
)

// SessionAuth はセッションcookieを検証するミドルウェア。
// 未ログインはflashを積んでログイン画面へリダイレクトする。
func SessionAuth(auth *usecase.AuthUsecase, flashes *flash.Store, surface model.SessionSurface, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if ck, err := c.Cookie(config.SessionCookieName); err == nil {
				token = ck.Value
			}

			user, err := auth.CurrentUser(c.Request().Context(), token, surface)
			if err != nil {
				flashes.Add(c, flash.LevelInfo, "Please login to continue.")
				return c.Redirect(http.StatusFound, loginPath)
			}

			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxUserKey, user)

			return next(c)
		}
	}
}

// LoadUser はログイン済みならユーザーをcontextに積む（未ログインでも通す）。
// 公開ページのナビ表示用。
func LoadUser(auth *usecase.AuthUsecase, surface model.SessionSurface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(config.SessionCookieName); err == nil {
				if user, err := auth.CurrentUser(c.Request().Context(), ck.Value, surface); err == nil {
					c.Set(CtxUserIDKey, user.ID)
					c.Set(CtxUserKey, user)
				}
			}
			return next(c)
		}
	}
}

// AdminOnly はADMINロール以外を弾く。SessionAuthの後ろで使う。
func AdminOnly(flashes *flash.Store, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(CtxUserKey).(*model.User)
			if !ok || user.Role != model.RoleAdmin {
				flashes.Add(c, flash.LevelError, "Admin account required.")
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}

// GetUserID はSessionAuthが積んだユーザーIDを取り出す。
func GetUserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	return id, ok
}

// GetUser はSessionAuthが積んだユーザーを取り出す。
func GetUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(CtxUserKey).(*model.User)
	return u, ok
}
