package middleware

import (
	"net/http"
	"strings"

	"stylemart/internal/config"

	"github.com/labstack/echo/v4"
)

// SessionCookieSplitter は管理画面と顧客画面のセッションcookieを分離する。
//
// 入側: /admin 配下のリクエストは admin_sessionid の値を sessionid の位置に
// 載せ替える（顧客のsessionidは捨てる）。認証処理は常にsessionidだけを読む。
// 出側: /admin 配下でsessionidをSet-Cookieするレスポンスは admin_sessionid に
// 改名して返す。
// どちらもパスで判定する（入側だけ無条件に書き換えない）。
func SessionCookieSplitter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if !strings.HasPrefix(req.URL.Path, config.AdminPathPrefix) {
				return next(c)
			}

			//入側の載せ替え
			cookies := req.Cookies()
			req.Header.Del("Cookie")
			for _, ck := range cookies {
				switch ck.Name {
				case config.SessionCookieName:
					//顧客側セッションは管理画面では使わない
				case config.AdminSessionCookieName:
					req.AddCookie(&http.Cookie{
						Name:  config.SessionCookieName,
						Value: ck.Value,
					})
				default:
					req.AddCookie(ck)
				}
			}

			//出側の改名（ヘッダ確定前に差し替える）
			c.Response().Before(func() {
				header := c.Response().Header()

				setCookies := append([]string(nil), header.Values("Set-Cookie")...)
				if len(setCookies) == 0 {
					return
				}

				header.Del("Set-Cookie")
				for _, sc := range setCookies {
					if strings.HasPrefix(sc, config.SessionCookieName+"=") {
						sc = config.AdminSessionCookieName + strings.TrimPrefix(sc, config.SessionCookieName)
					}
					header.Add("Set-Cookie", sc)
				}
			})

			return next(c)
		}
	}
}
