package server

import (
	"net/http"

	"stylemart/internal/config"
	"stylemart/internal/view"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	appmw "stylemart/internal/middleware"
)

// New はミドルウェアとレンダラを組んだechoインスタンスを返す。
// ルート登録はRegisterRoutes側で行う。
func New(cfg config.Config, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	e.HTTPErrorHandler = htmlErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(appmw.RequestLogger(log))
	//顧客と管理者のセッションcookieを分離する（/admin配下のみ作用）
	e.Use(appmw.SessionCookieSplitter())

	return e, nil
}

// htmlErrorHandler はエラーをJSONではなくHTMLページで返す。
// 500系は内部メッセージを出さない。
func htmlErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong."

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				message = m
			}
		}
		if status == http.StatusNotFound && message == "Something went wrong." {
			message = "Page not found."
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.Int("status", status), zap.Error(err))
		}

		if renderErr := c.Render(status, "error.html", map[string]interface{}{
			"Status":  status,
			"Message": message,
		}); renderErr != nil {
			_ = c.String(status, message)
		}
	}
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
