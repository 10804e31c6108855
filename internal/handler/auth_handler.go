package handler

import (
	"errors"
	"net/http"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/usecase"
	"stylemart/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 会員登録・ログイン・ログアウトのHTTP
type AuthHandler struct {
	auth    *usecase.AuthUsecase
	flashes *flash.Store
	cfg     config.Config
	log     *zap.Logger
}

// DI
func NewAuthHandler(auth *usecase.AuthUsecase, flashes *flash.Store, cfg config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, flashes: flashes, cfg: cfg, log: log}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/signup/", h.signupPage)
	e.POST("/signup/", h.signup)
	e.GET("/login/", h.loginPage)
	e.POST("/login/", h.login)
	e.POST("/logout/", h.logout, requireAuth)
}

func (h *AuthHandler) signupPage(c echo.Context) error {
	return render(c, h.flashes, "signup.html", echo.Map{
		"Form":   validator.SignupForm{},
		"Errors": map[string]string{},
	})
}

func (h *AuthHandler) signup(c echo.Context) error {
	form := validator.SignupForm{
		FullName:  c.FormValue("full_name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		Password1: c.FormValue("password1"),
		Password2: c.FormValue("password2"),
	}

	fieldErrors := validator.ValidateSignup(form)
	if fieldErrors != nil {
		h.flashes.Add(c, flash.LevelError, "Please fix the errors below.")
		return render(c, h.flashes, "signup.html", echo.Map{
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	user, err := h.auth.Register(c.Request().Context(), usecase.RegisterInput{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password1,
	})
	if errors.Is(err, usecase.ErrEmailTaken) {
		h.flashes.Add(c, flash.LevelError, "Please fix the errors below.")
		return render(c, h.flashes, "signup.html", echo.Map{
			"Form":   form,
			"Errors": map[string]string{"Email": "An account with this email already exists"},
		})
	}
	if err != nil {
		h.log.Error("signup failed", zap.Error(err))
		return htmlError(c, err)
	}

	//登録後はそのままログイン状態にする
	token, err := h.auth.StartSession(c.Request().Context(), user.ID, model.SurfaceStore)
	if err != nil {
		h.log.Error("start session failed", zap.Error(err))
		return htmlError(c, err)
	}
	setSessionCookie(c, h.cfg, token)

	h.flashes.Add(c, flash.LevelSuccess, "Account created and logged in.")
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginPage(c echo.Context) error {
	return render(c, h.flashes, "login.html", echo.Map{
		"Action": "/login/",
		"Form":   validator.LoginForm{},
		"Errors": map[string]string{},
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	form := validator.LoginForm{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	fieldErrors := validator.ValidateLogin(form)
	if fieldErrors != nil {
		return render(c, h.flashes, "login.html", echo.Map{
			"Action": "/login/",
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	user, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		//emailの存在は漏らさない
		h.flashes.Add(c, flash.LevelError, "Invalid credentials.")
		return render(c, h.flashes, "login.html", echo.Map{
			"Action": "/login/",
			"Form":   validator.LoginForm{Email: form.Email},
			"Errors": map[string]string{},
		})
	}
	if err != nil {
		h.log.Error("login failed", zap.Error(err))
		return htmlError(c, err)
	}

	token, err := h.auth.StartSession(c.Request().Context(), user.ID, model.SurfaceStore)
	if err != nil {
		h.log.Error("start session failed", zap.Error(err))
		return htmlError(c, err)
	}
	setSessionCookie(c, h.cfg, token)

	h.flashes.Add(c, flash.LevelSuccess, "Logged in successfully.")
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), sessionToken(c)); err != nil {
		h.log.Error("logout failed", zap.Error(err))
	}
	clearSessionCookie(c, h.cfg)

	h.flashes.Add(c, flash.LevelSuccess, "You have logged out.")
	return c.Redirect(http.StatusFound, "/")
}
