package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicflow/auth-service/internal/api/metrics"
	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/core/ports"
)

// AuthHandler exposes the auth service. Every response body is the service
// result envelope and the HTTP status is its status code.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.Result[domain.TokenPair]
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  domain.Result[domain.TokenPair]
// @Failure      500   {object}  domain.Result[domain.TokenPair]
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	countTokens(res, "app")
	return render(c, "login", res)
}

// LoginWeb authenticates a manager for the web console.
//
// @Summary      Manager login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.Result[domain.TokenPair]
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  domain.Result[domain.TokenPair]
// @Failure      500   {object}  domain.Result[domain.TokenPair]
// @Router       /auth/login-web [post]
func (h *AuthHandler) LoginWeb(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.authService.LoginWeb(c.Request().Context(), req.Email, req.Password)
	countTokens(res, "web")
	return render(c, "login_web", res)
}

// Register creates a new client account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  domain.Result[domain.User]
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  domain.Result[domain.User]
// @Failure      500   {object}  domain.Result[domain.User]
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.authService.Register(c.Request().Context(), domain.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	return render(c, "register", res)
}

// EmailExists reports whether an account already uses the given email.
//
// @Summary      Check email availability
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Email address"
// @Success      200    {object}  domain.Result[domain.EmailExists]
// @Failure      422    {object}  errorResponse
// @Failure      500    {object}  domain.Result[domain.EmailExists]
// @Router       /auth/email-exists [get]
func (h *AuthHandler) EmailExists(c echo.Context) error {
	var req emailExistsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.authService.CheckEmailExists(c.Request().Context(), req.Email)
	return render(c, "check_email", res)
}

// RefreshToken issues a standalone refresh token for the authenticated caller.
// The body userId must be the caller's own id.
//
// @Summary      Issue a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      refreshTokenRequest  true  "Subject user id"
// @Success      200   {object}  domain.Result[domain.RefreshToken]
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  domain.Result[domain.RefreshToken]
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req refreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.UserID != callerID {
		return echo.NewHTTPError(http.StatusForbidden, "refresh tokens can only be issued for the caller")
	}

	res := h.authService.GenerateRefreshToken(c.Request().Context(), req.UserID)
	if res.OK() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", "app").Inc()
	}
	return render(c, "refresh_token", res)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func render[T any](c echo.Context, operation string, res domain.Result[T]) error {
	metrics.OperationsTotal.WithLabelValues(operation, string(res.Status), strconv.Itoa(res.StatusCode)).Inc()
	return c.JSON(res.StatusCode, res)
}

func countTokens(res domain.Result[domain.TokenPair], channel string) {
	if !res.OK() {
		return
	}
	metrics.TokensIssuedTotal.WithLabelValues("access", channel).Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh", channel).Inc()
}
