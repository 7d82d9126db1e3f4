package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/auth"
	"github.com/prudvireddyNS/mentor/pkg/metrics"
	"github.com/prudvireddyNS/mentor/pkg/throttle"
)

// PasswordLogin exchanges an email and password for a token.
type PasswordLogin interface {
	Login(ctx context.Context, email, password string) (auth.TokenResponse, error)
}

// FederatedLogin exchanges a third-party assertion for a token.
type FederatedLogin interface {
	Login(ctx context.Context, assertion string) (auth.TokenResponse, error)
}

type AuthHandler struct {
	passwords PasswordLogin
	federated FederatedLogin
	limiter   throttle.Limiter
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAuthHandler(passwords PasswordLogin, federated FederatedLogin, limiter throttle.Limiter, m *metrics.Metrics, logger *zap.Logger) *AuthHandler {
	if limiter == nil {
		limiter = throttle.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{passwords: passwords, federated: federated, limiter: limiter, metrics: m, logger: logger}
}

type tokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Token handles the OAuth2 password grant.
// @Summary Password login
// @Tags    auth
// @Accept  x-www-form-urlencoded
// @Produce json
// @Param   username formData string true "email"
// @Param   password formData string true "password"
// @Success 200 {object} auth.TokenResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()
	key := req.Username

	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.Warn("login throttle unavailable", zap.Error(err))
	}
	if !allowed {
		h.metrics.AuthAttempt(metrics.MethodPassword, metrics.OutcomeThrottled)
		return presenter.Error(c, http.StatusTooManyRequests, "Too many login attempts")
	}

	resp, err := h.passwords.Login(ctx, req.Username, req.Password)
	if err != nil {
		if auth.KindOf(err) == auth.KindInvalidCredentials {
			h.metrics.AuthAttempt(metrics.MethodPassword, metrics.OutcomeFailure)
			if ferr := h.limiter.Fail(ctx, key); ferr != nil {
				h.logger.Warn("record login failure", zap.Error(ferr))
			}
		} else {
			h.metrics.AuthAttempt(metrics.MethodPassword, metrics.OutcomeError)
		}
		return writeAuthError(c, err)
	}

	h.metrics.AuthAttempt(metrics.MethodPassword, metrics.OutcomeSuccess)
	if err := h.limiter.Reset(ctx, key); err != nil {
		h.logger.Warn("reset login failures", zap.Error(err))
	}
	return presenter.JSON(c, http.StatusOK, resp)
}

// GoogleLogin exchanges a Google ID token for an access token.
// @Summary Google login
// @Tags    auth
// @Produce json
// @Param   token query string true "Google ID token"
// @Success 200 {object} auth.TokenResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /google-login [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return presenter.Error(c, http.StatusUnprocessableEntity, "token is required")
	}

	resp, err := h.federated.Login(c.UserContext(), token)
	if err != nil {
		switch auth.KindOf(err) {
		case auth.KindConflict:
			h.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeConflict)
		case auth.KindInvalidAssertion:
			h.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeFailure)
			h.logger.Info("google login rejected", zap.Error(err))
		default:
			h.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeError)
		}
		return writeAuthError(c, err)
	}
	h.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeSuccess)
	return presenter.JSON(c, http.StatusOK, resp)
}
