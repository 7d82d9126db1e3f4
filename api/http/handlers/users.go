package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/auth"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
)

// Accounts registers and loads users.
type Accounts interface {
	Register(ctx context.Context, in auth.RegisterInput) (auth.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (auth.User, error)
}

type UserHandler struct {
	accounts Accounts
}

func NewUserHandler(accounts Accounts) *UserHandler { return &UserHandler{accounts: accounts} }

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// Create registers a password account.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "registration payload"
// @Success 200 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /users/ [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role := auth.Role(req.Role)
	if role == "" {
		role = auth.RoleStudent
	}
	u, err := h.accounts.Register(c.UserContext(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		// registration conflicts are a client error, not a race
		if auth.KindOf(err) == auth.KindConflict {
			return presenter.Error(c, http.StatusBadRequest, auth.DetailOf(err))
		}
		return writeAuthError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, ok := jwt.CurrentUserID(c)
	if !ok {
		return presenter.Unauthorized(c, auth.ErrUnauthorized.Detail)
	}
	u, err := h.accounts.GetUser(c.UserContext(), id)
	if errors.Is(err, auth.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}
