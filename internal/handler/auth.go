package handler

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/middleware"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/service"
)

// Authenticator is the auth flow as the HTTP layer sees it.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, rawRefresh string) (*service.TokenPair, error)
	Logout(ctx context.Context, rawRefresh string)
	ChangePassword(ctx context.Context, userID uint64, current, next string) error
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"max=100"`
}

// loginReq binds from a form post or a JSON body.
type loginReq struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Auth.Register(ctx, service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}
	return created(c, fmt.Sprintf("User account created for %s.", u.Username), u.Public())
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	pair, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return ok(c, "Authentication successful.", pair)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	pair, err := h.Auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return err
	}
	return ok(c, "Access token refreshed.", pair)
}

// Logout always succeeds once the body parses.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	h.Auth.Logout(ctx, req.RefreshToken)
	return ok(c, "Signed out and refresh token revoked.", nil)
}

// Me requires JWTAuth.
func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return service.ErrUnauthenticated
	}
	return ok(c, "Authenticated user profile retrieved.", u.Public())
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return service.ErrUnauthenticated
	}
	var req changePasswordReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Auth.ChangePassword(ctx, u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return ok(c, "Password updated.", nil)
}
