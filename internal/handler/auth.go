package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/auth"
	"github.com/iliyamo/matchday-tickets/internal/config"
	"github.com/iliyamo/matchday-tickets/internal/kv"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
	"github.com/iliyamo/matchday-tickets/internal/session"
	"github.com/iliyamo/matchday-tickets/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  Users is the
// shared store; each request sees only its device's slice of it.
type AuthHandler struct {
	Cfg      config.Config
	Users    kv.Store
	Sessions *session.Registry
	Opts     []auth.Option
}

func NewAuthHandler(cfg config.Config, users kv.Store, sessions *session.Registry, opts ...auth.Option) *AuthHandler {
	opts = append([]auth.Option{auth.WithBcryptCost(cfg.BcryptCost)}, opts...)
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions, Opts: opts}
}

// DeviceKeyPrefix returns the store prefix holding the record of device.
func DeviceKeyPrefix(device string) string {
	return "device:" + device + ":"
}

func (h *AuthHandler) service(c echo.Context) *auth.Service {
	return auth.NewService(kv.WithPrefix(h.Users, DeviceKeyPrefix(middleware.DeviceID(c))), h.Opts...)
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User   model.User `json:"user"`
	Access tokenPart  `json:"access"`
}

// publicUser strips fields that never leave the server.
func publicUser(u *model.User) model.User {
	out := *u
	out.PasswordHash = ""
	return out
}

func authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrNotLoggedIn):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found on this device"})
	}
	log.Printf("auth: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user storage failed"})
}

// signIn opens the booking session of u and issues its access token.
func (h *AuthHandler) signIn(c echo.Context, status int, u *model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	h.Sessions.Open(u.ID)
	return c.JSON(status, authResp{
		User:   publicUser(u),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// replaced closes the booking session of prev when the device record
// now belongs to another user id.
func (h *AuthHandler) replaced(prev, u *model.User) {
	if prev != nil && prev.ID != u.ID {
		h.Sessions.Close(prev.ID)
	}
}

// Register stores a new user on the device and signs it in.  A user
// previously signed in on the device loses its booking session.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	svc := h.service(c)
	prev, _ := svc.Restore(ctx)
	u, err := svc.Register(ctx, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return authError(c, err)
	}
	h.replaced(prev, u)
	return h.signIn(c, http.StatusCreated, u)
}

// Login signs the device in.  Unknown emails get a mock profile; the
// email already on the device keeps its id and booking session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	svc := h.service(c)
	prev, _ := svc.Restore(ctx)
	u, err := svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return authError(c, err)
	}
	h.replaced(prev, u)
	return h.signIn(c, http.StatusOK, u)
}

// Logout forgets the device's user and drops the booking session with
// its history.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.service(c).Logout(ctx); err != nil {
		return authError(c, err)
	}
	h.Sessions.Close(middleware.UserID(c))
	return c.NoContent(http.StatusNoContent)
}

// current loads the device's user and checks it belongs to the token.
func (h *AuthHandler) current(ctx context.Context, c echo.Context) (*model.User, error) {
	u, err := h.service(c).Restore(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil || u.ID != middleware.UserID(c) {
		return nil, auth.ErrNotLoggedIn
	}
	return u, nil
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.current(ctx, c)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, publicUser(u))
}

// UpdateProfile applies a partial update of name, phone and avatar.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req auth.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.current(ctx, c); err != nil {
		return authError(c, err)
	}
	u, err := h.service(c).UpdateProfile(ctx, req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, publicUser(u))
}
