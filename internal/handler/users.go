package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/middleware"
	"github.com/iliyamo/household-market/internal/model"
	"github.com/iliyamo/household-market/internal/repository"
	"github.com/iliyamo/household-market/internal/service"
)

// UserStore is the persistence UserHandler needs.  *repository.UserRepo
// implements it.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u model.User, withPassword bool) error
	Delete(ctx context.Context, id uint64) error
}

// UserHandler serves registration, login/logout and user administration.
type UserHandler struct {
	Users  UserStore
	Tokens *service.TokenService
	Log    logrus.FieldLogger
}

func NewUserHandler(users UserStore, tokens *service.TokenService, log logrus.FieldLogger) *UserHandler {
	if users == nil || tokens == nil || log == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Tokens: tokens, Log: log}
}

const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgFillAllFields  = "Jaza kila sehemu tafadhali."
	msgBadEmail       = "Barua pepe sio sahihi."
	msgShortPassword  = "Password inahitaji angalau herufi 8."
	msgEmailTaken     = "Barua pepe hii inatumika tayari."
	msgLoginFields    = "Tafadhali jaza sehemu zote."
	msgUnknownEmail   = "Email uliyo sajilia haipo"
	msgBadCredentials = "Email au password sio sahihi"
	msgRegistered     = "Usajili umefanikiwa!"
	msgLoggedOut      = "Umetoka kwenye akaunti yako"
	msgInvalidRole    = "Role si sahihi"
)

// ----- DTOs -----

type userReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (r *userReq) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type safeUser struct {
	ID       uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    safeUser  `json:"user"`
}

// Register handles POST /api/users.  The role in the body is ignored: every
// self-registered account is a customer.
func (h *UserHandler) Register(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgInvalidBody)
	}
	req.normalize()
	if req.Username == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		return message(c, http.StatusBadRequest, msgFillAllFields)
	}
	if !emailPattern.MatchString(req.Email) {
		return message(c, http.StatusBadRequest, msgBadEmail)
	}
	if len(req.Password) < minPasswordLen {
		return message(c, http.StatusBadRequest, msgShortPassword)
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return dbFailure(c, h.Log, "users.email_exists", err)
	}
	if exists {
		return message(c, http.StatusBadRequest, msgEmailTaken)
	}

	hash, err := h.Tokens.HashPassword(req.Password)
	if err != nil {
		h.Log.WithError(err).Error("hash password failed")
		return message(c, http.StatusInternalServerError, msgServer)
	}
	id, err := h.Users.Create(ctx, model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if errors.Is(err, repository.ErrEmailExists) {
		return message(c, http.StatusBadRequest, msgEmailTaken)
	}
	if err != nil {
		return dbFailure(c, h.Log, "users.create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": msgRegistered})
}

// Login handles POST /api/users/login and returns a bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgInvalidBody)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return message(c, http.StatusBadRequest, msgLoginFields)
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusUnauthorized, msgUnknownEmail)
	}
	if err != nil {
		return dbFailure(c, h.Log, "users.get_by_email", err)
	}
	if !h.Tokens.VerifyPassword(u.PasswordHash, req.Password) {
		return message(c, http.StatusUnauthorized, msgBadCredentials)
	}

	at, err := h.Tokens.Issue(u)
	if err != nil {
		h.Log.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return message(c, http.StatusInternalServerError, msgServer)
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:   at.Token,
		Expires: at.Exp,
		User:    safeUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
	})
}

// Logout handles POST /api/users/logout.  The presented token is revoked
// until its own expiry.
func (h *UserHandler) Logout(c echo.Context) error {
	claims, raw, ok := middleware.ClaimsFrom(c)
	if !ok || raw == "" {
		return message(c, http.StatusBadRequest, "Hakuna token iliyotolewa")
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Tokens.Revoke(ctx, raw, claims); err != nil {
		h.Log.WithError(err).Error("revoke token failed")
		return message(c, http.StatusInternalServerError, msgServer)
	}
	return message(c, http.StatusOK, msgLoggedOut)
}

// Me handles GET /api/users/me and echoes the verified claims.
func (h *UserHandler) Me(c echo.Context) error {
	claims, _, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Token si sahii")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"valid":   true,
		"user_id": middleware.UserID(c),
		"role":    claims.Role,
		"email":   claims.Email,
		"expires": claims.ExpiresAt.Time,
	})
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return dbFailure(c, h.Log, "users.list", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidID)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return dbFailure(c, h.Log, "users.get", err)
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PUT /api/users/:id with a full user record.  A supplied
// password is re-hashed before the write; an omitted one keeps the stored
// hash.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidID)
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgInvalidBody)
	}
	req.normalize()
	if !model.ValidRole(req.Role) {
		return message(c, http.StatusBadRequest, msgInvalidRole)
	}

	u := model.User{ID: id, Username: req.Username, Role: req.Role, Email: req.Email, Phone: req.Phone}
	withPassword := req.Password != ""
	if withPassword {
		if len(req.Password) < minPasswordLen {
			return message(c, http.StatusBadRequest, msgShortPassword)
		}
		hash, err := h.Tokens.HashPassword(req.Password)
		if err != nil {
			h.Log.WithError(err).Error("hash password failed")
			return message(c, http.StatusInternalServerError, msgServer)
		}
		u.PasswordHash = hash
	}

	ctx, cancel := dbContext(c)
	defer cancel()
	err := h.Users.Update(ctx, u, withPassword)
	if errors.Is(err, repository.ErrEmailExists) {
		return message(c, http.StatusBadRequest, msgEmailTaken)
	}
	if err != nil {
		return dbFailure(c, h.Log, "users.update", err)
	}
	return message(c, http.StatusOK, "User updated successfully.")
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidID)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Users.Delete(ctx, id); err != nil {
		return dbFailure(c, h.Log, "users.delete", err)
	}
	return message(c, http.StatusOK, "User deleted successfully.")
}
