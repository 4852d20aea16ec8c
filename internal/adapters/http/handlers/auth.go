package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/session"
)

// AuthHandler handles registration, login, and session endpoints.
type AuthHandler struct {
	service  *app.AuthService
	sessions *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
	}
}

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
// Login accepts a username or an email address.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the HTTP representation of a user account.
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func toUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          uint(u.ID),
		Username:    u.Username,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/v1/auth/login. On success a signed session
// cookie is set and the user is returned.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, token, h.sessions.TTLSeconds())

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/v1/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// setSessionCookie writes the session cookie. HttpOnly keeps it away
// from scripts; Secure follows config so local HTTP still works.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessions.CookieName(), token, maxAge, "/", "", h.sessions.Secure(), true)
}

// RegisterAuthRoutes registers auth routes on the given router group.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	rg.GET("/users/me", middleware.RequireUser(), h.Me)
}

// respondBindingError maps binding and validation failures to a 400 with
// field details when available.
func respondBindingError(c *gin.Context, err error) {
	if dto.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			dto.ValidationErrors(err),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"malformed request body",
	).WithTraceID(dto.GetTraceID(c)))
}
