package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/config"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/infra/repository"
	"github.com/thanFreecss/celebrity-salon/internal/middleware"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/validators"
)

var (
	errEmailTaken         = httperr.Conflict("email_already_registered", "An account with this email already exists.")
	errInvalidCredentials = httperr.UnauthorizedErr("invalid_credentials", "Email or password is incorrect.")
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" && !validators.IsMobileNumber(phone) {
		httperr.Respond(c, httperr.Validation("invalid_request", "Some fields are invalid.",
			map[string]string{"phone": "must be exactly 11 digits"}))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create account.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         models.RoleCustomer,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.Respond(c, errEmailTaken)
			return
		}
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}

	token, err := middleware.SignToken(h.config.JWTSecret, &user, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create session.")
		return
	}

	c.JSON(http.StatusCreated, authResponse{User: &user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Respond(c, errInvalidCredentials)
			return
		}
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Respond(c, errInvalidCredentials)
		return
	}

	token, err := middleware.SignToken(h.config.JWTSecret, &user, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create session.")
		return
	}

	c.JSON(http.StatusOK, authResponse{User: &user, Token: token})
}
