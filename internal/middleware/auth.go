package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/thanFreecss/celebrity-salon/internal/config"
	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
)

const tokenTTL = 24 * time.Hour

var (
	errMissingHeader = httperr.UnauthorizedErr("missing_authorization_header", "Authentication required.")
	errBadHeader     = httperr.UnauthorizedErr("invalid_authorization_header", "Authorization header must be a Bearer token.")
	errBadToken      = httperr.UnauthorizedErr("invalid_token", "Session expired or invalid, please log in again.")
	errNotAdmin      = httperr.Forbidden("admin_only", "Admin access required.")
)

// SignToken issues an HS256 session token for user.
func SignToken(secret string, user *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type identity struct {
	userID uint
	email  string
	role   string
}

func parseBearer(cfg *config.Config, header string) (*identity, error) {
	if header == "" {
		return nil, errMissingHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errBadHeader
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errBadToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errBadToken
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return nil, errBadToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &identity{userID: uint(userID), email: email, role: role}, nil
}

func (id *identity) store(c *gin.Context) {
	c.Set(ContextUserID, id.userID)
	c.Set(ContextUserEmail, id.email)
	c.Set(ContextUserRole, id.role)
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseBearer(cfg, c.GetHeader("Authorization"))
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		id.store(c)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through. A malformed or expired token is still rejected.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		id, err := parseBearer(cfg, header)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		id.store(c)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.RoleAdmin {
			httperr.Abort(c, errNotAdmin)
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(c *gin.Context) (booking.Actor, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return booking.Actor{}, false
	}
	userID, ok := v.(uint)
	if !ok {
		return booking.Actor{}, false
	}
	return booking.Actor{
		UserID: userID,
		Email:  c.GetString(ContextUserEmail),
		Role:   c.GetString(ContextUserRole),
	}, true
}
