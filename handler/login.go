package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"feedback-portal-backend/middleware"
	"feedback-portal-backend/model"
	"feedback-portal-backend/store"
	"feedback-portal-backend/util"
)

// tokenTTL is the fixed session validity; expiry is the only way a session
// ends.
const tokenTTL = 24 * time.Hour

// AuthHandler issues admin session tokens.
type AuthHandler struct {
	store     store.Store
	jwtSecret string
}

func NewAuthHandler(s store.Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: s, jwtSecret: jwtSecret}
}

// Login handles POST /api/auth/login. Unknown usernames and wrong passwords
// get the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, util.ErrorResponse{Error: "Username and password required"})
		return
	}

	admin, err := h.store.FindAdminByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, util.ErrorResponse{Error: util.ErrMsgUnauthorized})
		return
	}
	if err != nil {
		util.HandleError(c, http.StatusInternalServerError, util.ErrMsgDatabase, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, util.ErrorResponse{Error: util.ErrMsgUnauthorized})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.AdminClaims{
		ID:       admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		util.HandleError(c, http.StatusInternalServerError, "Token creation failed", err)
		return
	}

	c.JSON(http.StatusOK, model.AdminLoginResponse{
		Token: signed,
		User: model.AdminUser{
			ID:       admin.ID,
			Username: admin.Username,
		},
	})
}
