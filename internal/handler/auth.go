package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"fundboard/internal/config"
)

const sessionOperatorKey = "operator"

// AuthHandler implements the single-operator login. There is no user
// table: the one credential comes from configuration, with the password
// stored either plain or bcrypt-hashed.
type AuthHandler struct {
	Auth config.AuthConfig
}

func (h *AuthHandler) Register(r *gin.Engine) {
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// @Summary Operator login
// @Tags auth
// @Accept json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid login payload", nil)
		return
	}

	if !h.checkCredentials(req.Email, req.Password) {
		Error(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionOperatorKey, strings.ToLower(strings.TrimSpace(req.Email)))
	if err := session.Save(); err != nil {
		Error(c, http.StatusInternalServerError, "session save failed", nil)
		return
	}
	Ok(c, gin.H{"email": h.Auth.OperatorEmail}, nil)
}

func (h *AuthHandler) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	Ok(c, gin.H{"status": "logged_out"}, nil)
}

func (h *AuthHandler) checkCredentials(email, password string) bool {
	wantEmail := strings.ToLower(strings.TrimSpace(h.Auth.OperatorEmail))
	if strings.ToLower(strings.TrimSpace(email)) != wantEmail {
		return false
	}

	stored := h.Auth.OperatorPassword
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return password == stored
}

// RequireOperator gates the API routes behind the operator session.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionOperatorKey) == nil {
			Error(c, http.StatusUnauthorized, "login required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
