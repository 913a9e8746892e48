package auth

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/notedeck/api/models"
	"golang.org/x/crypto/bcrypt"
)

// refreshCookieName is the cookie holding the refresh token.
const refreshCookieName = "jwt"

// Login handles POST /auth. On success it responds with an access token and
// sets the refresh token cookie.
func (p *Provider) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := p.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil || !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	accessToken, err := p.issueAccessToken(user)
	if err != nil {
		log.Error("failed to issue access token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	refreshToken, err := p.issueRefreshToken(user)
	if err != nil {
		log.Error("failed to issue refresh token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, refreshToken, int(p.refreshTTL.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Refresh handles GET /auth/refresh. It reads the refresh token cookie and
// responds with a fresh access token.
func (p *Provider) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	claims, err := p.VerifyRefreshToken(cookie)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	// Re-resolve the user so revoked or deactivated accounts stop refreshing.
	user, err := p.db.GetUserByUsername(c.Request.Context(), claims.Username)
	if err != nil || !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	accessToken, err := p.issueAccessToken(user)
	if err != nil {
		log.Error("failed to issue access token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout handles POST /auth/logout by clearing the refresh token cookie.
func (p *Provider) Logout(c *gin.Context) {
	if _, err := c.Cookie(refreshCookieName); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{"message": "Cookie cleared"})
}
