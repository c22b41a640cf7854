package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// TokenRequest represents the request body for admin login
type TokenRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int64     `json:"expires_in" example:"3600"`
}

// AuthHandler issues and revokes admin access tokens
type AuthHandler struct {
	BaseHandler
	authenticator *auth.AdminAuthenticator
	jwtService    *auth.JWTService
	blacklist     auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler. blacklist may be nil, in which
// case tokens cannot be revoked before they expire.
func NewAuthHandler(authenticator *auth.AdminAuthenticator, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
		blacklist:     blacklist,
	}
}

// IssueToken godoc
// @ID           issueToken
// @Summary      Obtain an access token
// @Description  Checks the administrator credentials and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body TokenRequest true "Admin credentials"
// @Success      200 {object} APIResponse[TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	roles, err := h.authenticator.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.L(c.Request.Context()).Warn("Admin login rejected", zap.String("username", req.Username))
			h.Error(c, http.StatusUnauthorized, dto.ErrCodeInvalidCredentials, "Invalid username or password")
			return
		}
		h.HandleError(c, err)
		return
	}

	token, err := h.jwtService.GenerateAccessToken(req.Username, roles)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		ExpiresIn:   int64(h.jwtService.AccessTokenExpiration().Seconds()),
	})
}

// RevokeToken godoc
// @ID           revokeToken
// @Summary      Revoke the current access token
// @Description  Blacklists the presented token until it would have expired
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /auth/token [delete]
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	if h.blacklist == nil || claims.ID == "" {
		h.NoContent(c)
		return
	}

	ttl := claims.RemainingTTL(time.Now())
	if ttl > 0 {
		if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	logger.L(c.Request.Context()).Info("Access token revoked", zap.String("jti", claims.ID))
	h.NoContent(c)
}
