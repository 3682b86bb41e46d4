package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/middleware"
	"github.com/stocknest/stocknest_backend/internal/platform/config"
	"github.com/stocknest/stocknest_backend/internal/utils"
)

const (
	refreshTokenCookie = "refresh_token"
	oauthStateCookie   = "oauth_state"
	authCookiePath     = "/api/v1/auth"
)

// AuthHandler handles authentication related requests: password login and
// registration, refresh token rotation and the Google OAuth flows.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.Token,
		oauthService: services.GoogleOAuth,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// Credential endpoints are rate limited per client IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limit := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limit, h.Login)
		auth.POST("/register", limit, h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)

		google := auth.Group("/google")
		{
			google.GET("/login", h.GoogleLogin)
			google.GET("/callback", h.GoogleCallback)
			google.POST("", h.GoogleIDTokenSignIn)
		}
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password, returning a JWT
// @Description access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Deliberately indistinct: do not reveal whether the email exists.
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Invalid email or password"))
		return
	}

	resp, ok := h.grantSession(c, user.UserID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register new user
// @Description Creates a self-service employee account. Elevated roles are
// @Description granted by an admin afterwards.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	newUser, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the token pair using the refresh token cookie set at login.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Missing or malformed refresh token"))
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	resp, ok := h.grantSession(c, user.UserID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: resp.Token, ExpiresAt: resp.ExpiresAt})
}

// Logout godoc
// @Summary Logout
// @Description Clears the refresh token server-side and expires the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to clear stored refresh token on logout", slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// GoogleLogin godoc
// @Summary Start Google OAuth sign-in
// @Description Redirects the browser to Google's consent screen. A state
// @Description cookie guards the callback against CSRF.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}

	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), authCookiePath, "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Handles the redirect back from Google: verifies state, exchanges
// @Description the code, provisions the user and redirects to the frontend with
// @Description an access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Success 307 "Redirect to frontend"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Invalid OAuth state"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, authCookiePath, "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Authorization code is required"))
		return
	}

	oauthToken, err := h.oauthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		status := http.StatusBadGateway
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			status = http.StatusBadRequest
		}
		c.JSON(status, newErrorResponse(status, "Failed to exchange authorization code"))
		return
	}

	info, err := h.oauthService.GetUserInfo(ctx, oauthToken)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, newErrorResponse(http.StatusBadGateway, "Failed to fetch user info from Google"))
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to process Google sign-in")
		return
	}

	resp, ok := h.grantSession(c, user.UserID)
	if !ok {
		return
	}

	redirect, err := url.Parse(h.cfg.FrontendBaseURL)
	if err != nil || h.cfg.FrontendBaseURL == "" {
		// No frontend configured: return the token pair directly.
		c.JSON(http.StatusOK, resp)
		return
	}
	redirect.Path = "/auth/callback"
	q := redirect.Query()
	q.Set("token", resp.Token)
	redirect.RawQuery = q.Encode()
	c.Redirect(http.StatusTemporaryRedirect, redirect.String())
}

// GoogleIDTokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained by a client-side Google sign-in
// @Description flow and exchanges it for application tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param idToken body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleIDTokenSignIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Invalid Google ID token"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)

	user, err := h.userService.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		Name:          name,
		VerifiedEmail: verified,
	})
	if err != nil {
		respondError(c, err, "Failed to process Google sign-in")
		return
	}

	resp, ok := h.grantSession(c, user.UserID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// grantSession issues a token pair for the user, persists the refresh token
// hash and sets the refresh cookie. Returns false after writing an error
// response when any step fails.
func (h *AuthHandler) grantSession(c *gin.Context, userID string) (*dto.LoginResponse, bool) {
	ctx := c.Request.Context()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return nil, false
	}

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate access token")
		return nil, false
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate refresh token")
		return nil, false
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		respondError(c, err, "Failed to persist refresh token")
		return nil, false
	}

	h.setRefreshCookie(c, user.UserID, refreshToken, refreshExpiry)

	return &dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: accessExpiry,
		User:      dto.ToUserResponse(user),
	}, true
}

// setRefreshCookie stores "userID.token" as an HTTP-only cookie scoped to the
// auth endpoints. Both parts are dot-free (uuid and hex), so splitting on the
// first dot is unambiguous.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, userID, token string, expiry time.Time) {
	maxAge := int(time.Until(expiry).Seconds())
	c.SetCookie(refreshTokenCookie, userID+"."+token, maxAge, authCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshTokenCookie, "", -1, authCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) readRefreshCookie(c *gin.Context) (userID, token string, ok bool) {
	value, err := c.Cookie(refreshTokenCookie)
	if err != nil || value == "" {
		return "", "", false
	}
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
