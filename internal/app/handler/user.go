package handler

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/middleware"
	"WorldCities/internal/app/repository"
	"WorldCities/internal/app/utils"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewUserHandler(repo *repository.Repository, cfg *config.Config) *UserHandler {
	return &UserHandler{
		repo: repo,
		cfg:  cfg,
	}
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary Register new user
// @Description Create a new user account. Admins are created with the migrate tool.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/register [post]
func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := h.repo.User.RegisterUser(ctx.Request.Context(), req.Login, req.Password, false)
	if errors.Is(err, repository.ErrUserExists) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(ctx, err, "register user")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT tokens
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := h.repo.User.Authenticate(ctx.Request.Context(), req.Login, req.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(ctx, err, "login")
		return
	}

	h.issueTokens(ctx, *user)
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/refresh [post]
func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.cfg.JWTSecret, ds.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// only the latest refresh token of a user is accepted
	if redisClient := h.repo.GetRedisClient(); redisClient != nil {
		storedToken, err := redisClient.GetRefreshToken(ctx.Request.Context(), claims.UserID)
		if err != nil || storedToken != req.RefreshToken {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
			return
		}
	}

	user, err := h.repo.User.GetUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	h.issueTokens(ctx, *user)
}

// GetProfile godoc
// @Summary Get user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ds.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.repo.User.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "get profile")
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary User logout
// @Description Invalidate the access token and drop the refresh token
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/logout [post]
func (h *UserHandler) Logout(ctx *gin.Context) {
	token, hasToken := middleware.GetToken(ctx)
	claims, hasClaims := middleware.GetClaims(ctx)
	if !hasToken || !hasClaims {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if redisClient := h.repo.GetRedisClient(); redisClient != nil {
		err := redisClient.AddToBlacklist(ctx.Request.Context(), token, utils.TimeLeft(claims))
		if err != nil {
			logrus.Error("Failed to add token to blacklist: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}

		if err := redisClient.DeleteRefreshToken(ctx.Request.Context(), claims.UserID); err != nil {
			logrus.Error("Failed to delete refresh token: ", err)
		}
	} else {
		logrus.Warnf("Redis unavailable, token of user %d stays valid until it expires", claims.UserID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *UserHandler) issueTokens(ctx *gin.Context, user ds.User) {
	accessToken, err := utils.GenerateAccessToken(user, h.cfg.JWTSecret, h.cfg.JWTAccessExpire)
	if err != nil {
		logrus.Error("Failed to generate access token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user, h.cfg.JWTSecret, h.cfg.JWTRefreshExpire)
	if err != nil {
		logrus.Error("Failed to generate refresh token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if redisClient := h.repo.GetRedisClient(); redisClient != nil {
		err = redisClient.SaveRefreshToken(ctx.Request.Context(), user.ID, refreshToken, h.cfg.JWTRefreshExpire)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}
	}

	ctx.JSON(http.StatusOK, ds.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(h.cfg.JWTAccessExpire),
		UserID:       user.ID,
		Login:        user.Login,
		IsAdmin:      user.IsAdmin,
	})
}
