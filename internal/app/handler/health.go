package handler

import (
	"WorldCities/internal/app/repository"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	repo *repository.Repository
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func NewHealthHandler(repo *repository.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Check godoc
// @Summary Health check
// @Description Reports database and Redis availability
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(ctx *gin.Context) {
	c, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Database: "up", Redis: "disabled"}

	if err := h.repo.Ping(c); err != nil {
		logrus.Warn("Health check: database unavailable: ", err)
		resp.Status = "unhealthy"
		resp.Database = "down"
	}

	if redisClient := h.repo.GetRedisClient(); redisClient != nil {
		resp.Redis = "up"
		if err := redisClient.Ping(c); err != nil {
			logrus.Warn("Health check: redis unavailable: ", err)
			resp.Redis = "down"
		}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}
