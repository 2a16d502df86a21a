package pkg

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/handler"
	"WorldCities/internal/app/middleware"
	"WorldCities/internal/app/repository"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

type App struct {
	Config     *config.Config
	Router     *gin.Engine
	Repository *repository.Repository
}

func NewApp(c *config.Config, r *gin.Engine, repo *repository.Repository) *App {
	return &App{
		Config:     c,
		Router:     r,
		Repository: repo,
	}
}

// RunApp serves until SIGINT or SIGTERM, then shuts down gracefully
func (a *App) RunApp() {
	logrus.Info("Server start up")

	done := make(chan struct{})
	limiter := middleware.NewIPRateLimiter(rate.Limit(a.Config.RateLimitRPS), a.Config.RateLimitBurst)
	go limiter.Cleanup(time.Minute, done)

	a.Router.Use(middleware.RequestLogger())
	handler.RegisterHandlers(a.Router, a.Repository, a.Config, limiter)
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort),
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	a.Repository.Close()
	logrus.Info("Server down")
}
