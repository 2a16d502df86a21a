package main

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/repository"
	"WorldCities/internal/pkg"

	_ "WorldCities/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title WorldCities API
// @version 1.0
// @description Paged, sorted and filtered catalogue of world cities and countries with JWT authentication

// @contact.name API Support
// @contact.url http://localhost:8080

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

// @tag.name Cities
// @tag.description Cities catalogue
// @tag.name Countries
// @tag.description Countries catalogue and flags
// @tag.name Users
// @tag.description User management and authentication
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	application := pkg.NewApp(conf, router, repo)
	application.RunApp()
}
