package handler

import (
	"WorldCities/internal/app/paging"
	"WorldCities/internal/app/repository"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// respondError maps a repository error to a status and writes it as {"error": ...}.
// action completes the "Failed to ..." message of unexpected errors.
func respondError(ctx *gin.Context, err error, action string) {
	_ = ctx.Error(err)

	var notFound *paging.PropertyNotFoundError
	switch {
	case errors.Is(err, paging.ErrInvalidPageRequest), errors.As(err, &notFound):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Record already exists"})
	case errors.Is(err, repository.ErrFlagStorageUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.Error("Failed to "+action+": ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
