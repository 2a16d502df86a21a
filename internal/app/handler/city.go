package handler

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewCityHandler(repo *repository.Repository, cfg *config.Config) *CityHandler {
	return &CityHandler{
		repo: repo,
		cfg:  cfg,
	}
}

type CityRequest struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name" binding:"required"`
	NameASCII string  `json:"nameAscii"`
	Lat       float64 `json:"lat" binding:"min=-90,max=90"`
	Lon       float64 `json:"lon" binding:"min=-180,max=180"`
	CountryID uint    `json:"countryId" binding:"required"`
}

type UpdateCityRequest struct {
	Name      *string  `json:"name"`
	NameASCII *string  `json:"nameAscii"`
	Lat       *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lon       *float64 `json:"lon" binding:"omitempty,min=-180,max=180"`
	CountryID *uint    `json:"countryId"`
}

func (r CityRequest) city() ds.City {
	nameASCII := r.NameASCII
	if nameASCII == "" {
		nameASCII = r.Name
	}
	return ds.City{
		ID:        r.ID,
		Name:      r.Name,
		NameASCII: nameASCII,
		Lat:       r.Lat,
		Lon:       r.Lon,
		CountryID: r.CountryID,
	}
}

// GetCities godoc
// @Summary Get cities page
// @Description Paged, sorted and optionally filtered list of cities. An unknown sortColumn is ignored, an unknown filterColumn is rejected.
// @Tags Cities
// @Produce json
// @Param pageIndex query int false "Zero-based page index" default(0)
// @Param pageSize query int false "Page size" default(10)
// @Param sortColumn query string false "Sort column (name, nameAscii, lat, lon, countryId, id)"
// @Param sortOrder query string false "ASC or DESC" default(DESC)
// @Param filterColumn query string false "Filter column"
// @Param filterQuery query string false "Prefix to match in filterColumn"
// @Success 200 {object} paging.Page[ds.City]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cities [get]
func (h *CityHandler) GetCities(ctx *gin.Context) {
	req, err := bindPageRequest(ctx, h.cfg.DefaultPageSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.repo.City.GetCities(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "get cities")
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// GetCity godoc
// @Summary Get city by ID
// @Tags Cities
// @Produce json
// @Param id path int true "City ID"
// @Success 200 {object} ds.City
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cities/{id} [get]
func (h *CityHandler) GetCity(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	city, err := h.repo.City.GetCity(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "get city")
		return
	}

	ctx.JSON(http.StatusOK, city)
}

// CreateCity godoc
// @Summary Create city
// @Tags Cities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CityRequest true "City data"
// @Success 201 {object} ds.City
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /cities [post]
func (h *CityHandler) CreateCity(ctx *gin.Context) {
	var req CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	city := req.city()
	city.ID = 0
	if err := h.repo.City.CreateCity(ctx.Request.Context(), &city); err != nil {
		respondError(ctx, err, "create city")
		return
	}

	ctx.JSON(http.StatusCreated, city)
}

// UpdateCity godoc
// @Summary Update city
// @Tags Cities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Param request body UpdateCityRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cities/{id} [put]
func (h *CityHandler) UpdateCity(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req UpdateCityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.NameASCII != nil {
		updates["name_ascii"] = *req.NameASCII
	}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lon != nil {
		updates["lon"] = *req.Lon
	}
	if req.CountryID != nil {
		updates["country_id"] = *req.CountryID
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.repo.City.UpdateCity(ctx.Request.Context(), id, updates); err != nil {
		respondError(ctx, err, "update city")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "City updated successfully"})
}

// DeleteCity godoc
// @Summary Delete city
// @Tags Cities
// @Security BearerAuth
// @Param id path int true "City ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cities/{id} [delete]
func (h *CityHandler) DeleteCity(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := h.repo.City.DeleteCity(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "delete city")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "City deleted successfully"})
}

// IsDupeCity godoc
// @Summary Check for a duplicate city
// @Description True when another city has the same name, coordinates and country
// @Tags Cities
// @Accept json
// @Produce json
// @Param request body CityRequest true "City to check"
// @Success 200 {boolean} bool
// @Failure 400 {object} map[string]string
// @Router /cities/is-dupe [post]
func (h *CityHandler) IsDupeCity(ctx *gin.Context) {
	var req CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	dupe, err := h.repo.City.IsDupeCity(ctx.Request.Context(), req.city())
	if err != nil {
		respondError(ctx, err, "check city")
		return
	}

	ctx.JSON(http.StatusOK, dupe)
}
