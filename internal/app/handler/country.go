package handler

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/repository"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewCountryHandler(repo *repository.Repository, cfg *config.Config) *CountryHandler {
	return &CountryHandler{
		repo: repo,
		cfg:  cfg,
	}
}

type CountryRequest struct {
	Name string `json:"name" binding:"required"`
	ISO2 string `json:"iso2" binding:"required,len=2,alpha"`
	ISO3 string `json:"iso3" binding:"required,len=3,alpha"`
}

type UpdateCountryRequest struct {
	Name *string `json:"name"`
	ISO2 *string `json:"iso2" binding:"omitempty,len=2,alpha"`
	ISO3 *string `json:"iso3" binding:"omitempty,len=3,alpha"`
}

type IsDupeFieldQuery struct {
	CountryID  uint   `form:"countryId"`
	FieldName  string `form:"fieldName" binding:"required"`
	FieldValue string `form:"fieldValue"`
}

// GetCountries godoc
// @Summary Get countries page
// @Description Paged, sorted and optionally filtered list of countries. An unknown sortColumn is ignored, an unknown filterColumn is rejected.
// @Tags Countries
// @Produce json
// @Param pageIndex query int false "Zero-based page index" default(0)
// @Param pageSize query int false "Page size" default(10)
// @Param sortColumn query string false "Sort column (name, iso2, iso3, id)"
// @Param sortOrder query string false "ASC or DESC" default(DESC)
// @Param filterColumn query string false "Filter column"
// @Param filterQuery query string false "Prefix to match in filterColumn"
// @Success 200 {object} paging.Page[ds.Country]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /countries [get]
func (h *CountryHandler) GetCountries(ctx *gin.Context) {
	req, err := bindPageRequest(ctx, h.cfg.DefaultPageSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.repo.Country.GetCountries(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "get countries")
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// GetCountry godoc
// @Summary Get country by ID
// @Tags Countries
// @Produce json
// @Param id path int true "Country ID"
// @Success 200 {object} ds.Country
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /countries/{id} [get]
func (h *CountryHandler) GetCountry(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	country, err := h.repo.Country.GetCountry(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "get country")
		return
	}

	ctx.JSON(http.StatusOK, country)
}

// CreateCountry godoc
// @Summary Create country
// @Tags Countries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CountryRequest true "Country data"
// @Success 201 {object} ds.Country
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /countries [post]
func (h *CountryHandler) CreateCountry(ctx *gin.Context) {
	var req CountryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	country := ds.Country{
		Name: req.Name,
		ISO2: strings.ToUpper(req.ISO2),
		ISO3: strings.ToUpper(req.ISO3),
	}
	if err := h.repo.Country.CreateCountry(ctx.Request.Context(), &country); err != nil {
		respondError(ctx, err, "create country")
		return
	}

	ctx.JSON(http.StatusCreated, country)
}

// UpdateCountry godoc
// @Summary Update country
// @Tags Countries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Country ID"
// @Param request body UpdateCountryRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /countries/{id} [put]
func (h *CountryHandler) UpdateCountry(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req UpdateCountryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ISO2 != nil {
		updates["iso2"] = strings.ToUpper(*req.ISO2)
	}
	if req.ISO3 != nil {
		updates["iso3"] = strings.ToUpper(*req.ISO3)
	}
	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.repo.Country.UpdateCountry(ctx.Request.Context(), id, updates); err != nil {
		respondError(ctx, err, "update country")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Country updated successfully"})
}

// DeleteCountry godoc
// @Summary Delete country
// @Description Deletes the country, its cities and its flag image
// @Tags Countries
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /countries/{id} [delete]
func (h *CountryHandler) DeleteCountry(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := h.repo.Country.DeleteCountry(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "delete country")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Country deleted successfully"})
}

// IsDupeField godoc
// @Summary Check for a duplicate country field
// @Description True when a country other than countryId already has fieldValue in fieldName
// @Tags Countries
// @Produce json
// @Param countryId query int false "Country being edited, 0 for a new one"
// @Param fieldName query string true "Field name (name, iso2, iso3)"
// @Param fieldValue query string false "Value to check"
// @Success 200 {boolean} bool
// @Failure 400 {object} map[string]string
// @Router /countries/is-dupe-field [get]
func (h *CountryHandler) IsDupeField(ctx *gin.Context) {
	var q IsDupeFieldQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	dupe, err := h.repo.Country.IsDupeField(ctx.Request.Context(), q.CountryID, q.FieldName, q.FieldValue)
	if err != nil {
		respondError(ctx, err, "check country field")
		return
	}

	ctx.JSON(http.StatusOK, dupe)
}

// UpdateCountryFlag godoc
// @Summary Upload country flag
// @Description Stores the image in object storage and replaces the previous flag
// @Tags Countries
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Country ID"
// @Param flag formData file true "Flag image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /countries/{id}/flag [post]
func (h *CountryHandler) UpdateCountryFlag(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("flag")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Flag image is required"})
		return
	}

	flagURL, err := h.repo.Country.UpdateCountryFlag(ctx.Request.Context(), id, fileHeader)
	if err != nil {
		respondError(ctx, err, "upload flag")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"flag": flagURL})
}
