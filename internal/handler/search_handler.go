package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/linktorch-search/internal/crawler"
	"github.com/fuzumoe/linktorch-search/internal/model"
	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/service"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(svc service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: svc}
}

func paginationFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return repository.Pagination{Page: page, PageSize: size}
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrSearchNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrSearchFinished):
		code = http.StatusConflict
	case errors.Is(err, crawler.ErrQueueFull), errors.Is(err, crawler.ErrPoolClosed):
		code = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.JSON(code, gin.H{"error": err.Error()})
}

// @Summary Start a keyword search
// @Tags    searches
// @Accept  json
// @Produce json
// @Param   input body model.CreateSearchInput true "keyword, seed and limits"
// @Success 202 {object} model.SearchDTO
// @Failure 400 {object} map[string]string "error"
// @Failure 503 {object} map[string]string "queue full"
// @Security JWTAuth
// @Router  /api/v1/searches [post]
func (h *SearchHandler) Create(c *gin.Context) {
	var in model.CreateSearchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	dto, err := h.searchService.Start(&in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto)
}

// @Summary List searches (paginated)
// @Tags    searches
// @Produce json
// @Param   page      query int false "page"
// @Param   page_size query int false "page_size"
// @Success 200 {object} model.PaginatedResponse[model.SearchDTO]
// @Security JWTAuth
// @Router  /api/v1/searches [get]
func (h *SearchHandler) List(c *gin.Context) {
	res, err := h.searchService.List(paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get one search with live progress
// @Tags    searches
// @Produce json
// @Param   id path string true "Search ID"
// @Success 200 {object} model.SearchDTO
// @Failure 404 {object} map[string]string "error"
// @Security JWTAuth
// @Router  /api/v1/searches/{id} [get]
func (h *SearchHandler) Get(c *gin.Context) {
	dto, err := h.searchService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary Stop a search
// @Tags    searches
// @Produce json
// @Param   id path string true "Search ID"
// @Success 202 {object} map[string]string "stopping"
// @Failure 404 {object} map[string]string "error"
// @Failure 409 {object} map[string]string "already finished"
// @Security JWTAuth
// @Router  /api/v1/searches/{id}/stop [patch]
func (h *SearchHandler) Stop(c *gin.Context) {
	if err := h.searchService.Stop(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusStopped})
}

// @Summary Crawl results of a search in attempt order
// @Tags    searches
// @Produce json
// @Param   id        path  string true  "Search ID"
// @Param   page      query int    false "page"
// @Param   page_size query int    false "page_size"
// @Success 200 {object} model.PaginatedResponse[model.SearchResult]
// @Failure 404 {object} map[string]string "error"
// @Security JWTAuth
// @Router  /api/v1/searches/{id}/results [get]
func (h *SearchHandler) Results(c *gin.Context) {
	res, err := h.searchService.Results(c.Param("id"), paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Delete a search
// @Tags    searches
// @Produce json
// @Param   id path string true "Search ID"
// @Success 200 {object} map[string]string "deleted"
// @Failure 404 {object} map[string]string "error"
// @Security JWTAuth
// @Router  /api/v1/searches/{id} [delete]
func (h *SearchHandler) Delete(c *gin.Context) {
	if err := h.searchService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// RegisterRoutes mounts the search endpoints on the given router group.
func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/searches", h.Create)
	rg.GET("/searches", h.List)
	rg.GET("/searches/:id", h.Get)
	rg.PATCH("/searches/:id/stop", h.Stop)
	rg.GET("/searches/:id/results", h.Results)
	rg.DELETE("/searches/:id", h.Delete)
}
