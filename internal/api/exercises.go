package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createExerciseRequest struct {
	Year int `json:"year" binding:"required"`
}

type closeExerciseRequest struct {
	Confirmation string `json:"confirmation"`
}

type adjustmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateExercise handles POST /api/buildings/:buildingId/exercises
func (h *Handler) CreateExercise(c *gin.Context) {
	var req createExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ex, err := h.app.Exercises.Create(c.Request.Context(), c.Param("buildingId"), req.Year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// GetExercise handles GET /api/buildings/:buildingId/exercises/:year
func (h *Handler) GetExercise(c *gin.Context) {
	year, err := yearParam(c, "year")
	if err != nil {
		fail(c, err)
		return
	}
	ex, err := h.app.Exercises.Get(c.Request.Context(), c.Param("buildingId"), year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// OpenExercise handles POST /api/buildings/:buildingId/exercises/:exerciseId/open
func (h *Handler) OpenExercise(c *gin.Context) {
	ex, err := h.app.Exercises.Open(c.Request.Context(), c.Param("buildingId"), c.Param("exerciseId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// CloseExercise handles POST /api/buildings/:buildingId/exercises/:exerciseId/close
func (h *Handler) CloseExercise(c *gin.Context) {
	var req closeExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ex, err := h.app.Exercises.Close(c.Request.Context(), c.Param("buildingId"), c.Param("exerciseId"), req.Confirmation)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// ArchiveExercise handles POST /api/buildings/:buildingId/exercises/:exerciseId/archive
func (h *Handler) ArchiveExercise(c *gin.Context) {
	ex, err := h.app.Exercises.Archive(c.Request.Context(), c.Param("buildingId"), c.Param("exerciseId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// SetAdjustment handles PUT /api/buildings/:buildingId/exercises/:exerciseId/adjustments/:ownerId
func (h *Handler) SetAdjustment(c *gin.Context) {
	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ex, err := h.app.Exercises.SetAdjustment(c.Request.Context(), c.Param("buildingId"), c.Param("exerciseId"), c.Param("ownerId"), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}
