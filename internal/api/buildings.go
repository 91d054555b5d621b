package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"copro-billing/internal/domain"
)

// CreateBuilding handles POST /api/buildings
func (h *Handler) CreateBuilding(c *gin.Context) {
	var req domain.Building
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = ""
	b, err := h.app.Buildings.Save(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBuilding handles GET /api/buildings/:buildingId
func (h *Handler) GetBuilding(c *gin.Context) {
	b, err := h.app.Buildings.Get(c.Request.Context(), c.Param("buildingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListOwners handles GET /api/buildings/:buildingId/owners
func (h *Handler) ListOwners(c *gin.Context) {
	owners, err := h.app.Owners.List(c.Request.Context(), c.Param("buildingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": owners, "count": len(owners)})
}

// SaveOwner handles POST /api/buildings/:buildingId/owners. A body carrying an
// id updates that owner.
func (h *Handler) SaveOwner(c *gin.Context) {
	var req domain.Owner
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	o, err := h.app.Owners.Save(c.Request.Context(), c.Param("buildingId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, o)
}

// DeleteOwner handles DELETE /api/buildings/:buildingId/owners/:ownerId
func (h *Handler) DeleteOwner(c *gin.Context) {
	if err := h.app.Owners.Delete(c.Request.Context(), c.Param("buildingId"), c.Param("ownerId")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckShares handles GET /api/buildings/:buildingId/owners/share-check
func (h *Handler) CheckShares(c *gin.Context) {
	check, err := h.app.Owners.CheckShareTotal(c.Request.Context(), c.Param("buildingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}
