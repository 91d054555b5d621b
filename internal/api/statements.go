package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"copro-billing/internal/domain"
	"copro-billing/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildingStatements handles GET /api/buildings/:buildingId/statements/:year?format=json|csv|xlsx
func (h *Handler) BuildingStatements(c *gin.Context) {
	year, err := yearParam(c, "year")
	if err != nil {
		fail(c, err)
		return
	}
	format := c.DefaultQuery("format", "json")
	switch format {
	case "json", "csv", "xlsx":
	default:
		fail(c, &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)})
		return
	}

	report, err := h.app.Reconciliation.BuildingStatements(c.Request.Context(), c.Param("buildingId"), year)
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	switch format {
	case "json":
		c.JSON(http.StatusOK, report)
		return
	case "csv":
		err = export.WriteCSV(&buf, *report)
	case "xlsx":
		contentType = xlsxContentType
		err = export.WriteXLSX(&buf, *report)
	}
	if err != nil {
		fail(c, fmt.Errorf("could not render %s: %w", format, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="decomptes-%d.%s"`, year, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// OwnerStatement handles GET /api/buildings/:buildingId/statements/:year/owners/:ownerId
func (h *Handler) OwnerStatement(c *gin.Context) {
	year, err := yearParam(c, "year")
	if err != nil {
		fail(c, err)
		return
	}
	st, err := h.app.Reconciliation.OwnerStatement(c.Request.Context(), c.Param("buildingId"), year, c.Param("ownerId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
