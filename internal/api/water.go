package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
)

type readingRequest struct {
	Date          string           `json:"date" binding:"required"` // YYYY-MM-DD
	PreviousIndex *decimal.Decimal `json:"previous_index"`
	CurrentIndex  decimal.Decimal  `json:"current_index"`
}

// ListMeters handles GET /api/buildings/:buildingId/meters
func (h *Handler) ListMeters(c *gin.Context) {
	meters, err := h.app.Water.ListMeters(c.Request.Context(), c.Param("buildingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meters": meters, "count": len(meters)})
}

// SaveMeter handles POST /api/buildings/:buildingId/meters
func (h *Handler) SaveMeter(c *gin.Context) {
	var req domain.Meter
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	m, err := h.app.Water.SaveMeter(c.Request.Context(), c.Param("buildingId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, m)
}

// RecordReading handles POST /api/buildings/:buildingId/meters/:meterId/readings
func (h *Handler) RecordReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := dateValue("date", req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	r, check, err := h.app.Water.RecordReading(c.Request.Context(), c.Param("buildingId"), c.Param("meterId"), date, req.PreviousIndex, req.CurrentIndex)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reading": r, "check": check})
}

// Apportion handles GET /api/buildings/:buildingId/water/apportionment?from=&to=&unit_price=&fixed_fee=
func (h *Handler) Apportion(c *gin.Context) {
	var (
		from, to time.Time
		tariff   domain.Tariff
		errs     domain.ValidationErrors
	)
	parseDate := func(field string) time.Time {
		v := c.Query(field)
		if v == "" {
			errs = append(errs, &domain.ValidationError{Field: field, Reason: "required"})
			return time.Time{}
		}
		d, err := dateValue(field, v)
		if err != nil {
			errs = append(errs, err.(*domain.ValidationError))
		}
		return d
	}
	parseAmount := func(field string) decimal.Decimal {
		v := c.DefaultQuery(field, "0")
		d, err := domain.ParseAmount(v)
		if err != nil {
			errs = append(errs, &domain.ValidationError{Field: field, Reason: "not a number"})
		}
		return d
	}
	from = parseDate("from")
	to = parseDate("to")
	tariff.UnitPrice = parseAmount("unit_price")
	tariff.FixedFee = parseAmount("fixed_fee")
	if len(errs) > 0 {
		fail(c, errs)
		return
	}

	a, err := h.app.Water.Apportion(c.Request.Context(), c.Param("buildingId"), from, to, tariff)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
