// Package api exposes the billing use cases over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"copro-billing/internal/app"
	"copro-billing/internal/domain"
)

// Handler serves the REST endpoints of one application instance.
type Handler struct {
	app *app.App
	now func() time.Time
}

// NewHandler creates a handler over the use cases of a.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a, now: time.Now}
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h *Handler, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Logger(log), Recovery(log), CORS())

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/buildings", h.CreateBuilding)

		b := api.Group("/buildings/:buildingId")
		{
			b.GET("", h.GetBuilding)

			b.GET("/owners", h.ListOwners)
			b.POST("/owners", h.SaveOwner)
			b.GET("/owners/share-check", h.CheckShares)
			b.DELETE("/owners/:ownerId", h.DeleteOwner)

			b.GET("/transactions", h.ListTransactions)
			b.POST("/transactions", h.CreateTransaction)
			b.PATCH("/transactions/:txId", h.UpdateTransaction)

			b.POST("/imports/preview", h.PreviewImport)
			b.POST("/imports/commit", h.CommitImport)

			b.POST("/exercises", h.CreateExercise)
			b.GET("/exercises/:year", h.GetExercise)
			b.POST("/exercises/:exerciseId/open", h.OpenExercise)
			b.POST("/exercises/:exerciseId/close", h.CloseExercise)
			b.POST("/exercises/:exerciseId/archive", h.ArchiveExercise)
			b.PUT("/exercises/:exerciseId/adjustments/:ownerId", h.SetAdjustment)

			b.GET("/statements/:year", h.BuildingStatements)
			b.GET("/statements/:year/owners/:ownerId", h.OwnerStatement)

			b.GET("/meters", h.ListMeters)
			b.POST("/meters", h.SaveMeter)
			b.POST("/meters/:meterId/readings", h.RecordReading)
			b.GET("/water/apportionment", h.Apportion)
		}
	}
	return router
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   h.now().Format(time.RFC3339),
	})
}

func yearParam(c *gin.Context, name string) (int, error) {
	year, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Reason: "year must be a number"}
	}
	return year, nil
}

func dateValue(field, value string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "expected a YYYY-MM-DD date"}
	}
	return d, nil
}
