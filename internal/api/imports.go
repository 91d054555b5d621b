package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"copro-billing/internal/domain"
)

// maxStatementSize bounds an uploaded bank statement.
const maxStatementSize = 10 << 20

// statementBody returns the uploaded statement: the "file" part of a
// multipart form, or the raw request body.
func statementBody(c *gin.Context) (io.ReadCloser, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxStatementSize)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, &domain.ValidationError{Field: "file", Reason: "missing statement file"}
		}
		return file, nil
	}
	return c.Request.Body, nil
}

func statementFormat(c *gin.Context) domain.StatementFormat {
	return domain.StatementFormat(c.DefaultQuery("format", string(domain.FormatGeneric)))
}

// PreviewImport handles POST /api/buildings/:buildingId/imports/preview?format=
func (h *Handler) PreviewImport(c *gin.Context) {
	body, err := statementBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	defer body.Close()

	preview, err := h.app.Imports.Preview(c.Request.Context(), c.Param("buildingId"), statementFormat(c), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// CommitImport handles POST /api/buildings/:buildingId/imports/commit?format=
func (h *Handler) CommitImport(c *gin.Context) {
	body, err := statementBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	defer body.Close()

	result, err := h.app.Imports.Commit(c.Request.Context(), c.Param("buildingId"), statementFormat(c), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
