package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
)

type createTransactionRequest struct {
	Date         string                 `json:"date" binding:"required"` // YYYY-MM-DD
	PostingDate  string                 `json:"posting_date"`
	Amount       decimal.Decimal        `json:"amount"`
	Type         domain.TransactionType `json:"type"`
	Description  string                 `json:"description"`
	Counterparty string                 `json:"counterparty"`
	OwnerID      *string                `json:"owner_id"`
	Category     string                 `json:"category"`
}

func (r createTransactionRequest) transaction() (domain.Transaction, error) {
	date, err := dateValue("date", r.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	t := domain.Transaction{
		Date:         date,
		Amount:       r.Amount,
		Type:         r.Type,
		Description:  r.Description,
		Counterparty: r.Counterparty,
		OwnerID:      r.OwnerID,
		Category:     r.Category,
	}
	if r.PostingDate != "" {
		posted, err := dateValue("posting_date", r.PostingDate)
		if err != nil {
			return domain.Transaction{}, err
		}
		t.PostingDate = &posted
	}
	return t, nil
}

// ListTransactions handles GET /api/buildings/:buildingId/transactions?year=
func (h *Handler) ListTransactions(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			fail(c, &domain.ValidationError{Field: "year", Reason: "year must be a number"})
			return
		}
		year = y
	}
	txs, err := h.app.Transactions.List(c.Request.Context(), c.Param("buildingId"), year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

// CreateTransaction handles POST /api/buildings/:buildingId/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := req.transaction()
	if err != nil {
		fail(c, err)
		return
	}
	created, err := h.app.Transactions.Create(c.Request.Context(), c.Param("buildingId"), t)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTransaction handles PATCH /api/buildings/:buildingId/transactions/:txId
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var patch domain.TransactionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Transactions.Update(c.Request.Context(), c.Param("buildingId"), c.Param("txId"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
