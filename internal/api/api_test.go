package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copro-billing/internal/app"
	"copro-billing/internal/config"
	"copro-billing/internal/database"
	"copro-billing/internal/domain"
	"copro-billing/internal/water"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))

	cfg := config.Config{Billing: config.BillingConfig{Currency: "EUR", DefaultShareTotal: 1000}}
	return NewRouter(NewHandler(app.New(db, cfg, zerolog.Nop())), zerolog.Nop())
}

// do sends body as JSON, or verbatim when it is a string.
func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
		contentType = "text/csv"
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type fixture struct {
	router   *gin.Engine
	building string
	dupont   string
	lambert  string
}

func (f fixture) path(format string, args ...interface{}) string {
	return "/api/buildings/" + f.building + fmt.Sprintf(format, args...)
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{router: newTestRouter(t)}

	rec := do(t, f.router, http.MethodPost, "/api/buildings", gin.H{"name": "Les Tilleuls", "address": "Rue des Tilleuls 4"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b domain.Building
	decode(t, rec, &b)
	assert.Equal(t, 1000, b.TotalShares)
	assert.Equal(t, domain.MeteringCollective, b.MeteringMode)
	f.building = b.ID

	for _, o := range []struct {
		last, first string
		units       int
		id          *string
	}{
		{"Dupont", "Anne", 300, &f.dupont},
		{"Lambert", "Marc", 700, &f.lambert},
	} {
		rec := do(t, f.router, http.MethodPost, f.path("/owners"), gin.H{"last_name": o.last, "first_name": o.first, "share_units": o.units})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var owner domain.Owner
		decode(t, rec, &owner)
		*o.id = owner.ID
	}
	return f
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestMiddleware(t *testing.T) {
	router := newTestRouter(t)

	t.Run("request id is propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := do(t, router, http.MethodOptions, "/api/buildings", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("panic is recovered", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID(), Recovery(zerolog.Nop()))
		r.GET("/boom", func(c *gin.Context) { panic("boom") })
		rec := do(t, r, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "year", Reason: "bad"}, http.StatusBadRequest},
		{"validation list", domain.ValidationErrors{{Field: "amount", Reason: "zero"}}, http.StatusBadRequest},
		{"parse", &domain.ParseError{Input: "x", Reason: "not a number"}, http.StatusBadRequest},
		{"not found", fmt.Errorf("owner x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unknown owner", domain.ErrUnknownOwner, http.StatusNotFound},
		{"precondition", &domain.PreconditionFailedError{Reason: "closed"}, http.StatusConflict},
		{"duplicate", domain.ErrDuplicate, http.StatusConflict},
		{"confirmation", &domain.PreconditionFailedError{Reason: "mismatch", Err: domain.ErrConfirmationMismatch}, http.StatusPreconditionFailed},
		{"data load", &domain.DataLoadError{Resource: "owners", Err: errors.New("disk")}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestOwners(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodGet, f.path("/owners"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Owners []domain.Owner `json:"owners"`
		Count  int            `json:"count"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 2, list.Count)

	rec = do(t, f.router, http.MethodGet, f.path("/owners/share-check"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var check domain.ShareCheck
	decode(t, rec, &check)
	assert.True(t, check.Balanced)

	rec = do(t, f.router, http.MethodPost, f.path("/owners"), gin.H{"last_name": " ", "share_units": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "details")

	rec = do(t, f.router, http.MethodPost, "/api/buildings/missing/owners", gin.H{"last_name": "Martin"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.router, http.MethodGet, "/api/buildings/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.router, http.MethodPost, "/api/buildings", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionsImportAndStatements(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{
		"date": "2024-01-15", "amount": "-1000", "description": "Assurance incendie", "counterparty": "AXA",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var charge domain.Transaction
	decode(t, rec, &charge)
	assert.Equal(t, domain.TransactionTypeCharge, charge.Type)
	assert.Equal(t, domain.SourceManual, charge.Source)

	rec = do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{"date": "2024-03-01", "amount": "400", "owner_id": f.dupont})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{"date": "01/03/2024", "amount": "400"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{"date": "2024-03-01", "amount": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	statement := "Date,Montant,Contrepartie,Libellé\n" +
		"2024-02-01,700,LAMBERT MARC,Provision charges\n" +
		"2024-01-15,-1000,AXA,Assurance incendie\n" +
		"2024-02-03,abc,X,Broken\n"

	rec = do(t, f.router, http.MethodPost, f.path("/imports/preview?format=generic"), statement)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview domain.ImportPreview
	decode(t, rec, &preview)
	assert.Equal(t, 3, preview.Total)
	assert.Equal(t, 1, preview.ValidCount)
	assert.Equal(t, 1, preview.Duplicates)
	assert.Equal(t, 1, preview.Invalid)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile("file", "releve.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(statement))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, f.path("/imports/commit"), &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result domain.ImportResult
	decode(t, rec, &result)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	rec = do(t, f.router, http.MethodPost, f.path("/imports/preview?format=mt940"), statement)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/transactions?year=2024"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var txs struct {
		Transactions []domain.Transaction `json:"transactions"`
		Count        int                  `json:"count"`
	}
	decode(t, rec, &txs)
	assert.Equal(t, 3, txs.Count)

	rec = do(t, f.router, http.MethodGet, f.path("/transactions?year=20x4"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	category := "insurance"
	rec = do(t, f.router, http.MethodPatch, f.path("/transactions/%s", charge.ID), domain.TransactionPatch{Category: &category})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var patched domain.Transaction
	decode(t, rec, &patched)
	assert.Equal(t, "insurance", patched.Category)

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report domain.BuildingReport
	decode(t, rec, &report)
	assert.True(t, decimal.NewFromInt(1000).Equal(report.Summary.TotalCommonCharges), report.Summary.TotalCommonCharges.String())
	assert.True(t, decimal.NewFromInt(1100).Equal(report.Summary.TotalDeposits), report.Summary.TotalDeposits.String())
	assert.True(t, decimal.NewFromInt(100).Equal(report.Summary.GlobalBalance), report.Summary.GlobalBalance.String())
	assert.Equal(t, "EUR", report.Summary.Currency)
	require.Len(t, report.Statements, 2)

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024/owners/%s", f.lambert), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st domain.AnnualStatement
	decode(t, rec, &st)
	assert.True(t, st.FinalBalance.IsZero(), st.FinalBalance.String())
	assert.Equal(t, domain.StatusUpToDate, st.Status)

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024/owners/nobody"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024?format=csv"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeff"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "decomptes-2024.csv")
	assert.Contains(t, rec.Body.String(), `"Total (EUR)"`)

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024?format=xlsx"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024?format=pdf"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodDelete, f.path("/owners/%s", f.dupont), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExerciseLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{"date": "2024-01-15", "amount": "-1000", "description": "Assurance"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, f.router, http.MethodPost, f.path("/exercises"), gin.H{"year": 2024})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ex domain.Exercise
	decode(t, rec, &ex)
	assert.Equal(t, domain.ExerciseDraft, ex.Status)

	rec = do(t, f.router, http.MethodPost, f.path("/exercises"), gin.H{"year": 2024})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, f.router, http.MethodPost, f.path("/exercises/%s/close", ex.ID), gin.H{"confirmation": "CLOTURER 2024"})
	assert.Equal(t, http.StatusConflict, rec.Code, "draft cannot be closed")

	rec = do(t, f.router, http.MethodPost, f.path("/exercises/%s/open", ex.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, f.router, http.MethodPut, f.path("/exercises/%s/adjustments/%s", ex.ID, f.lambert), gin.H{"amount": "25"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, f.router, http.MethodPost, f.path("/exercises/%s/close", ex.ID), gin.H{"confirmation": "cloturer 2024"})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec = do(t, f.router, http.MethodPost, f.path("/exercises/%s/close", ex.ID), gin.H{"confirmation": "CLOTURER 2024"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &ex)
	assert.Equal(t, domain.ExerciseClosed, ex.Status)
	require.NotNil(t, ex.ClosedAt)
	lambert, ok := ex.SoldeFor(f.lambert)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(-675).Equal(lambert.ClosingBalance), lambert.ClosingBalance.String())

	rec = do(t, f.router, http.MethodPut, f.path("/exercises/%s/adjustments/%s", ex.ID, f.lambert), gin.H{"amount": "1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A closed year takes no new movement and its statement keeps matching the stored solde.
	rec = do(t, f.router, http.MethodPost, f.path("/transactions"), gin.H{"date": "2024-06-01", "amount": "500", "owner_id": f.lambert})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	rec = do(t, f.router, http.MethodGet, f.path("/statements/2024/owners/%s", f.lambert), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var closedYear domain.AnnualStatement
	decode(t, rec, &closedYear)
	assert.True(t, lambert.ClosingBalance.Equal(closedYear.FinalBalance), closedYear.FinalBalance.String())

	rec = do(t, f.router, http.MethodGet, f.path("/exercises/2024"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &ex)
	assert.Equal(t, domain.ExerciseClosed, ex.Status)

	rec = do(t, f.router, http.MethodPost, f.path("/exercises/%s/archive", ex.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The closing balance opens the next year.
	rec = do(t, f.router, http.MethodGet, f.path("/statements/2025/owners/%s", f.lambert), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st domain.AnnualStatement
	decode(t, rec, &st)
	assert.True(t, decimal.NewFromInt(-675).Equal(st.OpeningBalance), st.OpeningBalance.String())

	rec = do(t, f.router, http.MethodGet, f.path("/exercises/2030"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/exercises/abc"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWater(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodPost, f.path("/meters"), gin.H{"serial": "DIV-01", "owner_id": f.dupont, "headcount": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m domain.Meter
	decode(t, rec, &m)
	assert.Equal(t, domain.MeterDivisionary, m.Type)

	rec = do(t, f.router, http.MethodPost, f.path("/meters"), gin.H{"serial": "X", "type": "smart"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/meters"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DIV-01")

	rec = do(t, f.router, http.MethodPost, f.path("/meters/%s/readings", m.ID), gin.H{
		"date": "2024-06-30", "previous_index": "120.500", "current_index": "135.250",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Reading domain.Reading `json:"reading"`
		Check   water.Check    `json:"check"`
	}
	decode(t, rec, &out)
	assert.True(t, decimal.RequireFromString("14.75").Equal(out.Check.Consumption), out.Check.Consumption.String())
	assert.False(t, out.Check.Anomaly)

	// Previous index defaults to the last reading.
	rec = do(t, f.router, http.MethodPost, f.path("/meters/%s/readings", m.ID), gin.H{"date": "2024-12-31", "current_index": "130"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodPost, f.path("/meters/unknown/readings"), gin.H{"date": "2024-12-31", "current_index": "130"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/water/apportionment?from=2024-01-01&to=2024-12-31&unit_price=4,5&fixed_fee=10"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a domain.Apportionment
	decode(t, rec, &a)
	assert.NotEmpty(t, a.Lines)

	rec = do(t, f.router, http.MethodGet, f.path("/water/apportionment?from=2024-12-31&to=2024-01-01"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.router, http.MethodGet, f.path("/water/apportionment?to=2024-01-01&unit_price=x"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unit_price")
}
