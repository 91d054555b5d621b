package classifier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"copro-billing/internal/domain"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "non-execute", Normalize("  NON-EXÉCUTÉ "))
	assert.Equal(t, "interets debiteurs 2024", Normalize("Intérêts\tdébiteurs   2024"))
	assert.Equal(t, "", Normalize("   "))
}

func TestClassifier_IsFee(t *testing.T) {
	c := New(nil, nil)
	tests := []struct {
		name string
		tx   domain.Transaction
		want bool
	}{
		{"bank fee", domain.Transaction{Type: domain.TransactionTypeCharge, Description: "FRAIS DE GESTION COMPTE"}, true},
		{"unexecuted order", domain.Transaction{Type: domain.TransactionTypeCharge, Description: "Ordre non exécuté"}, true},
		{"keyword in counterparty", domain.Transaction{Type: domain.TransactionTypeCharge, Counterparty: "Participation aux frais"}, true},
		{"common charge", domain.Transaction{Type: domain.TransactionTypeCharge, Description: "Entretien jardin"}, false},
		{"deposit never a fee", domain.Transaction{Type: domain.TransactionTypeDeposit, Description: "remboursement frais"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsFee(tt.tx))
		})
	}
}

func TestClassifier_PartitionIdempotent(t *testing.T) {
	c := New(nil, nil)
	txs := []domain.Transaction{
		{ID: "1", Type: domain.TransactionTypeCharge, Description: "Frais", Amount: decimal.NewFromInt(-2)},
		{ID: "2", Type: domain.TransactionTypeCharge, Description: "Eau", Amount: decimal.NewFromInt(-200)},
		{ID: "3", Type: domain.TransactionTypeDeposit, Description: "Provision", Amount: decimal.NewFromInt(300)},
		{ID: "4", Type: domain.TransactionTypeCharge, Description: "Commission virement", Amount: decimal.NewFromInt(-1)},
	}
	fees1, common1 := c.Partition(txs)
	fees2, common2 := c.Partition(txs)

	assert.Equal(t, fees1, fees2)
	assert.Equal(t, common1, common2)
	assert.Len(t, fees1, 2)
	assert.Len(t, common1, 1)
	assert.Equal(t, "2", common1[0].ID)
}

func TestClassifier_RecognizeCounterparty(t *testing.T) {
	c := New(nil, []Supplier{
		{Name: "Electrabel", Tags: []string{"engie"}, Category: "energie"},
		{Name: "Vivaqua", Category: "eau"},
	})

	s, ok := c.RecognizeCounterparty("ENGIE ELECTRABEL SA")
	assert.True(t, ok)
	assert.Equal(t, "Electrabel", s.Name)

	s, ok = c.RecognizeCounterparty("engie")
	assert.True(t, ok)
	assert.Equal(t, "energie", s.Category)

	s, ok = c.RecognizeCounterparty("VIVAQA")
	assert.True(t, ok)
	assert.Equal(t, "Vivaqua", s.Name)

	_, ok = c.RecognizeCounterparty("Boulangerie du coin")
	assert.False(t, ok)

	_, ok = c.RecognizeCounterparty("")
	assert.False(t, ok)
}

func TestAttribute(t *testing.T) {
	owners := []domain.Owner{
		{ID: "o1", LastName: "Dubois"},
		{ID: "o2", LastName: "Dubois-Leroy"},
		{ID: "o3", LastName: "Peeters"},
	}
	id := "o3"
	ghost := "ghost"

	tests := []struct {
		name       string
		tx         domain.Transaction
		wantMethod AttributionMethod
		wantOwner  string
	}{
		{"explicit id wins over name", domain.Transaction{OwnerID: &id, Counterparty: "DUBOIS"}, AttributedExplicit, "o3"},
		{"explicit id of unknown owner", domain.Transaction{OwnerID: &ghost}, AttributedUnknown, "ghost"},
		{"name in description", domain.Transaction{Description: "provision peeters T2"}, AttributedByName, "o3"},
		{"overlapping names", domain.Transaction{Counterparty: "DUBOIS-LEROY C."}, AttributedAmbiguous, ""},
		{"accents and case", domain.Transaction{Counterparty: "PÉETERS"}, AttributedByName, "o3"},
		{"no match", domain.Transaction{Counterparty: "SPF Finances"}, Unattributed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Attribute(tt.tx, owners)
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, tt.wantOwner, got.OwnerID)
		})
	}

	amb := Attribute(domain.Transaction{ID: "t9", Counterparty: "Dubois-Leroy"}, owners)
	w, ok := amb.Warning(domain.Transaction{ID: "t9", Counterparty: "Dubois-Leroy"})
	assert.True(t, ok)
	assert.Equal(t, []string{"o1", "o2"}, w.Candidates)
}
