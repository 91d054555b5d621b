package classifier

import (
	"strings"

	"copro-billing/internal/domain"
)

// AttributionMethod tells how a deposit was linked to an owner.
type AttributionMethod string

const (
	AttributedExplicit  AttributionMethod = "explicit"
	AttributedByName    AttributionMethod = "name"
	AttributedAmbiguous AttributionMethod = "ambiguous"
	AttributedUnknown   AttributionMethod = "unknown_owner"
	Unattributed        AttributionMethod = "none"
)

// Attribution is the outcome of matching one transaction to the owners.
type Attribution struct {
	OwnerID    string
	Method     AttributionMethod
	Candidates []string
}

// Attribute links tx to an owner. A stored owner id always wins; otherwise
// an owner matches when its last name appears in the counterparty or the
// description. Several matching owners yield an ambiguous attribution that
// must be confirmed by hand.
func Attribute(tx domain.Transaction, owners []domain.Owner) Attribution {
	if tx.OwnerID != nil && *tx.OwnerID != "" {
		if _, ok := domain.FindOwner(owners, *tx.OwnerID); !ok {
			return Attribution{OwnerID: *tx.OwnerID, Method: AttributedUnknown}
		}
		return Attribution{OwnerID: *tx.OwnerID, Method: AttributedExplicit}
	}

	text := transactionText(tx)
	var candidates []string
	for _, o := range owners {
		name := Normalize(o.LastName)
		if name == "" {
			continue
		}
		if strings.Contains(text, name) {
			candidates = append(candidates, o.ID)
		}
	}
	switch len(candidates) {
	case 0:
		return Attribution{Method: Unattributed}
	case 1:
		return Attribution{OwnerID: candidates[0], Method: AttributedByName, Candidates: candidates}
	default:
		return Attribution{Method: AttributedAmbiguous, Candidates: candidates}
	}
}

// Warning converts an ambiguous attribution into a reportable warning.
func (a Attribution) Warning(tx domain.Transaction) (domain.AttributionWarning, bool) {
	if a.Method != AttributedAmbiguous {
		return domain.AttributionWarning{}, false
	}
	text := strings.TrimSpace(tx.Counterparty + " " + tx.Description)
	return domain.AttributionWarning{TransactionID: tx.ID, Text: text, Candidates: a.Candidates}, true
}
