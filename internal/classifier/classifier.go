// Package classifier holds the rules shared by the statement engine and the
// bank import: fee detection, owner attribution and counterparty recognition.
package classifier

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"copro-billing/internal/domain"
)

// DefaultFeeKeywords are the phrases that mark a charge as a bank or
// administrative fee.
var DefaultFeeKeywords = []string{
	"frais",
	"non-exécuté",
	"non exécuté",
	"participation aux frais",
	"intérêts débiteurs",
	"commission",
}

// maxFuzzyRatio is the largest edit distance, relative to the longer string,
// still accepted as a supplier name match.
const maxFuzzyRatio = 0.2

// Supplier is a known counterparty of the building.
type Supplier struct {
	Name     string   `json:"name" mapstructure:"name"`
	Tags     []string `json:"tags" mapstructure:"tags"`
	Category string   `json:"category" mapstructure:"category"`
}

// Classifier is immutable once built and safe for concurrent use.
type Classifier struct {
	feeKeywords []string
	suppliers   []Supplier
	normalized  [][]string // normalized name followed by tags, per supplier
}

// New builds a classifier. An empty keyword list selects DefaultFeeKeywords.
func New(feeKeywords []string, suppliers []Supplier) *Classifier {
	if len(feeKeywords) == 0 {
		feeKeywords = DefaultFeeKeywords
	}
	c := &Classifier{suppliers: suppliers}
	for _, k := range feeKeywords {
		if n := Normalize(k); n != "" {
			c.feeKeywords = append(c.feeKeywords, n)
		}
	}
	for _, s := range suppliers {
		keys := []string{Normalize(s.Name)}
		for _, t := range s.Tags {
			if n := Normalize(t); n != "" {
				keys = append(keys, n)
			}
		}
		c.normalized = append(c.normalized, keys)
	}
	return c
}

// Normalize lowercases s, strips accents and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func transactionText(tx domain.Transaction) string {
	return Normalize(tx.Counterparty + " " + tx.Description)
}

// FeeKeyword returns the first fee keyword found in text.
func (c *Classifier) FeeKeyword(text string) (string, bool) {
	n := Normalize(text)
	for _, k := range c.feeKeywords {
		if strings.Contains(n, k) {
			return k, true
		}
	}
	return "", false
}

// IsFee reports whether tx is a charge classified as a fee.
func (c *Classifier) IsFee(tx domain.Transaction) bool {
	if !tx.IsCharge() {
		return false
	}
	_, ok := c.FeeKeyword(tx.Counterparty + " " + tx.Description)
	return ok
}

// Partition splits the charges of txs into fees and common charges. Deposits
// are ignored. The input slice is not modified.
func (c *Classifier) Partition(txs []domain.Transaction) (fees, common []domain.Transaction) {
	for _, tx := range txs {
		if !tx.IsCharge() {
			continue
		}
		if c.IsFee(tx) {
			fees = append(fees, tx)
		} else {
			common = append(common, tx)
		}
	}
	return fees, common
}

// RecognizeCounterparty finds the supplier named in text, first by name or tag
// substring, then by edit distance against the supplier name.
func (c *Classifier) RecognizeCounterparty(text string) (Supplier, bool) {
	n := Normalize(text)
	if n == "" {
		return Supplier{}, false
	}
	for i, keys := range c.normalized {
		for _, k := range keys {
			if k != "" && strings.Contains(n, k) {
				return c.suppliers[i], true
			}
		}
	}

	best, bestRatio := -1, maxFuzzyRatio
	for i, keys := range c.normalized {
		name := keys[0]
		if name == "" {
			continue
		}
		ratio := distanceRatio(n, name)
		if ratio <= bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best < 0 {
		return Supplier{}, false
	}
	return c.suppliers[best], true
}

func distanceRatio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
