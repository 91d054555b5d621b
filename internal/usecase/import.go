package usecase

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"copro-billing/internal/classifier"
	"copro-billing/internal/domain"
)

// ImportUseCase turns bank statements into ledger transactions.
type ImportUseCase struct {
	transactions TransactionRepository
	owners       OwnerRepository
	exercises    ExerciseRepository
	reader       StatementReader
	classifier   *classifier.Classifier
	log          zerolog.Logger
	now          func() time.Time
}

// NewImportUseCase creates a new instance of the usecase.
func NewImportUseCase(transactions TransactionRepository, owners OwnerRepository, exercises ExerciseRepository, reader StatementReader, c *classifier.Classifier, log zerolog.Logger) *ImportUseCase {
	if c == nil {
		c = classifier.New(nil, nil)
	}
	return &ImportUseCase{
		transactions: transactions,
		owners:       owners,
		exercises:    exercises,
		reader:       reader,
		classifier:   c,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// duplicateKey identifies a movement by amount and posting date.
func duplicateKey(t domain.Transaction) string {
	posted := t.Date
	if t.PostingDate != nil && !t.PostingDate.IsZero() {
		posted = *t.PostingDate
	}
	if posted.IsZero() {
		posted = t.EffectiveDate()
	}
	return domain.FormatAmount(t.Amount) + "|" + posted.Format(time.DateOnly)
}

func hashSource(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Preview parses a statement and reports, row by row, what a commit would do.
// Nothing is written.
func (uc *ImportUseCase) Preview(ctx context.Context, buildingID string, format domain.StatementFormat, r io.Reader) (*domain.ImportPreview, error) {
	if format == "" {
		format = domain.FormatGeneric
	}
	lines, err := uc.reader.ReadStatement(ctx, format, r)
	if err != nil {
		return nil, fmt.Errorf("could not read statement: %w", err)
	}
	existing, err := uc.transactions.ListTransactions(ctx, buildingID, 0)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "transactions", Err: err}
	}
	owners, err := uc.owners.ListOwners(ctx, buildingID)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "owners", Err: err}
	}

	seen := make(map[string]bool, len(existing)+len(lines))
	for _, t := range existing {
		seen[duplicateKey(t)] = true
	}

	preview := &domain.ImportPreview{Format: format, Rows: make([]domain.ImportRow, 0, len(lines))}
	now := uc.now()
	locked := make(map[int]error)
	for _, line := range lines {
		row := uc.row(buildingID, line, owners, now)
		if len(row.Errors) == 0 {
			year := row.Transaction.EffectiveDate().Year()
			lockErr, checked := locked[year]
			if !checked {
				lockErr = ensureYearOpen(ctx, uc.exercises, buildingID, year)
				if lockErr != nil && !domain.IsPrecondition(lockErr) {
					return nil, lockErr
				}
				locked[year] = lockErr
			}
			if lockErr != nil {
				row.Errors = append(row.Errors, &domain.ValidationError{Line: line.Line, Field: "date", Reason: lockErr.Error()})
			}
		}
		if len(row.Errors) == 0 {
			key := duplicateKey(row.Transaction)
			if seen[key] {
				row.Duplicate = true
			}
			seen[key] = true
		}
		row.Valid = len(row.Errors) == 0 && !row.Duplicate

		switch {
		case row.Valid:
			preview.ValidCount++
		case row.Duplicate:
			preview.Duplicates++
		default:
			preview.Invalid++
		}
		preview.Rows = append(preview.Rows, row)
	}
	preview.Total = len(preview.Rows)
	return preview, nil
}

func (uc *ImportUseCase) row(buildingID string, line domain.StatementLine, owners []domain.Owner, now time.Time) domain.ImportRow {
	row := domain.ImportRow{Line: line.Line, Errors: line.Errors}
	for _, e := range line.Errors {
		if e.Field == "amount" {
			uc.log.Warn().
				Str("building_id", buildingID).
				Int("line", line.Line).
				Str("reason", e.Reason).
				Msg("statement amount could not be parsed, row rejected")
		}
	}
	if len(line.Errors) == 0 && line.Amount.IsZero() {
		row.Errors = append(row.Errors, &domain.ValidationError{Line: line.Line, Field: "amount", Reason: "amount must not be zero"})
	}

	tx := domain.Transaction{
		BuildingID:   buildingID,
		Date:         line.Date,
		PostingDate:  line.PostingDate,
		CreatedAt:    now,
		Amount:       line.Amount,
		Type:         domain.TransactionTypeDeposit,
		Description:  line.Description,
		Counterparty: line.Counterparty,
		Source:       domain.SourceImport,
	}
	if tx.Amount.IsNegative() {
		tx.Type = domain.TransactionTypeCharge
	}
	tx.ImportHash = hashSource(buildingID, line.Date.Format(time.DateOnly), domain.FormatAmount(line.Amount), line.Description, line.Counterparty)
	tx.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(tx.ImportHash)).String()

	if s, ok := uc.classifier.RecognizeCounterparty(tx.Counterparty); ok {
		row.Supplier = s.Name
		tx.Category = s.Category
	} else if s, ok := uc.classifier.RecognizeCounterparty(tx.Description); ok {
		row.Supplier = s.Name
		tx.Category = s.Category
	}

	if tx.IsCharge() {
		row.Fee = uc.classifier.IsFee(tx)
	} else {
		att := classifier.Attribute(tx, owners)
		if att.Method == classifier.AttributedByName {
			id := att.OwnerID
			tx.OwnerID = &id
		}
		if w, ok := att.Warning(tx); ok {
			row.Warning = &w
		}
	}
	row.Transaction = tx
	return row
}

// Commit inserts the valid rows of a statement in one batch. Rows rejected at
// preview and rows the store reports as duplicates are skipped. A failed batch
// leaves the ledger untouched.
func (uc *ImportUseCase) Commit(ctx context.Context, buildingID string, format domain.StatementFormat, r io.Reader) (*domain.ImportResult, error) {
	preview, err := uc.Preview(ctx, buildingID, format, r)
	if err != nil {
		return nil, err
	}

	res := &domain.ImportResult{}
	batch := make([]domain.Transaction, 0, preview.ValidCount)
	for _, row := range preview.Rows {
		if !row.Valid {
			res.Skipped++
			res.Errors = append(res.Errors, row.Errors...)
			continue
		}
		batch = append(batch, row.Transaction)
	}
	if len(batch) > 0 {
		n, err := uc.transactions.InsertTransactions(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("could not import statement: %w", err)
		}
		res.Imported = n
		res.Skipped += len(batch) - n
	}

	uc.log.Info().
		Str("building_id", buildingID).
		Str("format", string(preview.Format)).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("statement imported")
	return res, nil
}
