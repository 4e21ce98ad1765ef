package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense Kind = "gasto"
	Income  Kind = "ingreso"
)

// Layouts used for StoredRecord date fields.
const (
	DateLayout  = "2006-01-02 15:04"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)

type (
	// Kind distinguishes expense records from income records.
	Kind string

	Money struct {
		Cents int64
	}

	// Transaction is the transient result of parsing a chat message.
	// It is produced once and never mutated; persistence happens only
	// after the user confirms a category or source.
	Transaction struct {
		Amount      Money
		Description string
		Kind        Kind
	}

	// StoredRecord is one persisted transaction row. Label holds the
	// confirmed category (expenses) or source (income).
	StoredRecord struct {
		Date        string
		Description string
		Amount      Money
		Label       string
		User        string
		Kind        Kind
		Month       string
		Year        string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidKind      = errors.New("invalid record kind")
	ErrNotRecognized    = errors.New("message not recognized")
	ErrInvalidChoice    = errors.New("invalid choice payload")
)

func (k Kind) IsValid() bool {
	return k == Expense || k == Income
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	return nil
}

// NewStoredRecord stamps a confirmed transaction with the wall-clock time of
// confirmation, not of the original message.
func NewStoredRecord(kind Kind, label, description, user string, amount Money, now time.Time) StoredRecord {
	return StoredRecord{
		Date:        now.Format(DateLayout),
		Description: description,
		Amount:      amount,
		Label:       label,
		User:        user,
		Kind:        kind,
		Month:       now.Format(MonthLayout),
		Year:        now.Format(YearLayout),
	}
}

func (r StoredRecord) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(r.Label) == "" {
		return errors.New("empty label")
	}
	if r.Date == "" || r.Month == "" || r.Year == "" {
		return errors.New("missing date fields")
	}
	return nil
}

// Row returns the ordered cell values for appending to the tabular store.
// Expense rows carry a fixed "Gasto" type column; income rows do not.
func (r StoredRecord) Row() []any {
	if r.Kind == Expense {
		return []any{r.Date, r.Description, r.Amount.Euros(), r.Label, r.User, "Gasto", r.Month, r.Year}
	}
	return []any{r.Date, r.Description, r.Amount.Euros(), r.Label, r.User, r.Month, r.Year}
}
