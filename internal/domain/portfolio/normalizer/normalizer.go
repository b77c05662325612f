// Package normalizer converts tokenized CSV rows into typed client
// loan records, coercing numeric and date fields with best-effort
// defaults instead of failing the row.
package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/mvandrade/loanlens/internal/domain/portfolio/tokenizer"
)

// Column names looked up in the header-keyed rows. Unknown columns are
// ignored; lookup is by name so column order is irrelevant.
const (
	ColClientID        = "client_id"
	ColClientName      = "client_name"
	ColCountry         = "country"
	ColCurrency        = "currency"
	ColLoanAmount      = "loan_amount"
	ColAmountPaid      = "amount_paid"
	ColDueDate         = "due_date"
	ColLastPaymentDate = "last_payment_date"
)

// ClientRecord is one normalized CSV data row.
type ClientRecord struct {
	ClientID        string
	ClientName      string
	Country         string
	Currency        string
	LoanAmount      float64
	PaidAmount      float64
	DueDate         *time.Time
	LastPaymentDate *time.Time
}

// Normalize maps every tokenized row to a ClientRecord. Rows without a
// usable client identifier (after the id -> name fallback) are skipped
// silently.
func Normalize(doc *tokenizer.Document, defaultCurrency string) []ClientRecord {
	records := make([]ClientRecord, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		rec, ok := NormalizeRow(row, defaultCurrency)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// NormalizeRow converts a single header-keyed row. The second return
// value is false when the row has no client_id and no client_name.
func NormalizeRow(row tokenizer.Row, defaultCurrency string) (ClientRecord, bool) {
	id := row[ColClientID]
	if id == "" {
		id = row[ColClientName]
	}
	if id == "" {
		return ClientRecord{}, false
	}

	name := row[ColClientName]
	if name == "" {
		name = id
	}
	country := row[ColCountry]
	if country == "" {
		country = "-"
	}
	currency := row[ColCurrency]
	if currency == "" {
		currency = defaultCurrency
	}

	return ClientRecord{
		ClientID:        id,
		ClientName:      name,
		Country:         country,
		Currency:        currency,
		LoanAmount:      ParseAmount(row[ColLoanAmount]),
		PaidAmount:      ParseAmount(row[ColAmountPaid]),
		DueDate:         ParseDate(row[ColDueDate]),
		LastPaymentDate: ParseDate(row[ColLastPaymentDate]),
	}, true
}

// ParseAmount attempts a decimal parse; empty or unparseable input
// coerces to 0.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// Calendar date formats accepted in due_date / last_payment_date fields
var dateFormats = []string{
	// ISO (YYYY-MM-DD)
	"2006-01-02",
	"2006/01/02",

	// American (MM/DD/YYYY variants)
	"01/02/2006",
	"1/2/2006",

	// European (DD-MM-YYYY variants)
	"02-01-2006",
	"02.01.2006",

	// With time
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate attempts a calendar-date parse in UTC. Empty or
// unparseable input yields nil (absent), never a zero date.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, raw, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}
