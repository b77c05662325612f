package normalizer

import (
	"testing"

	"github.com/mvandrade/loanlens/internal/domain/portfolio/tokenizer"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"100", 100},
		{"1234.56", 1234.56},
		{"  42.5  ", 42.5},
		{"-10", -10},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
	}

	for _, tc := range tests {
		if got := ParseAmount(tc.input); got != tc.expected {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string // YYYY-MM-DD, or "" for absent
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"15-03-2024", "2024-03-15"},
		{"2024-03-15 10:30:00", "2024-03-15"},
		{"", ""},
		{"not-a-date", ""},
	}

	for _, tc := range tests {
		got := ParseDate(tc.input)
		if tc.expected == "" {
			if got != nil {
				t.Errorf("ParseDate(%q) = %v, want absent", tc.input, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseDate(%q) = absent, want %s", tc.input, tc.expected)
			continue
		}
		if got.Format("2006-01-02") != tc.expected {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.input, got.Format("2006-01-02"), tc.expected)
		}
	}
}

func TestNormalizeRow_Defaults(t *testing.T) {
	row := tokenizer.Row{ColClientID: "C1"}

	rec, ok := NormalizeRow(row, "USD")
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if rec.ClientName != "C1" {
		t.Errorf("ClientName = %q, want fallback to id", rec.ClientName)
	}
	if rec.Country != "-" {
		t.Errorf("Country = %q, want %q", rec.Country, "-")
	}
	if rec.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", rec.Currency)
	}
	if rec.LoanAmount != 0 || rec.PaidAmount != 0 {
		t.Errorf("amounts = %v/%v, want 0/0", rec.LoanAmount, rec.PaidAmount)
	}
	if rec.DueDate != nil || rec.LastPaymentDate != nil {
		t.Error("expected absent dates")
	}
}

func TestNormalizeRow_IDFallbackToName(t *testing.T) {
	row := tokenizer.Row{ColClientName: "Acme"}

	rec, ok := NormalizeRow(row, "USD")
	if !ok {
		t.Fatal("expected row to normalize via name fallback")
	}
	if rec.ClientID != "Acme" {
		t.Errorf("ClientID = %q, want Acme", rec.ClientID)
	}
}

func TestNormalizeRow_MissingIdentifier(t *testing.T) {
	row := tokenizer.Row{ColCountry: "Spain", ColLoanAmount: "100"}

	if _, ok := NormalizeRow(row, "USD"); ok {
		t.Error("expected row without identifier to be dropped")
	}
}

func TestNormalize_SkipsUnidentifiedRows(t *testing.T) {
	doc := &tokenizer.Document{
		Headers: []string{ColClientID, ColLoanAmount},
		Rows: []tokenizer.Row{
			{ColClientID: "C1", ColLoanAmount: "100"},
			{ColClientID: "", ColLoanAmount: "200"},
			{ColClientID: "C2", ColLoanAmount: "bad"},
		},
	}

	records := Normalize(doc, "EUR")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].LoanAmount != 100 {
		t.Errorf("LoanAmount = %v, want 100", records[0].LoanAmount)
	}
	if records[1].LoanAmount != 0 {
		t.Errorf("unparseable LoanAmount = %v, want 0", records[1].LoanAmount)
	}
	if records[1].Currency != "EUR" {
		t.Errorf("Currency = %q, want configured fallback EUR", records[1].Currency)
	}
}
