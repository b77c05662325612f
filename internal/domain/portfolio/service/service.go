// Package service implements the loan portfolio analysis pipeline:
// tokenized CSV rows are folded into per-client aggregates, classified
// for risk, and summarized into portfolio KPIs.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mvandrade/loanlens/internal/domain/portfolio/normalizer"
	"github.com/mvandrade/loanlens/internal/domain/portfolio/risk"
	"github.com/mvandrade/loanlens/internal/domain/portfolio/tokenizer"
	"github.com/mvandrade/loanlens/pkg/observability"
)

// ErrNoValidRows is returned when an upload is empty, header-only, or
// contains no row with a usable client identifier.
var ErrNoValidRows = errors.New("no valid rows found in the file")

// ClientAggregate is the per-client running total folded from all CSV
// rows sharing a client identifier. Identity fields keep the
// first-seen values; sums accumulate additively across rows.
type ClientAggregate struct {
	ClientID        string     `json:"clientId"`
	ClientName      string     `json:"clientName"`
	Country         string     `json:"country"`
	Currency        string     `json:"currency"`
	LoanAmount      float64    `json:"loanAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	Outstanding     float64    `json:"outstanding"`
	MaxDaysOverdue  int        `json:"maxDaysOverdue"`
	IsOverdue       bool       `json:"isOverdue"`
	Risk            risk.Tier  `json:"risk"`
	LatestDueDate   *time.Time `json:"latestDueDate,omitempty"`
	LastPaymentDate *time.Time `json:"lastPaymentDate,omitempty"`
}

// Analysis is the immutable result of one CSV analysis run.
type Analysis struct {
	ID                  uuid.UUID          `json:"id"`
	ReferenceTime       time.Time          `json:"referenceTime"`
	TotalClients        int                `json:"totalClients"`
	TotalLoan           float64            `json:"totalLoan"`
	TotalOutstanding    float64            `json:"totalOutstanding"`
	OverdueClientsCount int                `json:"overdueClientsCount"`
	OverdueAmount       float64            `json:"overdueAmount"`
	MainCurrency        string             `json:"mainCurrency"`
	RankedClients       []*ClientAggregate `json:"rankedClients"`
}

// AnalysisService runs the CSV-to-analysis pipeline. It is stateless
// across calls; concurrent invocations on different inputs are safe.
type AnalysisService struct {
	logger          *slog.Logger
	tracer          trace.Tracer
	policy          risk.Policy
	defaultCurrency string
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(policy risk.Policy, defaultCurrency string, logger *slog.Logger) *AnalysisService {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &AnalysisService{
		logger:          logger,
		tracer:          otel.Tracer("loanlens/portfolio"),
		policy:          policy,
		defaultCurrency: defaultCurrency,
	}
}

// Policy returns the risk policy the service classifies with.
func (s *AnalysisService) Policy() risk.Policy {
	return s.policy
}

// Analyze runs one complete pass over a raw CSV blob and returns the
// portfolio analysis. The reference instant is used for every overdue
// computation in the run, so all rows see one consistent "today".
func (s *AnalysisService) Analyze(ctx context.Context, rawText string, reference time.Time) (*Analysis, error) {
	_, span := s.tracer.Start(ctx, "portfolio.Analyze")
	defer span.End()

	doc, err := tokenizer.Tokenize(rawText)
	if err != nil {
		return nil, ErrNoValidRows
	}

	records := normalizer.Normalize(doc, s.defaultCurrency)
	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	span.SetAttributes(attribute.Int("portfolio.rows", len(records)))
	observability.RowsAnalyzedTotal.Add(float64(len(records)))

	analysis := s.aggregate(records, reference)
	analysis.ID = uuid.New()
	analysis.ReferenceTime = reference

	observability.AnalysesTotal.Inc()
	s.logger.Info("portfolio analyzed",
		"rows", len(records),
		"clients", analysis.TotalClients,
		"overdue_clients", analysis.OverdueClientsCount,
		"main_currency", analysis.MainCurrency,
	)

	return analysis, nil
}

// aggregate folds normalized rows into per-client aggregates and
// derives the portfolio KPIs.
func (s *AnalysisService) aggregate(records []normalizer.ClientRecord, reference time.Time) *Analysis {
	byID := make(map[string]*ClientAggregate)
	var order []string

	currencyCounts := make(map[string]int)
	var currencyOrder []string

	var totalLoan float64

	for _, rec := range records {
		outstanding := rec.LoanAmount - rec.PaidAmount
		if outstanding < 0 {
			outstanding = 0
		}
		daysOverdue, isOverdue := risk.Overdue(rec.DueDate, outstanding, reference)
		tier := s.policy.Classify(outstanding, isOverdue, daysOverdue)

		totalLoan += rec.LoanAmount
		if _, seen := currencyCounts[rec.Currency]; !seen {
			currencyOrder = append(currencyOrder, rec.Currency)
		}
		currencyCounts[rec.Currency]++

		agg, ok := byID[rec.ClientID]
		if !ok {
			agg = &ClientAggregate{
				ClientID:        rec.ClientID,
				ClientName:      rec.ClientName,
				Country:         rec.Country,
				Currency:        rec.Currency,
				Risk:            risk.Low,
				LastPaymentDate: rec.LastPaymentDate,
			}
			byID[rec.ClientID] = agg
			order = append(order, rec.ClientID)
		}

		agg.LoanAmount += rec.LoanAmount
		agg.PaidAmount += rec.PaidAmount
		agg.Outstanding += outstanding
		if daysOverdue > agg.MaxDaysOverdue {
			agg.MaxDaysOverdue = daysOverdue
		}
		if isOverdue {
			agg.IsOverdue = true
		}
		// Monotonic upgrade only, never a downgrade within one run.
		if tier.Rank() > agg.Risk.Rank() {
			agg.Risk = tier
		}
		if rec.DueDate != nil && (agg.LatestDueDate == nil || rec.DueDate.After(*agg.LatestDueDate)) {
			agg.LatestDueDate = rec.DueDate
		}
	}

	analysis := &Analysis{
		TotalClients: len(order),
		TotalLoan:    totalLoan,
		MainCurrency: mainCurrency(currencyCounts, currencyOrder, s.defaultCurrency),
	}

	ranked := make([]*ClientAggregate, 0, len(order))
	for _, id := range order {
		agg := byID[id]
		analysis.TotalOutstanding += agg.Outstanding
		if agg.IsOverdue && agg.Outstanding > 0 {
			analysis.OverdueClientsCount++
			analysis.OverdueAmount += agg.Outstanding
		}
		if agg.Outstanding > 0 || agg.IsOverdue {
			ranked = append(ranked, agg)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Risk.Rank() != ranked[j].Risk.Rank() {
			return ranked[i].Risk.Rank() > ranked[j].Risk.Rank()
		}
		return ranked[i].Outstanding > ranked[j].Outstanding
	})
	analysis.RankedClients = ranked

	return analysis
}

// mainCurrency picks the currency code seen on the most input rows.
// Ties resolve to the code encountered first, which keeps the result
// deterministic for identical input.
func mainCurrency(counts map[string]int, order []string, fallback string) string {
	best := ""
	bestCount := 0
	for _, code := range order {
		if counts[code] > bestCount {
			best = code
			bestCount = counts[code]
		}
	}
	if best == "" {
		return fallback
	}
	return best
}
