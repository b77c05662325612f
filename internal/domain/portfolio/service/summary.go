package service

import (
	"fmt"
	"math"
)

// BuildSummary renders the narrative portfolio summary as plain-text
// sentences referencing the KPIs. The closing line depends on how much
// of the portfolio is overdue.
func BuildSummary(a *Analysis) []string {
	overduePct := 0
	if a.TotalClients > 0 {
		overduePct = int(math.Round(float64(a.OverdueClientsCount) / float64(a.TotalClients) * 100))
	}

	lines := []string{
		fmt.Sprintf("You uploaded data for %d clients with a total loan exposure of %s.",
			a.TotalClients, FormatAmount(a.TotalLoan, a.MainCurrency)),
		fmt.Sprintf("Out of this, %s is still outstanding, and %s is currently overdue.",
			FormatAmount(a.TotalOutstanding, a.MainCurrency), FormatAmount(a.OverdueAmount, a.MainCurrency)),
		fmt.Sprintf("%d clients (%d%% of the portfolio) are overdue on at least one loan.",
			a.OverdueClientsCount, overduePct),
	}

	switch {
	case a.OverdueClientsCount == 0 && a.TotalOutstanding == 0:
		lines = append(lines, "All loans appear to be fully repaid. This portfolio looks very low risk at the moment.")
	case a.OverdueAmount > 0 && overduePct >= 30:
		lines = append(lines, "The portfolio shows a concentrated risk with a significant share of overdue clients. Prioritize follow-ups, restructuring or collection strategies for high-risk accounts.")
	case a.OverdueAmount > 0:
		lines = append(lines, "There is some overdue exposure, but it is not yet dominant. Suggest prioritizing clients with high outstanding and over 30 days overdue for immediate action.")
	}

	return lines
}
