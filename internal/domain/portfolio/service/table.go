package service

// TableRow is one ranked-client row projected for display: amounts are
// formatted in the client's own currency, the latest due date is ISO
// formatted or "-" when absent.
type TableRow struct {
	Name          string `json:"name"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	LoanAmount    string `json:"loanAmount"`
	Outstanding   string `json:"outstanding"`
	LatestDueDate string `json:"latestDueDate"`
	DaysOverdue   int    `json:"daysOverdue"`
	RiskBadge     string `json:"riskBadge"`
}

// TableRows projects the ranked clients of an analysis into display
// rows, preserving the ranking order.
func TableRows(a *Analysis) []TableRow {
	rows := make([]TableRow, 0, len(a.RankedClients))
	for _, c := range a.RankedClients {
		dueDate := "-"
		if c.LatestDueDate != nil {
			dueDate = c.LatestDueDate.Format("2006-01-02")
		}
		rows = append(rows, TableRow{
			Name:          c.ClientName,
			Country:       c.Country,
			Currency:      c.Currency,
			LoanAmount:    FormatAmount(c.LoanAmount, c.Currency),
			Outstanding:   FormatAmount(c.Outstanding, c.Currency),
			LatestDueDate: dueDate,
			DaysOverdue:   c.MaxDaysOverdue,
			RiskBadge:     c.Risk.Badge(),
		})
	}
	return rows
}
