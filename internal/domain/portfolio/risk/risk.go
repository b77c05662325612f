// Package risk implements the loan risk tier policy and overdue
// computation. The thresholds are absolute and currency-agnostic: a
// client billed in a low-value currency unit is classified against the
// same numbers as one billed in a high-value unit. Known limitation,
// kept until a currency-aware policy is decided.
package risk

import "time"

// Tier is the ordinal risk classification of a client or row.
type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

// Rank returns the ordinal rank of the tier (low=1, medium=2, high=3).
func (t Tier) Rank() int {
	switch t {
	case High:
		return 3
	case Medium:
		return 2
	default:
		return 1
	}
}

// Badge returns the display text for the tier.
func (t Tier) Badge() string {
	switch t {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// Policy holds the classification thresholds.
type Policy struct {
	HighOutstanding float64
	HighOverdueDays int
}

// DefaultPolicy returns the canonical thresholds.
func DefaultPolicy() Policy {
	return Policy{
		HighOutstanding: 25000,
		HighOverdueDays: 30,
	}
}

// Classify maps an outstanding balance and overdue state to a tier.
// Both comparisons are strict: outstanding exactly at the threshold is
// not high risk.
func (p Policy) Classify(outstanding float64, isOverdue bool, daysOverdue int) Tier {
	if (isOverdue && daysOverdue > p.HighOverdueDays) || outstanding > p.HighOutstanding {
		return High
	}
	if outstanding > 0 || isOverdue {
		return Medium
	}
	return Low
}

// Overdue computes the overdue state of one row against the reference
// instant of the analysis run. A loan is overdue only when a due date
// is present, the outstanding balance is positive, and the reference
// instant is strictly after the due date by at least one whole day.
func Overdue(dueDate *time.Time, outstanding float64, reference time.Time) (daysOverdue int, isOverdue bool) {
	if dueDate == nil || outstanding <= 0 || !reference.After(*dueDate) {
		return 0, false
	}
	daysOverdue = int(reference.Sub(*dueDate).Hours() / 24)
	if daysOverdue < 0 {
		daysOverdue = 0
	}
	return daysOverdue, daysOverdue > 0
}
