package risk

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name        string
		outstanding float64
		isOverdue   bool
		daysOverdue int
		expected    Tier
	}{
		{"fully repaid", 0, false, 0, Low},
		{"small balance", 100, false, 0, Medium},
		{"overdue only", 0, true, 5, Medium},
		{"just above threshold", 25001, false, 0, High},
		{"exactly at threshold", 25000, false, 0, Medium},
		{"long overdue", 500, true, 31, High},
		{"overdue exactly 30 days", 500, true, 30, Medium},
		{"long overdue no balance", 0, true, 45, High},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Classify(tc.outstanding, tc.isOverdue, tc.daysOverdue)
			if got != tc.expected {
				t.Errorf("Classify(%v, %v, %d) = %s, want %s",
					tc.outstanding, tc.isOverdue, tc.daysOverdue, got, tc.expected)
			}
		})
	}
}

func TestOverdue_Boundary(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	// Due today: not overdue, today > dueDate is false on equality.
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	days, overdue := Overdue(&due, 100, today)
	if days != 0 || overdue {
		t.Errorf("due today: got (%d, %v), want (0, false)", days, overdue)
	}

	// Due yesterday: one whole day overdue.
	due = time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	days, overdue = Overdue(&due, 100, today)
	if days != 1 || !overdue {
		t.Errorf("due yesterday: got (%d, %v), want (1, true)", days, overdue)
	}
}

func TestOverdue_RequiresOutstanding(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	days, overdue := Overdue(&due, 0, today)
	if days != 0 || overdue {
		t.Errorf("zero outstanding: got (%d, %v), want (0, false)", days, overdue)
	}
}

func TestOverdue_AbsentDueDate(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	days, overdue := Overdue(nil, 100, today)
	if days != 0 || overdue {
		t.Errorf("absent due date: got (%d, %v), want (0, false)", days, overdue)
	}
}

func TestOverdue_PartialDayFloor(t *testing.T) {
	// Half a day past due floors to zero whole days: not overdue yet.
	reference := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	days, overdue := Overdue(&due, 100, reference)
	if days != 0 || overdue {
		t.Errorf("half day: got (%d, %v), want (0, false)", days, overdue)
	}
}

func TestTierRankOrdering(t *testing.T) {
	if !(Low.Rank() < Medium.Rank() && Medium.Rank() < High.Rank()) {
		t.Errorf("rank ordering broken: %d %d %d", Low.Rank(), Medium.Rank(), High.Rank())
	}
}

func TestTierBadge(t *testing.T) {
	if Low.Badge() != "Low" || Medium.Badge() != "Medium" || High.Badge() != "High" {
		t.Errorf("unexpected badges: %s %s %s", Low.Badge(), Medium.Badge(), High.Badge())
	}
}
