package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewBudgetProgress(t *testing.T) {
	tests := []struct {
		name               string
		amount             string
		spent              string
		expectedRemaining  string
		expectedPercentage string
		expectedStatus     BudgetStatus
	}{
		{
			name:               "nothing spent",
			amount:             "100",
			spent:              "0",
			expectedRemaining:  "100.00",
			expectedPercentage: "0.00",
			expectedStatus:     BudgetStatusGood,
		},
		{
			name:               "below warning threshold",
			amount:             "100",
			spent:              "79.99",
			expectedRemaining:  "20.01",
			expectedPercentage: "79.99",
			expectedStatus:     BudgetStatusGood,
		},
		{
			name:               "exactly at warning threshold",
			amount:             "100",
			spent:              "80",
			expectedRemaining:  "20.00",
			expectedPercentage: "80.00",
			expectedStatus:     BudgetStatusWarning,
		},
		{
			name:               "exactly at limit",
			amount:             "250",
			spent:              "250",
			expectedRemaining:  "0.00",
			expectedPercentage: "100.00",
			expectedStatus:     BudgetStatusExceeded,
		},
		{
			name:               "over the limit",
			amount:             "100",
			spent:              "110",
			expectedRemaining:  "-10.00",
			expectedPercentage: "110.00",
			expectedStatus:     BudgetStatusExceeded,
		},
		{
			name:               "repeating fraction",
			amount:             "300",
			spent:              "100",
			expectedRemaining:  "200.00",
			expectedPercentage: "33.33",
			expectedStatus:     BudgetStatusGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := NewBudgetProgress(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.spent))

			if got := progress.Remaining.StringFixed(2); got != tt.expectedRemaining {
				t.Errorf("Remaining = %s, want %s", got, tt.expectedRemaining)
			}
			if got := progress.Percentage.StringFixed(2); got != tt.expectedPercentage {
				t.Errorf("Percentage = %s, want %s", got, tt.expectedPercentage)
			}
			if progress.Status != tt.expectedStatus {
				t.Errorf("Status = %s, want %s", progress.Status, tt.expectedStatus)
			}
		})
	}
}

func TestNewBudgetProgress_ZeroAmount(t *testing.T) {
	progress := NewBudgetProgress(decimal.Zero, decimal.NewFromInt(5))

	if !progress.Percentage.IsZero() {
		t.Errorf("expected zero percentage for a zero budget, got %s", progress.Percentage)
	}
}

func TestBudget_Overlaps(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	budget := NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(100), BudgetPeriodMonthly, day("2024-01-01"), day("2024-01-31"))

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{"same window", "2024-01-01", "2024-01-31", true},
		{"touches last day", "2024-01-31", "2024-02-29", true},
		{"touches first day", "2023-12-01", "2024-01-01", true},
		{"contained", "2024-01-10", "2024-01-12", true},
		{"contains", "2023-12-01", "2024-03-01", true},
		{"adjacent after", "2024-02-01", "2024-02-29", false},
		{"adjacent before", "2023-12-01", "2023-12-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := budget.Overlaps(day(tt.start), day(tt.end)); got != tt.expected {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestNewBudget_TruncatesDates(t *testing.T) {
	start := time.Date(2024, 5, 1, 18, 30, 0, 0, time.FixedZone("X", -3*3600))
	end := time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)

	budget := NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(10), BudgetPeriodMonthly, start, end)

	if !budget.StartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start date %s", budget.StartDate)
	}
	if !budget.EndDate.Equal(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end date %s", budget.EndDate)
	}
}
