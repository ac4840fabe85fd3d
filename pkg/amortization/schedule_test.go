package amortization

import (
	"math"
	"testing"
)

func TestContractualPayment(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		periodicRate float64
		termMonths   int
		expected     float64
		tolerance    float64
	}{
		{
			name:         "Standard 30-year mortgage at 3 percent",
			principal:    240000,
			periodicRate: 0.0025, // 3.0% annual
			termMonths:   360,
			expected:     1011.85,
			tolerance:    0.01,
		},
		{
			name:         "10-year loan at 5 percent",
			principal:    100000,
			periodicRate: 0.05 / 12,
			termMonths:   120,
			expected:     1060.66,
			tolerance:    0.01,
		},
		{
			name:         "Zero rate loan divides principal by term",
			principal:    12000,
			periodicRate: 0,
			termMonths:   60,
			expected:     200.0,
			tolerance:    0.001,
		},
		{
			name:         "High rate short term",
			principal:    10000,
			periodicRate: 0.18 / 12,
			termMonths:   36,
			expected:     361.52,
			tolerance:    0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ContractualPayment(tt.principal, tt.periodicRate, tt.termMonths)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("ContractualPayment() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestBuildScheduleLength(t *testing.T) {
	rows := BuildSchedule(360, 240000, 0.0025, 1011.85)
	if len(rows) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(rows))
	}
	if rows[0].Month != 1 || rows[359].Month != 360 {
		t.Errorf("expected months 1..360, got %d..%d", rows[0].Month, rows[359].Month)
	}
}

func TestBuildSchedulePrincipalSumsToLoanAmount(t *testing.T) {
	principal := 240000.0
	payment := ContractualPayment(principal, 0.0025, 360)
	rows := BuildSchedule(360, principal, 0.0025, payment)

	total := 0.0
	for _, row := range rows {
		total += row.Principal
	}

	// The $1 zero-clamp can swallow up to a dollar of residue.
	if math.Abs(total-principal) > 1.0 {
		t.Errorf("sum of principal paid = %.2f, expected ~%.2f", total, principal)
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("expected zero final balance, got %.6f", rows[len(rows)-1].Balance)
	}
}

func TestBuildScheduleBalanceNeverIncreases(t *testing.T) {
	payment := ContractualPayment(100000, 0.05/12, 120)
	rows := BuildSchedule(120, 100000, 0.05/12, payment+200)

	for i := 1; i < len(rows); i++ {
		if rows[i].Balance > rows[i-1].Balance {
			t.Fatalf("balance increased at month %d: %.6f > %.6f",
				rows[i].Month, rows[i].Balance, rows[i-1].Balance)
		}
	}
}

func TestBuildScheduleZeroRateHasNoInterest(t *testing.T) {
	rows := BuildSchedule(60, 12000, 0, 200)
	for _, row := range rows {
		if row.Interest != 0 {
			t.Fatalf("month %d has nonzero interest %.6f on a zero-rate loan", row.Month, row.Interest)
		}
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("expected zero final balance, got %.6f", rows[len(rows)-1].Balance)
	}
}

func TestBuildScheduleExtraPaymentPaysOffEarly(t *testing.T) {
	payment := ContractualPayment(100000, 0.05/12, 120)
	rows := BuildSchedule(120, 100000, 0.05/12, payment+200)

	last := LastMonthWithBalance(rows)
	if last >= 120 {
		t.Fatalf("expected early payoff, balance still positive at month %d", last)
	}

	// Rows past payoff must be all zeros; the month that absorbs the clamped
	// residue may carry a sub-dollar principal amount.
	for _, row := range rows[last+1:] {
		if row.Balance != 0 {
			t.Errorf("month %d balance = %.6f after payoff, expected 0", row.Month, row.Balance)
		}
		if row.Principal > 1.0 {
			t.Errorf("month %d principal = %.6f after payoff, expected ~0", row.Month, row.Principal)
		}
	}
}

func TestBuildScheduleNegativeAmortization(t *testing.T) {
	// Payment below the interest charge: from month 2 on, principal clamps at
	// zero and the balance stops decreasing. Month 1 applies the raw formula.
	rows := BuildSchedule(12, 100000, 0.01, 500)

	firstBalance := rows[0].Balance
	if firstBalance <= 100000 {
		t.Fatalf("month 1 balance = %.6f, expected growth when payment < interest", firstBalance)
	}

	for _, row := range rows[1:] {
		if row.Principal != 0 {
			t.Fatalf("month %d principal = %.6f, expected 0 when payment < interest", row.Month, row.Principal)
		}
		if row.Balance != firstBalance {
			t.Fatalf("month %d balance = %.6f, expected unchanged %.6f", row.Month, row.Balance, firstBalance)
		}
	}
}

func TestBuildScheduleDeterministic(t *testing.T) {
	a := BuildSchedule(360, 240000, 0.0025, 1200)
	b := BuildSchedule(360, 240000, 0.0025, 1200)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("schedules diverge at month %d: %+v vs %+v", a[i].Month, a[i], b[i])
		}
	}
}

func TestInterestPaidThrough(t *testing.T) {
	rows := []Row{
		{Month: 1, Interest: 100},
		{Month: 2, Interest: 90},
		{Month: 3, Interest: 80},
	}

	tests := []struct {
		name     string
		horizon  int
		expected float64
	}{
		{name: "Partial horizon", horizon: 2, expected: 190},
		{name: "Full horizon", horizon: 3, expected: 270},
		{name: "Horizon past schedule", horizon: 10, expected: 270},
		{name: "Zero horizon", horizon: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InterestPaidThrough(rows, tt.horizon)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("InterestPaidThrough() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestBalanceAt(t *testing.T) {
	rows := []Row{
		{Month: 1, Balance: 900},
		{Month: 2, Balance: 800},
	}

	if got := BalanceAt(rows, 1); got != 900 {
		t.Errorf("BalanceAt(1) = %.2f, expected 900", got)
	}
	if got := BalanceAt(rows, 2); got != 800 {
		t.Errorf("BalanceAt(2) = %.2f, expected 800", got)
	}
	if got := BalanceAt(rows, 5); got != 0 {
		t.Errorf("BalanceAt(5) = %.2f, expected 0 past schedule end", got)
	}
	if got := BalanceAt(rows, 0); got != 0 {
		t.Errorf("BalanceAt(0) = %.2f, expected 0", got)
	}
}
