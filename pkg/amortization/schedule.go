// Package amortization implements the level-payment amortization recurrence
// that underlies every mortgage scenario.
package amortization

import (
	"math"

	"github.com/iwvelando/mortgage-compare/pkg/constants"
	"github.com/iwvelando/mortgage-compare/pkg/mathutil"
)

// Row holds the interest/principal split and the remaining balance for one
// month of a schedule. Months are 1-indexed.
type Row struct {
	Month     int
	Interest  float64
	Principal float64
	Balance   float64
}

// ContractualPayment returns the level monthly payment for a loan using the
// standard annuity formula. A zero periodic rate is handled explicitly as
// principal divided by term since the closed form divides by zero there.
func ContractualPayment(principal, periodicRate float64, termMonths int) float64 {
	if periodicRate == 0 {
		return principal / float64(termMonths)
	}

	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// BuildSchedule amortizes principal over termMonths at periodicRate with a
// fixed monthlyPayment and returns one Row per month. The function is pure;
// identical inputs always produce identical schedules.
//
// The recurrence caps the final payment so the balance never goes negative,
// holds principal at zero when the payment does not cover interest, and
// clamps a balance within BalanceClampTolerance of zero to exactly zero.
// Once the balance reaches zero the remaining rows carry zeros through the
// end of the term.
func BuildSchedule(termMonths int, principal, periodicRate, monthlyPayment float64) []Row {
	if termMonths < 1 {
		return nil
	}

	rows := make([]Row, 0, termMonths)

	interest := principal * periodicRate
	principalPaid := monthlyPayment - interest
	rows = append(rows, Row{
		Month:     1,
		Interest:  interest,
		Principal: principalPaid,
		Balance:   principal - principalPaid,
	})

	for month := 2; month <= termMonths; month++ {
		previous := rows[len(rows)-1].Balance
		interest = mathutil.Max(0, previous*periodicRate)
		principalPaid = mathutil.Max(0, mathutil.Min(previous-interest, monthlyPayment-interest))
		balance := previous - principalPaid
		if balance <= constants.BalanceClampTolerance {
			balance = 0
		}
		rows = append(rows, Row{
			Month:     month,
			Interest:  interest,
			Principal: principalPaid,
			Balance:   balance,
		})
	}

	return rows
}

// InterestPaidThrough sums the interest column over rows with Month at or
// before horizonMonth.
func InterestPaidThrough(rows []Row, horizonMonth int) float64 {
	total := 0.0
	for _, row := range rows {
		if row.Month > horizonMonth {
			break
		}
		total += row.Interest
	}
	return total
}

// LastMonthWithBalance returns the highest month whose end-of-month balance
// is still positive, or 0 when the first payment already clears the loan.
func LastMonthWithBalance(rows []Row) int {
	last := 0
	for _, row := range rows {
		if row.Balance > 0 {
			last = row.Month
		}
	}
	return last
}

// BalanceAt returns the end-of-month balance for the given month. Months past
// the end of the schedule report zero since the loan has fully amortized.
func BalanceAt(rows []Row, month int) float64 {
	if month < 1 || len(rows) == 0 {
		return 0
	}
	if month > len(rows) {
		return 0
	}
	return rows[month-1].Balance
}
