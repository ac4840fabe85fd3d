// Package mortgage models individual mortgage scenarios and the summary
// metrics derived from their amortization schedules.
package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-compare/pkg/amortization"
	"github.com/iwvelando/mortgage-compare/pkg/constants"
	"github.com/iwvelando/mortgage-compare/pkg/format"
	"github.com/iwvelando/mortgage-compare/pkg/mathutil"
	"go.uber.org/zap"
)

// PayoffReason distinguishes how a loan reaches the end of its life.
type PayoffReason string

const (
	// NaturalPayoff means the loan amortized to zero through payments.
	NaturalPayoff PayoffReason = "Payments"

	// SoldOrRefinanced means the payoff horizon arrived before the loan
	// amortized, i.e. the borrower sells or refinances with a balance left.
	SoldOrRefinanced PayoffReason = "Sale"
)

// Parameters holds the raw inputs for one loan scenario. Pointer fields are
// optional; nil means unset, which is distinct from an explicit zero and
// drives the resolution and defaulting rules in New.
type Parameters struct {
	Label                 string
	TermMonths            int
	AnnualRatePercent     float64
	SalePrice             *float64
	DownPaymentDollars    *float64
	DownPaymentPercent    *float64
	LoanAmount            *float64
	AnnualInsurance       float64
	AnnualTaxes           float64
	ExtraMonthlyPrincipal float64
	PayoffHorizonMonths   *int
	ClosingCosts          float64
	MonthlyPmiAmount      float64
	PmiCancelLtvPercent   *float64
}

// ValidationError indicates loan parameters that cannot be resolved into a
// consistent scenario. New never returns a partially-constructed Loan
// alongside one of these.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid loan parameters: %s: %s", e.Field, e.Reason)
}

// Loan is a fully-resolved mortgage scenario with its schedules and derived
// metrics. Construct with New; a Loan is never mutated afterwards, so any
// parameter change means building a fresh instance.
type Loan struct {
	Label                 string
	TermMonths            int
	AnnualRatePercent     float64
	SalePrice             float64
	DownPaymentDollars    float64
	DownPaymentPercent    float64
	LoanAmount            float64
	AnnualInsurance       float64
	AnnualTaxes           float64
	ExtraMonthlyPrincipal float64
	ClosingCosts          float64
	MonthlyPmiAmount      float64
	PmiCancelLtv          float64

	PeriodicRate          float64
	PayoffHorizon         int
	BasePayment           float64
	PitiPayment           float64
	ActualPayment         float64
	TotalMonthlyPayment   float64
	BaselineSchedule      []amortization.Row
	Schedule              []amortization.Row
	InterestPaidBase      float64
	InterestPaid          float64
	InterestSaved         float64
	PmiDropMonth          int
	PmiTotalCost          float64
	FinanceCosts          float64
	MonthsToNaturalPayoff int
	PayoffMonth           int
	BalanceAtPayoff       float64
	Reason                PayoffReason
	CashToClose           float64
}

// New validates and resolves params, then computes the baseline and actual
// amortization schedules and every derived metric.
//
// Resolution priority: a supplied loan amount is authoritative and the sale
// price is derived as loan amount plus down payment; a sale price supplied
// alongside it must agree to the cent. Without a loan amount the sale price
// is required and the loan amount is derived from it.
func New(logger *zap.Logger, params Parameters) (*Loan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := checkRanges(params); err != nil {
		return nil, err
	}

	l := &Loan{
		Label:                 params.Label,
		TermMonths:            params.TermMonths,
		AnnualRatePercent:     params.AnnualRatePercent,
		AnnualInsurance:       params.AnnualInsurance,
		AnnualTaxes:           params.AnnualTaxes,
		ExtraMonthlyPrincipal: params.ExtraMonthlyPrincipal,
		ClosingCosts:          params.ClosingCosts,
		MonthlyPmiAmount:      params.MonthlyPmiAmount,
		PmiCancelLtv:          constants.DefaultPmiCancelLtv,
	}
	if params.PmiCancelLtvPercent != nil {
		l.PmiCancelLtv = *params.PmiCancelLtvPercent
	}

	if err := l.resolveAmounts(params); err != nil {
		return nil, err
	}

	if l.MonthlyPmiAmount > 0 && l.SalePrice < 1 {
		return nil, &ValidationError{Field: "salePrice", Reason: "required to compute LTV when PMI is set"}
	}

	l.compute(params)

	logger.Debug(fmt.Sprintf("resolved loan %s: amount %.2f over %d months at %.3f%%",
		l.Label, l.LoanAmount, l.TermMonths, l.AnnualRatePercent),
		zap.String("op", "mortgage.New"),
	)

	return l, nil
}

func checkRanges(params Parameters) error {
	if params.TermMonths < 1 {
		return &ValidationError{Field: "termMonths", Reason: "must be at least 1"}
	}
	if params.AnnualRatePercent < 0 {
		return &ValidationError{Field: "annualRatePercent", Reason: "must not be negative"}
	}
	if params.AnnualInsurance < 0 {
		return &ValidationError{Field: "annualInsurance", Reason: "must not be negative"}
	}
	if params.AnnualTaxes < 0 {
		return &ValidationError{Field: "annualTaxes", Reason: "must not be negative"}
	}
	if params.ExtraMonthlyPrincipal < 0 {
		return &ValidationError{Field: "extraMonthlyPrincipal", Reason: "must not be negative"}
	}
	if params.MonthlyPmiAmount < 0 {
		return &ValidationError{Field: "monthlyPmiAmount", Reason: "must not be negative"}
	}
	if params.DownPaymentDollars != nil && params.DownPaymentPercent != nil {
		return &ValidationError{Field: "downPayment", Reason: "supply dollars or percent, not both"}
	}
	if params.DownPaymentDollars != nil && *params.DownPaymentDollars < 0 {
		return &ValidationError{Field: "downPaymentDollars", Reason: "must not be negative"}
	}
	if params.DownPaymentPercent != nil && *params.DownPaymentPercent < 0 {
		return &ValidationError{Field: "downPaymentPercent", Reason: "must not be negative"}
	}
	if params.PmiCancelLtvPercent != nil && *params.PmiCancelLtvPercent < 0 {
		return &ValidationError{Field: "pmiCancelLtvPercent", Reason: "must not be negative"}
	}
	if params.PayoffHorizonMonths != nil && *params.PayoffHorizonMonths < 1 {
		return &ValidationError{Field: "payoffHorizonMonths", Reason: "must be at least 1 when supplied"}
	}
	return nil
}

func (l *Loan) resolveAmounts(params Parameters) error {
	switch {
	case params.LoanAmount != nil:
		if *params.LoanAmount < 1 {
			return &ValidationError{Field: "loanAmount", Reason: "must be at least 1 when supplied"}
		}
		l.LoanAmount = *params.LoanAmount

		switch {
		case params.DownPaymentDollars != nil:
			l.DownPaymentDollars = *params.DownPaymentDollars
		case params.DownPaymentPercent != nil:
			pct := *params.DownPaymentPercent
			if pct >= constants.PercentageMultiplier {
				return &ValidationError{Field: "downPaymentPercent", Reason: "must be below 100 when paired with a loan amount"}
			}
			// The sale price is loanAmount + dollars, and dollars is pct% of
			// that sale price; solving gives dollars directly.
			l.DownPaymentDollars = l.LoanAmount * pct / (constants.PercentageMultiplier - pct)
		}

		l.SalePrice = l.LoanAmount + l.DownPaymentDollars
		if params.SalePrice != nil && mathutil.Round(*params.SalePrice-l.SalePrice) != 0 {
			return &ValidationError{
				Field: "salePrice",
				Reason: fmt.Sprintf("disagrees with loan amount plus down payment (%.2f != %.2f)",
					*params.SalePrice, l.SalePrice),
			}
		}

	case params.SalePrice != nil:
		if *params.SalePrice < 1 {
			return &ValidationError{Field: "salePrice", Reason: "must be at least 1 when supplied"}
		}
		l.SalePrice = *params.SalePrice

		switch {
		case params.DownPaymentDollars != nil:
			l.DownPaymentDollars = *params.DownPaymentDollars
		case params.DownPaymentPercent != nil:
			l.DownPaymentDollars = mathutil.ApplyPercentage(l.SalePrice, *params.DownPaymentPercent)
		}

		l.LoanAmount = l.SalePrice - l.DownPaymentDollars
		if l.LoanAmount < 1 {
			return &ValidationError{Field: "downPayment", Reason: "leaves no loan to amortize"}
		}

	default:
		return &ValidationError{Field: "loanAmount", Reason: "either loanAmount or salePrice of at least 1 is required"}
	}

	l.DownPaymentPercent = l.DownPaymentDollars / l.SalePrice * constants.PercentageMultiplier
	return nil
}

func (l *Loan) compute(params Parameters) {
	l.PeriodicRate = l.AnnualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)

	l.PayoffHorizon = l.TermMonths
	if params.PayoffHorizonMonths != nil {
		l.PayoffHorizon = *params.PayoffHorizonMonths
	}

	l.BasePayment = amortization.ContractualPayment(l.LoanAmount, l.PeriodicRate, l.TermMonths)
	l.PitiPayment = l.BasePayment + l.AnnualInsurance/constants.MonthsPerYear + l.AnnualTaxes/constants.MonthsPerYear
	l.ActualPayment = l.BasePayment + l.ExtraMonthlyPrincipal
	l.TotalMonthlyPayment = l.PitiPayment + l.ExtraMonthlyPrincipal + l.MonthlyPmiAmount

	l.BaselineSchedule = amortization.BuildSchedule(l.TermMonths, l.LoanAmount, l.PeriodicRate, l.BasePayment)
	l.Schedule = amortization.BuildSchedule(l.TermMonths, l.LoanAmount, l.PeriodicRate, l.ActualPayment)

	l.InterestPaidBase = amortization.InterestPaidThrough(l.BaselineSchedule, l.PayoffHorizon)
	l.InterestPaid = amortization.InterestPaidThrough(l.Schedule, l.PayoffHorizon)
	l.InterestSaved = l.InterestPaidBase - l.InterestPaid

	l.PmiDropMonth = l.pmiDropMonth()
	l.PmiTotalCost = l.MonthlyPmiAmount * float64(min(l.PmiDropMonth, l.TermMonths))
	l.FinanceCosts = l.InterestPaid + l.ClosingCosts + l.PmiTotalCost

	l.MonthsToNaturalPayoff = amortization.LastMonthWithBalance(l.Schedule)
	l.PayoffMonth = l.MonthsToNaturalPayoff
	l.BalanceAtPayoff = 0
	l.Reason = NaturalPayoff
	if l.MonthsToNaturalPayoff > l.PayoffHorizon {
		l.PayoffMonth = l.PayoffHorizon
		l.BalanceAtPayoff = amortization.BalanceAt(l.Schedule, l.PayoffHorizon)
		l.Reason = SoldOrRefinanced
	}

	l.CashToClose = l.DownPaymentDollars + l.ClosingCosts
}

// pmiDropMonth returns 0 when the loan carries no PMI, the first month whose
// loan-to-value falls below the cancellation threshold, or TermMonths+1 as
// the sentinel for PMI that never cancels within the schedule.
func (l *Loan) pmiDropMonth() int {
	if l.MonthlyPmiAmount <= 0 {
		return 0
	}

	threshold := l.PmiCancelLtv / constants.PercentageMultiplier
	for _, row := range l.Schedule {
		if row.Balance/l.SalePrice < threshold {
			return row.Month
		}
	}
	return l.TermMonths + 1
}

// SummaryEntry is one labeled, display-formatted summary metric.
type SummaryEntry struct {
	Label string
	Value string
}

// Summary projects the loan's derived metrics into an ordered list of
// labeled, formatted values ready for tabular display. Every Loan produces
// the same labels in the same order, which is what lets Compare concatenate
// summaries column-wise.
func (l *Loan) Summary() []SummaryEntry {
	return []SummaryEntry{
		{Label: "Loan Amount", Value: format.WholeCurrency(l.LoanAmount)},
		{Label: "Down Payment", Value: format.WholeCurrency(l.DownPaymentDollars)},
		{Label: "Term [months]", Value: fmt.Sprintf("%d", l.TermMonths)},
		{Label: "Rate [%]", Value: fmt.Sprintf("%.3f", l.AnnualRatePercent)},
		{Label: "Payment", Value: format.WholeCurrency(l.BasePayment)},
		{Label: "PITI Payment", Value: format.WholeCurrency(l.PitiPayment)},
		{Label: "PMI Amount", Value: format.WholeCurrency(l.MonthlyPmiAmount)},
		{Label: "Additional Payment", Value: format.WholeCurrency(l.ExtraMonthlyPrincipal)},
		{Label: "Total Payment", Value: format.WholeCurrency(l.TotalMonthlyPayment)},
		{Label: "PMI Drops Off At Month", Value: fmt.Sprintf("%d", l.PmiDropMonth)},
		{Label: "Payoff [months]", Value: fmt.Sprintf("%d", l.PayoffMonth)},
		{Label: "Balance at Payoff", Value: format.WholeCurrency(l.BalanceAtPayoff)},
		{Label: "Payoff Reason", Value: string(l.Reason)},
		{Label: "Interest Paid", Value: format.WholeCurrency(l.InterestPaid)},
		{Label: "Interest Saved from Added Payments", Value: format.WholeCurrency(l.InterestSaved)},
		{Label: "Closing Costs", Value: format.WholeCurrency(l.ClosingCosts)},
		{Label: "Cash to Close", Value: format.WholeCurrency(l.CashToClose)},
		{Label: "Total Finance Costs", Value: format.WholeCurrency(l.FinanceCosts)},
	}
}

// Warnings reports advisory findings that do not prevent computation.
func (l *Loan) Warnings() []string {
	var warnings []string

	if l.PayoffHorizon > l.TermMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' payoff horizon %d extends past the %d-month term",
			l.Label, l.PayoffHorizon, l.TermMonths))
	}
	if l.TermMonths > constants.MaxReasonableTermMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' term %d exceeds %d months",
			l.Label, l.TermMonths, constants.MaxReasonableTermMonths))
	}
	if l.AnnualRatePercent > constants.HighRateWarningPercent {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' rate %.3f%% is unusually high",
			l.Label, l.AnnualRatePercent))
	}
	if l.MonthlyPmiAmount > 0 && l.PmiDropMonth > l.TermMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' PMI never cancels within the %d-month schedule",
			l.Label, l.TermMonths))
	}

	return warnings
}
