package csvinput

import (
	"strings"
	"testing"
)

const header = "name,sale_price,dp_dollars,dp_percent,loan_amount,term,rate,insurance,taxes,add_payment,payoff_months,closing_costs,pmi_amount,pmi_ltv"

func TestParseMapsRows(t *testing.T) {
	input := header + "\n" +
		"Option 1,300000,,20,,360,3.0,1200,3600,0,,4500,0,\n" +
		"Option 2,,,,240000,180,2.5,,,100,60,,75,78\n"

	paramSets, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(paramSets) != 2 {
		t.Fatalf("expected 2 parameter sets, got %d", len(paramSets))
	}

	first := paramSets[0]
	if first.Label != "Option 1" {
		t.Errorf("Label = %q, expected Option 1", first.Label)
	}
	if first.SalePrice == nil || *first.SalePrice != 300000 {
		t.Errorf("SalePrice = %v, expected 300000", first.SalePrice)
	}
	if first.DownPaymentDollars != nil {
		t.Error("blank dp_dollars should stay unset")
	}
	if first.DownPaymentPercent == nil || *first.DownPaymentPercent != 20 {
		t.Errorf("DownPaymentPercent = %v, expected 20", first.DownPaymentPercent)
	}
	if first.LoanAmount != nil {
		t.Error("blank loan_amount should stay unset")
	}
	if first.TermMonths != 360 || first.AnnualRatePercent != 3.0 {
		t.Errorf("term/rate = %d/%.2f, expected 360/3.0", first.TermMonths, first.AnnualRatePercent)
	}
	if first.AnnualInsurance != 1200 || first.AnnualTaxes != 3600 {
		t.Errorf("insurance/taxes = %.0f/%.0f, expected 1200/3600", first.AnnualInsurance, first.AnnualTaxes)
	}
	if first.PayoffHorizonMonths != nil {
		t.Error("blank payoff_months should stay unset")
	}
	if first.ClosingCosts != 4500 {
		t.Errorf("ClosingCosts = %.0f, expected 4500", first.ClosingCosts)
	}
	if first.PmiCancelLtvPercent != nil {
		t.Error("blank pmi_ltv should stay unset so the default applies")
	}

	second := paramSets[1]
	if second.LoanAmount == nil || *second.LoanAmount != 240000 {
		t.Errorf("LoanAmount = %v, expected 240000", second.LoanAmount)
	}
	if second.PayoffHorizonMonths == nil || *second.PayoffHorizonMonths != 60 {
		t.Errorf("PayoffHorizonMonths = %v, expected 60", second.PayoffHorizonMonths)
	}
	if second.MonthlyPmiAmount != 75 {
		t.Errorf("MonthlyPmiAmount = %.0f, expected 75", second.MonthlyPmiAmount)
	}
	if second.PmiCancelLtvPercent == nil || *second.PmiCancelLtvPercent != 78 {
		t.Errorf("PmiCancelLtvPercent = %v, expected 78", second.PmiCancelLtvPercent)
	}
	if second.ExtraMonthlyPrincipal != 100 {
		t.Errorf("ExtraMonthlyPrincipal = %.0f, expected 100", second.ExtraMonthlyPrincipal)
	}
}

func TestParseColumnOrderIsFree(t *testing.T) {
	input := "term,rate,name,sale_price,dp_dollars,dp_percent,loan_amount,insurance,taxes,add_payment,payoff_months,closing_costs,pmi_amount,pmi_ltv\n" +
		"360,3.0,Reordered,300000,,,,,,,,,,\n"

	paramSets, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if paramSets[0].Label != "Reordered" || paramSets[0].TermMonths != 360 {
		t.Errorf("reordered columns mapped incorrectly: %+v", paramSets[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		errorHas string
	}{
		{
			name:     "Empty input",
			input:    "",
			errorHas: "empty",
		},
		{
			name:     "Missing column",
			input:    "name,term,rate\nX,360,3.0\n",
			errorHas: "missing required column",
		},
		{
			name:     "Unknown column",
			input:    header + ",surprise\nX,,,,240000,360,3.0,,,,,,,,1\n",
			errorHas: "unknown column",
		},
		{
			name:     "Header only",
			input:    header + "\n",
			errorHas: "no data rows",
		},
		{
			name:     "Bad number names row and column",
			input:    header + "\nX,,,,240000,360,notanumber,,,,,,,\n",
			errorHas: `row 2 column "rate"`,
		},
		{
			name:     "Blank term is an error",
			input:    header + "\nX,,,,240000,,3.0,,,,,,,\n",
			errorHas: `column "term"`,
		},
		{
			name:     "Non-integer payoff months",
			input:    header + "\nX,,,,240000,360,3.0,,,,12.5,,,\n",
			errorHas: `column "payoff_months"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errorHas) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errorHas)
			}
		})
	}
}
