package mortgage

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestCompareBuildsColumnsInInputOrder(t *testing.T) {
	paramSets := []Parameters{
		{
			Label:              "Option 1",
			TermMonths:         360,
			AnnualRatePercent:  3.0,
			SalePrice:          floatPtr(300000),
			DownPaymentPercent: floatPtr(20),
		},
		{
			Label:                 "Option 2",
			TermMonths:            180,
			AnnualRatePercent:     2.5,
			SalePrice:             floatPtr(300000),
			DownPaymentPercent:    floatPtr(20),
			ExtraMonthlyPrincipal: 100,
		},
	}

	comparison, err := Compare(zap.NewNop(), paramSets)
	if err != nil {
		t.Fatalf("Compare() returned error: %v", err)
	}

	if len(comparison.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(comparison.Columns))
	}
	if comparison.Columns[0].Label != "Option 1" || comparison.Columns[1].Label != "Option 2" {
		t.Errorf("columns out of order: %q, %q", comparison.Columns[0].Label, comparison.Columns[1].Label)
	}

	if len(comparison.Metrics) == 0 {
		t.Fatal("expected metric labels")
	}
	for i, column := range comparison.Columns {
		if len(column.Values) != len(comparison.Metrics) {
			t.Errorf("column %d has %d values for %d metrics", i, len(column.Values), len(comparison.Metrics))
		}
	}
}

func TestCompareAbortsOnFirstInvalidRow(t *testing.T) {
	paramSets := []Parameters{
		{
			Label:             "good",
			TermMonths:        360,
			AnnualRatePercent: 3.0,
			SalePrice:         floatPtr(300000),
		},
		{
			Label:             "bad",
			TermMonths:        0,
			AnnualRatePercent: 3.0,
			SalePrice:         floatPtr(300000),
		},
	}

	comparison, err := Compare(zap.NewNop(), paramSets)
	if err == nil {
		t.Fatal("expected error for invalid row")
	}
	if comparison != nil {
		t.Error("expected nil comparison when a row fails")
	}
	if !strings.Contains(err.Error(), "loan 2") || !strings.Contains(err.Error(), "bad") {
		t.Errorf("error should identify the failed row, got: %v", err)
	}
}

func TestCompareRejectsEmptyInput(t *testing.T) {
	if _, err := Compare(zap.NewNop(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestComparisonFind(t *testing.T) {
	comparison, err := Compare(zap.NewNop(), []Parameters{
		{Label: "only", TermMonths: 360, AnnualRatePercent: 3.0, LoanAmount: floatPtr(240000)},
	})
	if err != nil {
		t.Fatalf("Compare() returned error: %v", err)
	}

	if comparison.Find("only") == nil {
		t.Error("expected to find loan by label")
	}
	if comparison.Find("missing") != nil {
		t.Error("expected nil for unknown label")
	}
}
