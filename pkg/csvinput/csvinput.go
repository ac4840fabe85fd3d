// Package csvinput parses delimited scenario files into loan parameters for
// batch comparison. Blank cells map to unset values rather than zero so the
// resolution and defaulting rules in the mortgage package apply.
package csvinput

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-compare/pkg/mortgage"
)

// Headers is the required column set for comparison input files. Column
// order is free but every column must be present and no others.
var Headers = []string{
	"name",
	"sale_price",
	"dp_dollars",
	"dp_percent",
	"loan_amount",
	"term",
	"rate",
	"insurance",
	"taxes",
	"add_payment",
	"payoff_months",
	"closing_costs",
	"pmi_amount",
	"pmi_ltv",
}

// ParseFile reads a CSV file and returns one Parameters per data row.
func ParseFile(path string) ([]mortgage.Parameters, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Parse(file)
}

// Parse reads CSV data and maps each row field-by-field into Parameters.
// Each cell is converted against its column's declared type; the first bad
// cell fails the whole parse with its row and column named.
func Parse(r io.Reader) ([]mortgage.Parameters, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty, expected header row with columns: %s", strings.Join(Headers, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var paramSets []mortgage.Parameters
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowNum+1, err)
		}
		rowNum++

		params, err := mapRow(columns, record, rowNum)
		if err != nil {
			return nil, err
		}
		paramSets = append(paramSets, params)
	}

	if len(paramSets) == 0 {
		return nil, fmt.Errorf("input has a header but no data rows")
	}

	return paramSets, nil
}

func mapColumns(header []string) (map[string]int, error) {
	known := make(map[string]struct{}, len(Headers))
	for _, name := range Headers {
		known[name] = struct{}{}
	}

	columns := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown column %q, expected columns: %s", raw, strings.Join(Headers, ","))
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		columns[name] = i
	}

	for _, name := range Headers {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	return columns, nil
}

func mapRow(columns map[string]int, record []string, rowNum int) (mortgage.Parameters, error) {
	var params mortgage.Parameters

	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	params.Label = cell("name")

	term, err := requiredInt(cell("term"), "term", rowNum)
	if err != nil {
		return params, err
	}
	params.TermMonths = term

	rate, err := requiredFloat(cell("rate"), "rate", rowNum)
	if err != nil {
		return params, err
	}
	params.AnnualRatePercent = rate

	if params.SalePrice, err = optionalFloat(cell("sale_price"), "sale_price", rowNum); err != nil {
		return params, err
	}
	if params.DownPaymentDollars, err = optionalFloat(cell("dp_dollars"), "dp_dollars", rowNum); err != nil {
		return params, err
	}
	if params.DownPaymentPercent, err = optionalFloat(cell("dp_percent"), "dp_percent", rowNum); err != nil {
		return params, err
	}
	if params.LoanAmount, err = optionalFloat(cell("loan_amount"), "loan_amount", rowNum); err != nil {
		return params, err
	}
	if params.AnnualInsurance, err = defaultedFloat(cell("insurance"), "insurance", rowNum); err != nil {
		return params, err
	}
	if params.AnnualTaxes, err = defaultedFloat(cell("taxes"), "taxes", rowNum); err != nil {
		return params, err
	}
	if params.ExtraMonthlyPrincipal, err = defaultedFloat(cell("add_payment"), "add_payment", rowNum); err != nil {
		return params, err
	}
	if params.PayoffHorizonMonths, err = optionalInt(cell("payoff_months"), "payoff_months", rowNum); err != nil {
		return params, err
	}
	if params.ClosingCosts, err = defaultedFloat(cell("closing_costs"), "closing_costs", rowNum); err != nil {
		return params, err
	}
	if params.MonthlyPmiAmount, err = defaultedFloat(cell("pmi_amount"), "pmi_amount", rowNum); err != nil {
		return params, err
	}
	if params.PmiCancelLtvPercent, err = optionalFloat(cell("pmi_ltv"), "pmi_ltv", rowNum); err != nil {
		return params, err
	}

	return params, nil
}

func requiredFloat(value, column string, rowNum int) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("row %d column %q: value is required", rowNum, column)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: invalid number %q", rowNum, column, value)
	}
	return parsed, nil
}

func requiredInt(value, column string, rowNum int) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("row %d column %q: value is required", rowNum, column)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: invalid integer %q", rowNum, column, value)
	}
	return parsed, nil
}

func defaultedFloat(value, column string, rowNum int) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return requiredFloat(value, column, rowNum)
}

func optionalFloat(value, column string, rowNum int) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := requiredFloat(value, column, rowNum)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func optionalInt(value, column string, rowNum int) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := requiredInt(value, column, rowNum)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
