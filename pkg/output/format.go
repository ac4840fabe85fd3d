// Package output provides utilities for formatting and displaying loan
// summaries, comparison tables, and amortization schedules.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-compare/pkg/amortization"
	"github.com/iwvelando/mortgage-compare/pkg/mortgage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(comparison *mortgage.Comparison) {
	fmt.Print(PrettyString(comparison))
}

// PrettyString renders the comparison as an aligned text table, metrics as
// rows and one column per scenario.
func PrettyString(comparison *mortgage.Comparison) string {
	labelWidth := len("Metric")
	for _, metric := range comparison.Metrics {
		if len(metric) > labelWidth {
			labelWidth = len(metric)
		}
	}

	widths := make([]int, len(comparison.Columns))
	for i, column := range comparison.Columns {
		widths[i] = len(column.Label)
		for _, value := range column.Values {
			if len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%-*s", labelWidth, "Metric")
	for i, column := range comparison.Columns {
		fmt.Fprintf(&builder, " | %-*s", widths[i], column.Label)
	}
	builder.WriteString("\n")

	fmt.Fprintf(&builder, "%-*s", labelWidth, strings.Repeat("_", len("Metric")))
	for i, column := range comparison.Columns {
		fmt.Fprintf(&builder, " | %-*s", widths[i], strings.Repeat("_", len(column.Label)))
	}
	builder.WriteString("\n")

	for row, metric := range comparison.Metrics {
		fmt.Fprintf(&builder, "%-*s", labelWidth, metric)
		for i, column := range comparison.Columns {
			fmt.Fprintf(&builder, " | %-*s", widths[i], column.Values[row])
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(comparison *mortgage.Comparison) {
	fmt.Print(CsvString(comparison))
}

// CsvString renders the comparison in comma-separated value format with one
// quoted column per scenario.
func CsvString(comparison *mortgage.Comparison) string {
	var builder strings.Builder

	builder.WriteString(`"metric"`)
	for _, column := range comparison.Columns {
		fmt.Fprintf(&builder, `,"%s"`, column.Label)
	}
	builder.WriteString("\n")

	for row, metric := range comparison.Metrics {
		fmt.Fprintf(&builder, `"%s"`, metric)
		for _, column := range comparison.Columns {
			fmt.Fprintf(&builder, `,"%s"`, column.Values[row])
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// PrettySchedule prints a loan's month-by-month amortization table.
func PrettySchedule(label string, rows []amortization.Row) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Amortization schedule for %s ---\n", label)
	fmt.Printf("Month | Interest    | Principal   | Balance\n")
	fmt.Printf("_____ | ________    | _________   | _______\n")
	for _, row := range rows {
		_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f\n", row.Month, row.Interest, row.Principal, row.Balance)
	}
}

// ScheduleCsvString renders an amortization schedule in comma-separated
// value format.
func ScheduleCsvString(rows []amortization.Row) string {
	var builder strings.Builder
	builder.WriteString(`"month","interest","principal","balance"` + "\n")
	for _, row := range rows {
		fmt.Fprintf(&builder, `"%d","%.2f","%.2f","%.2f"`+"\n", row.Month, row.Interest, row.Principal, row.Balance)
	}
	return builder.String()
}
