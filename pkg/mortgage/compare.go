package mortgage

import (
	"fmt"

	"go.uber.org/zap"
)

// Column holds one scenario's formatted summary values, aligned with the
// Metrics slice of the enclosing Comparison.
type Column struct {
	Label  string
	Values []string
}

// Comparison is a metric-by-scenario table: rows are the fixed summary
// metric labels, columns are scenarios in input order.
type Comparison struct {
	Metrics []string
	Columns []Column
	Loans   []*Loan
}

// Compare builds a Loan per parameter set and assembles their summaries
// column-wise. The whole batch fails on the first invalid row; the error
// names the offending row so CSV input problems are easy to locate.
func Compare(logger *zap.Logger, paramSets []Parameters) (*Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(paramSets) == 0 {
		return nil, fmt.Errorf("no loan scenarios to compare")
	}

	comparison := &Comparison{}
	for i, params := range paramSets {
		loan, err := New(logger, params)
		if err != nil {
			label := params.Label
			if label == "" {
				label = "unnamed"
			}
			return nil, fmt.Errorf("loan %d (%s): %w", i+1, label, err)
		}

		summary := loan.Summary()
		if comparison.Metrics == nil {
			comparison.Metrics = make([]string, len(summary))
			for j, entry := range summary {
				comparison.Metrics[j] = entry.Label
			}
		}

		column := Column{Label: loan.Label, Values: make([]string, len(summary))}
		for j, entry := range summary {
			column.Values[j] = entry.Value
		}
		comparison.Columns = append(comparison.Columns, column)
		comparison.Loans = append(comparison.Loans, loan)
	}

	logger.Debug(fmt.Sprintf("compared %d loan scenarios", len(comparison.Columns)),
		zap.String("op", "mortgage.Compare"),
	)

	return comparison, nil
}

// Warnings aggregates the advisory warnings of every compared loan.
func (c *Comparison) Warnings() []string {
	var warnings []string
	for _, loan := range c.Loans {
		warnings = append(warnings, loan.Warnings()...)
	}
	return warnings
}

// Find returns the compared loan with the given label, or nil.
func (c *Comparison) Find(label string) *Loan {
	for _, loan := range c.Loans {
		if loan.Label == label {
			return loan
		}
	}
	return nil
}
