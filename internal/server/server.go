// Package server exposes the mortgage engine as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-compare/pkg/amortization"
	"github.com/iwvelando/mortgage-compare/pkg/constants"
	"github.com/iwvelando/mortgage-compare/pkg/csvinput"
	"github.com/iwvelando/mortgage-compare/pkg/mortgage"
	"github.com/iwvelando/mortgage-compare/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the mortgage API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single-scenario summary from JSON parameters
	mux.HandleFunc("/api/summary", h.handleSummary)

	// Batch comparison from an uploaded CSV file
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type loanRequest struct {
	Label                 string   `json:"label"`
	TermMonths            int      `json:"termMonths"`
	AnnualRatePercent     float64  `json:"annualRatePercent"`
	SalePrice             *float64 `json:"salePrice,omitempty"`
	DownPaymentDollars    *float64 `json:"downPaymentDollars,omitempty"`
	DownPaymentPercent    *float64 `json:"downPaymentPercent,omitempty"`
	LoanAmount            *float64 `json:"loanAmount,omitempty"`
	AnnualInsurance       float64  `json:"annualInsurance"`
	AnnualTaxes           float64  `json:"annualTaxes"`
	ExtraMonthlyPrincipal float64  `json:"extraMonthlyPrincipal"`
	PayoffHorizonMonths   *int     `json:"payoffHorizonMonths,omitempty"`
	ClosingCosts          float64  `json:"closingCosts"`
	MonthlyPmiAmount      float64  `json:"monthlyPmiAmount"`
	PmiCancelLtvPercent   *float64 `json:"pmiCancelLtvPercent,omitempty"`
}

func (r loanRequest) parameters() mortgage.Parameters {
	return mortgage.Parameters{
		Label:                 r.Label,
		TermMonths:            r.TermMonths,
		AnnualRatePercent:     r.AnnualRatePercent,
		SalePrice:             r.SalePrice,
		DownPaymentDollars:    r.DownPaymentDollars,
		DownPaymentPercent:    r.DownPaymentPercent,
		LoanAmount:            r.LoanAmount,
		AnnualInsurance:       r.AnnualInsurance,
		AnnualTaxes:           r.AnnualTaxes,
		ExtraMonthlyPrincipal: r.ExtraMonthlyPrincipal,
		PayoffHorizonMonths:   r.PayoffHorizonMonths,
		ClosingCosts:          r.ClosingCosts,
		MonthlyPmiAmount:      r.MonthlyPmiAmount,
		PmiCancelLtvPercent:   r.PmiCancelLtvPercent,
	}
}

type summaryEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type scheduleRow struct {
	Month     int     `json:"month"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

type summaryResponse struct {
	Label    string         `json:"label"`
	Summary  []summaryEntry `json:"summary"`
	Baseline []scheduleRow  `json:"baseline"`
	Schedule []scheduleRow  `json:"schedule"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

type comparisonColumn struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type comparisonResponse struct {
	Scenarios []string           `json:"scenarios"`
	Metrics   []string           `json:"metrics"`
	Columns   []comparisonColumn `json:"columns"`
	CSV       string             `json:"csv"`
	Warnings  []string           `json:"warnings,omitempty"`
	Duration  string             `json:"duration"`
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var request loanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode loan parameters: %v", err), "server.handleSummary")
		return
	}

	loan, err := mortgage.New(h.logger, request.parameters())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSummary")
		return
	}

	elapsed := time.Since(start)
	response := summaryResponse{
		Label:    loan.Label,
		Summary:  buildSummaryEntries(loan.Summary()),
		Baseline: buildScheduleRows(loan.BaselineSchedule),
		Schedule: buildScheduleRows(loan.Schedule),
		Warnings: loan.Warnings(),
		Duration: elapsed.String(),
	}

	h.logger.Info("summary computed",
		zap.String("op", "server.handleSummary"),
		zap.String("label", loan.Label),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleCompare")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleCompare")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing comparison file", "server.handleCompare")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleCompare"),
				zap.Error(closeErr),
			)
		}
	}()

	paramSets, err := csvinput.Parse(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleCompare")
		return
	}

	comparison, err := mortgage.Compare(h.logger, paramSets)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleCompare")
		return
	}

	elapsed := time.Since(start)
	response := comparisonResponse{
		Scenarios: extractScenarioLabels(comparison),
		Metrics:   comparison.Metrics,
		Columns:   buildComparisonColumns(comparison),
		CSV:       output.CsvString(comparison),
		Warnings:  comparison.Warnings(),
		Duration:  elapsed.String(),
	}

	h.logger.Info("comparison computed",
		zap.String("op", "server.handleCompare"),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildSummaryEntries(entries []mortgage.SummaryEntry) []summaryEntry {
	result := make([]summaryEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, summaryEntry{Label: entry.Label, Value: entry.Value})
	}
	return result
}

func buildScheduleRows(rows []amortization.Row) []scheduleRow {
	result := make([]scheduleRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, scheduleRow{
			Month:     row.Month,
			Interest:  row.Interest,
			Principal: row.Principal,
			Balance:   row.Balance,
		})
	}
	return result
}

func buildComparisonColumns(comparison *mortgage.Comparison) []comparisonColumn {
	columns := make([]comparisonColumn, 0, len(comparison.Columns))
	for _, column := range comparison.Columns {
		columns = append(columns, comparisonColumn{
			Label:  column.Label,
			Values: append([]string(nil), column.Values...),
		})
	}
	return columns
}

func extractScenarioLabels(comparison *mortgage.Comparison) []string {
	labels := make([]string, 0, len(comparison.Columns))
	for _, column := range comparison.Columns {
		labels = append(labels, column.Label)
	}
	return labels
}
