package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpgo/resilience-navigator/internal/calculation"
	"github.com/rpgo/resilience-navigator/internal/chart"
	"github.com/rpgo/resilience-navigator/internal/domain"
	"github.com/rpgo/resilience-navigator/internal/output"
	money "github.com/rpgo/resilience-navigator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// classify maps a projection error to an HTTP status, a client message and
// a metrics outcome.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, calculation.ErrInsufficientSurplus):
		return http.StatusUnprocessableEntity, calculation.InsufficientSurplusMessage, outcomeNoSurplus
	case errors.Is(err, calculation.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), outcomeInvalidInput
	case errors.Is(err, calculation.ErrHorizonExceeded):
		return http.StatusUnprocessableEntity, err.Error(), outcomeHorizon
	default:
		return http.StatusInternalServerError, "projection failed", outcomeError
	}
}

// buildReport runs the projection and records the outcome.
func (s *Server) buildReport(inputs domain.FinancialInputs) (*domain.ProjectionReport, error) {
	report, err := s.projector.BuildReport(inputs)
	if err != nil {
		_, _, outcome := classify(err)
		s.metrics.observeProjection(outcome, 0)
		return nil, err
	}
	s.metrics.observeProjection(outcomeSuccess, report.Result.MonthsNeeded)
	return report, nil
}

// decodeInputs reads a JSON FinancialInputs body.
func decodeInputs(w http.ResponseWriter, r *http.Request) (domain.FinancialInputs, error) {
	var inputs domain.FinancialInputs
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inputs); err != nil {
		return inputs, fmt.Errorf("invalid request body: %w", err)
	}
	return inputs, nil
}

// projectJSON decodes the body, projects it and writes any error response.
// It returns nil when a response has already been written.
func (s *Server) projectJSON(w http.ResponseWriter, r *http.Request) *domain.ProjectionReport {
	inputs, err := decodeInputs(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	report, err := s.buildReport(inputs)
	if err != nil {
		status, msg, _ := classify(err)
		if status == http.StatusInternalServerError {
			s.logger.Errorf("projection failed: %v", err)
		}
		writeError(w, status, msg)
		return nil
	}
	return report
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	report := s.projectJSON(w, r)
	if report == nil {
		return
	}
	writeJSON(w, http.StatusOK, output.NewReportView(report))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	report := s.projectJSON(w, r)
	if report == nil {
		return
	}
	writeJSON(w, http.StatusOK, chart.PlotlyFigure(chart.Build(report.Result)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.projectJSON(w, r)
	if report == nil {
		return
	}
	s.writePDF(w, report)
}

// handleReportForm serves the PDF for the download button of the HTML page.
func (s *Server) handleReportForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	inputs, err := InputsFromValues(r.PostForm, s.defaults)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := s.buildReport(inputs)
	if err != nil {
		status, msg, _ := classify(err)
		http.Error(w, msg, status)
		return
	}
	s.writePDF(w, report)
}

func (s *Server) writePDF(w http.ResponseWriter, report *domain.ProjectionReport) {
	var buf bytes.Buffer
	if err := output.WritePDF(&buf, report); err != nil {
		s.logger.Errorf("pdf generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}
	s.metrics.reportDownloads.Inc()
	w.Header().Set("Content-Type", output.ReportMIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.ReportFileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := output.HTMLFormatter{Interactive: true}
	inputs, err := InputsFromValues(r.URL.Query(), s.defaults)

	var body []byte
	switch {
	case err != nil:
		body, err = page.FormatMessage(s.defaults, err.Error())
	default:
		report, perr := s.buildReport(inputs)
		if perr != nil {
			_, msg, _ := classify(perr)
			body, err = page.FormatMessage(inputs, msg)
		} else {
			body, err = page.Format(report)
		}
	}
	if err != nil {
		s.logger.Errorf("render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InputsFromValues reads form or query values (income, expenses, savings,
// debt, coverage, rate in percent). Missing fields keep the defaults.
func InputsFromValues(values url.Values, defaults domain.FinancialInputs) (domain.FinancialInputs, error) {
	inputs := defaults
	amounts := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"income", &inputs.MonthlyIncome},
		{"expenses", &inputs.MonthlyExpenses},
		{"savings", &inputs.CurrentSavings},
		{"debt", &inputs.CurrentDebt},
	}
	for _, a := range amounts {
		v := strings.TrimSpace(values.Get(a.key))
		if v == "" {
			continue
		}
		m, err := money.ParseAmount(v)
		if err != nil {
			return inputs, fmt.Errorf("%s: %w", a.key, err)
		}
		*a.dst = m.Decimal
	}
	if v := strings.TrimSpace(values.Get("coverage")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return inputs, fmt.Errorf("coverage: invalid number %q", v)
		}
		inputs.DesiredCoverageMonths = n
	}
	if v := strings.TrimSpace(values.Get("rate")); v != "" {
		pct, err := decimal.NewFromString(strings.TrimSuffix(v, "%"))
		if err != nil {
			return inputs, fmt.Errorf("rate: invalid number %q", v)
		}
		inputs.AnnualReturnRate = pct.Shift(-2)
	}
	return inputs, nil
}
