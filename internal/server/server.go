package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/output"
	"github.com/iwvelando/stepup-sip/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the SIP calculation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single plan from a JSON body or query parameters
	mux.HandleFunc("/api/sip", h.handleSIP)

	// Same as /api/sip, rendered as CSV
	mux.HandleFunc("/api/sip/csv", h.handleSIPCSV)

	// Every active plan of an uploaded configuration file
	mux.HandleFunc("/api/projections", h.handleProjections)

	// Input bands and slider hints for calculator front ends
	mux.HandleFunc("/api/limits", h.handleLimits)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// sipRequest mirrors the calculator inputs. Omitted fields take the
// calculator's initial values.
type sipRequest struct {
	Name              string   `json:"name,omitempty"`
	MonthlyInvestment *float64 `json:"monthlyInvestment"`
	StepUpPercentage  *float64 `json:"stepUpPercentage"`
	ExpectedReturn    *float64 `json:"expectedReturn"`
	Years             *float64 `json:"years"`
}

type sipResponse struct {
	output.Document
	Duration string `json:"duration"`
}

type projectionsResponse struct {
	Plans    []output.Document `json:"plans"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

func (r sipRequest) plan() config.Plan {
	plan := config.DefaultPlan()
	if name := strings.TrimSpace(r.Name); name != "" {
		plan.Name = name
	}
	if r.MonthlyInvestment != nil {
		plan.MonthlyInvestment = *r.MonthlyInvestment
	}
	if r.StepUpPercentage != nil {
		plan.StepUpPercentage = *r.StepUpPercentage
	}
	if r.ExpectedReturn != nil {
		plan.ExpectedReturn = *r.ExpectedReturn
	}
	if r.Years != nil {
		plan.Years = *r.Years
	}
	return plan
}

func (h *handler) handleSIP(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSIP"

	start := time.Now()
	result, ok := h.computeFromRequest(w, r, op)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, sipResponse{
		Document: output.NewDocument(result),
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleSIPCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSIPCSV"

	result, ok := h.computeFromRequest(w, r, op)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="stepup-sip.csv"`)
	w.WriteHeader(http.StatusOK)
	output.CsvFormat(w, []projection.Projection{result})
}

func (h *handler) computeFromRequest(w http.ResponseWriter, r *http.Request, op string) (projection.Projection, bool) {
	var req sipRequest
	switch r.Method {
	case http.MethodGet:
		parsed, err := requestFromQuery(r.URL.Query())
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return projection.Projection{}, false
		}
		req = parsed
	case http.MethodPost:
		body, ok := h.readBody(w, r, op)
		if !ok {
			return projection.Projection{}, false
		}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
				return projection.Projection{}, false
			}
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return projection.Projection{}, false
	}

	result, err := projection.ProjectPlan(h.logger, req.plan())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return projection.Projection{}, false
	}

	h.logger.Info("plan computed",
		zap.String("op", op),
		zap.Int("years", result.Plan.Years),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, true
}

func (h *handler) handleProjections(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjections"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := projection.GetProjections(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	docs := make([]output.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, output.NewDocument(result))
	}

	elapsed := time.Since(start)
	h.logger.Info("projections computed",
		zap.String("op", op),
		zap.Int("plans", len(docs)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, projectionsResponse{
		Plans:    docs,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleLimits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]validation.FieldLimit{
		"limits": validation.Limits(),
	})
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

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	return body, true
}

func requestFromQuery(values url.Values) (sipRequest, error) {
	req := sipRequest{Name: values.Get("name")}

	fields := []struct {
		key  string
		dest **float64
	}{
		{"monthlyInvestment", &req.MonthlyInvestment},
		{"stepUpPercentage", &req.StepUpPercentage},
		{"expectedReturn", &req.ExpectedReturn},
		{"years", &req.Years},
	}

	for _, field := range fields {
		raw := strings.TrimSpace(values.Get(field.key))
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return sipRequest{}, fmt.Errorf("%w: %s must be a number, got %q", validation.ErrInvalidInput, field.key, raw)
		}
		*field.dest = &parsed
	}

	return req, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
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
