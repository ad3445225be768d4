package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/engine"
	"github.com/Dan9191/finhealth-service/internal/integrations/cbr"
	"github.com/Dan9191/finhealth-service/internal/logging"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint
const Version = "1.0"

// RateSource provides the cached key rate
type RateSource interface {
	Latest() (cbr.KeyRate, bool)
}

type Handler struct {
	svc      *service.Service
	rates    RateSource
	log      *logrus.Logger
	validate *validator.Validate
}

func NewHandler(svc *service.Service, rates RateSource, log *logrus.Logger) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{svc: svc, rates: rates, log: log, validate: v}
}

// snapshotRequest uses pointers so a missing field is told apart from zero
type snapshotRequest struct {
	Income        *float64 `json:"income" validate:"required,gt=0"`
	Rent          *float64 `json:"rent" validate:"required,gte=0"`
	Food          *float64 `json:"food" validate:"required,gte=0"`
	Travel        *float64 `json:"travel" validate:"required,gte=0"`
	Shopping      *float64 `json:"shopping" validate:"required,gte=0"`
	EMI           *float64 `json:"emi" validate:"required,gte=0"`
	Savings       *float64 `json:"savings" validate:"required,gte=0"`
	RiskTolerance string   `json:"risk_tolerance,omitempty" validate:"omitempty,oneof=conservative balanced growth"`
}

func (r *snapshotRequest) snapshot() models.FinancialSnapshot {
	return models.FinancialSnapshot{
		Income:   *r.Income,
		Rent:     *r.Rent,
		Food:     *r.Food,
		Travel:   *r.Travel,
		Shopping: *r.Shopping,
		EMI:      *r.EMI,
		Savings:  *r.Savings,
	}
}

type simulateRequest struct {
	Current  *snapshotRequest `json:"current" validate:"required"`
	Modified *snapshotRequest `json:"modified" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Health reports that the service is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"service": "Financial Health API",
		"version": Version,
	})
}

// Evaluate handles a snapshot evaluation
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.svc.Evaluate(r.Context(), req.snapshot(), models.RiskTolerance(req.RiskTolerance))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Simulate handles a what-if comparison
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.svc.Simulate(r.Context(), req.Current.snapshot(), req.Modified.snapshot())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Breakdown returns the per-factor score composition
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !h.decode(w, r, &req) {
		return
	}
	b, err := h.svc.Breakdown(r.Context(), req.snapshot())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Policy returns the active scoring tables
func (h *Handler) Policy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Policy())
}

// KeyRate returns the cached central bank key rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	kr, ok := h.rates.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "key rate not available yet"})
		return
	}
	writeJSON(w, http.StatusOK, kr)
}

// decode reads and validates a JSON body, answering 400 itself on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logging.FromContext(r.Context(), h.log).Infof("Failed to decode request: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: amounts must be numbers"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: describe(fe), Field: fieldPath(fe)})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var inv *engine.InvalidInputError
	if errors.As(err, &inv) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: inv.Error(), Field: inv.Field})
		return
	}
	logging.FromContext(r.Context(), h.log).Errorf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// fieldPath drops the root struct name: "simulateRequest.current.income" -> "current.income"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return "missing required field: " + field
	case "gt":
		return field + " must be greater than zero"
	case "gte":
		return field + " must be a non-negative number"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	}
	return "invalid value for " + field
}

// writeJSON encodes before writing the header so an unencodable body becomes a 500
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
