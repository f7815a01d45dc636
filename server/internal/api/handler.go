package api

import (
	"encoding/json"
	"net/http"

	"github.com/bpcalc/bpcalc/pkg/bp"
	"github.com/bpcalc/bpcalc/server/internal/telemetry"
)

// Recorder receives one event per parsed submission and one rejection per
// failure reason. *telemetry.Tracker implements it.
type Recorder interface {
	Track(ev telemetry.Event) bool
	Reject(reason telemetry.Reason)
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	rec Recorder
	mux *http.ServeMux
}

// New creates a Handler that reports to rec and registers all routes.
func New(rec Recorder) http.Handler {
	h := &Handler{rec: rec, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/assess", h.assess)
	h.mux.HandleFunc("/api/v1/categories", h.categories)
	h.mux.HandleFunc("/api/v1/health", h.health)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// assess handles POST /api/v1/assess.
func (h *Handler) assess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reading, parseErrs := parseReading(r)
	if len(parseErrs) > 0 {
		h.rec.Reject(telemetry.ReasonParse)
		jsonResp(w, http.StatusBadRequest, ErrorsResponse{Errors: parseErrs})
		return
	}

	rangeErrs, crossOK, errs := checkReading(reading)
	valid := len(errs) == 0

	// Tracked before the validity check so rejected readings are counted too.
	h.rec.Track(telemetry.NewEvent(reading, valid))

	if !valid {
		if len(rangeErrs) > 0 {
			h.rec.Reject(telemetry.ReasonOutOfRange)
		}
		if !crossOK {
			h.rec.Reject(telemetry.ReasonCrossField)
		}
		jsonResp(w, http.StatusUnprocessableEntity, ErrorsResponse{Errors: errs})
		return
	}

	jsonResp(w, http.StatusOK, toAssessResponse(reading, bp.Assess(reading)))
}

// categories handles GET /api/v1/categories.
func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cats := make([]CategoryResponse, 0, 4)
	for _, c := range bp.Categories() {
		cr := CategoryResponse{
			Name:      c.String(),
			Label:     c.DisplayName(),
			HeartRisk: bp.HeartRiskMessage(c),
		}
		if sys, dia, ok := bp.Ceiling(c); ok {
			cr.SystolicMax, cr.DiastolicMax = &sys, &dia
		}
		cats = append(cats, cr)
	}

	jsonResp(w, http.StatusOK, CategoriesResponse{
		Categories: cats,
		Ranges: RangesResponse{
			SystolicMin:  bp.SystolicMin,
			SystolicMax:  bp.SystolicMax,
			DiastolicMin: bp.DiastolicMin,
			DiastolicMax: bp.DiastolicMax,
		},
	})
}

// health handles GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

func toAssessResponse(r bp.Reading, a bp.Assessment) AssessResponse {
	return AssessResponse{
		Systolic:                      r.Systolic,
		Diastolic:                     r.Diastolic,
		Category:                      a.Category.String(),
		CategoryLabel:                 a.Category.DisplayName(),
		HeartRisk:                     a.HeartRiskMessage,
		CardiovascularRisk:            a.CardiovascularRisk.String(),
		CardiovascularRiskDescription: a.CardiovascularRisk.Description(),
		Score:                         a.Score,
	}
}
