package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-analytics-pipeline/internal/ai"
	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/pipeline"
	"go-analytics-pipeline/internal/route"
	"go-analytics-pipeline/internal/staging"
)

// Handler exposes the pipeline, router, and enrichment helpers over HTTP.
// AI may be nil; the insight endpoints then answer 503.
type Handler struct {
	Runner *pipeline.Runner
	Router *route.Router
	Store  staging.Store
	AI     *ai.Client
	Log    *slog.Logger
}

type statusResponse struct {
	Status int `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Route decides which stage a request should trigger
// @Summary Route a request
// @Description Map an action onto a pipeline stage; unrecognized actions map to full_pipeline
// @Tags router
// @Accept json
// @Produce json
// @Param request body model.RouteRequest true "Action, payload, and options"
// @Success 200 {object} model.RouteDecision "Route decision"
// @Failure 400 {object} handler.errorResponse "Invalid request payload"
// @Router /route [post]
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	var req model.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	writeJSON(w, http.StatusOK, h.Router.Route(r.Context(), req))
}

// RunPipeline executes the full pipeline synchronously
// @Summary Run the full pipeline
// @Description Run ingest, clean, analyze, report, and deliver in order, stopping at the first failure
// @Tags pipeline
// @Produce json
// @Success 200 {object} handler.statusResponse "Exit status (0 = success)"
// @Router /pipeline/run [post]
func (h *Handler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: h.Runner.RunAll(r.Context())})
}

type reportOverrides struct {
	Title  string `json:"title"`
	Period string `json:"period"`
}

// RunStage executes a single pipeline stage
// @Summary Run one stage
// @Description Run a single stage; the report stage accepts optional title/period overrides in the body
// @Tags pipeline
// @Accept json
// @Produce json
// @Param stage path string true "Stage name" Enums(ingest, clean, analyze, report, deliver)
// @Param overrides body handler.reportOverrides false "Report overrides"
// @Success 200 {object} handler.statusResponse "Exit status (0 = success)"
// @Failure 404 {object} handler.errorResponse "Unknown stage"
// @Router /pipeline/stages/{stage} [post]
func (h *Handler) RunStage(w http.ResponseWriter, r *http.Request) {
	stage := strings.ToLower(chi.URLParam(r, "stage"))
	ctx := r.Context()

	var status int
	switch stage {
	case route.ActionIngest:
		status = h.Runner.Ingest(ctx)
	case route.ActionClean:
		status = h.Runner.Clean(ctx)
	case route.ActionAnalyze:
		status = h.Runner.Analyze(ctx)
	case route.ActionReport:
		var overrides reportOverrides
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&overrides)
		}
		status = h.Runner.Report(ctx, overrides.Title, overrides.Period)
	case route.ActionDeliver:
		status = h.Runner.Deliver(ctx)
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown stage: " + stage})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: status})
}

type healthResponse struct {
	OK       bool     `json:"ok"`
	Problems []string `json:"problems"`
}

// Health validates environment and source reachability
// @Summary Health check
// @Description Check required environment and configured source reachability without running the pipeline
// @Tags pipeline
// @Produce json
// @Success 200 {object} handler.healthResponse "Check passed"
// @Failure 503 {object} handler.healthResponse "Check failed, with problems"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ok, problems := h.Runner.Check(r.Context())
	if problems == nil {
		problems = []string{}
	}
	code := http.StatusOK
	if !ok {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthResponse{OK: ok, Problems: problems})
}

// Document returns a staging document
// @Summary Fetch a staging document
// @Description Read one of the stage-boundary documents from the staging store
// @Tags staging
// @Produce json
// @Param name path string true "Document name" Enums(raw_input.json, cleaned_data.json, analytics_result.json, report_output.json, report_summary.txt)
// @Success 200 {object} map[string]interface{} "Document body"
// @Failure 404 {object} handler.errorResponse "Document not written yet or name unknown"
// @Router /documents/{name} [get]
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !staging.IsKnownDocument(name) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown document: " + name})
		return
	}
	raw, err := h.Store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		h.Log.Error("read document", "name", name, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read document"})
		return
	}
	if strings.HasSuffix(name, ".json") {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

type insightRequest struct {
	Data   map[string]any `json:"data"`
	Metric string         `json:"metric"`
	Value  any            `json:"value"`
	Detail string         `json:"detail"`
}

type insightResponse struct {
	Result any `json:"result"`
}

// Summarize produces an advisory summary of analytics data
// @Summary Summarize analytics data
// @Description Gemini-written summary of already-computed data; advisory text only, never a source of numbers
// @Tags insights
// @Accept json
// @Produce json
// @Param request body handler.insightRequest true "Computed data to summarize"
// @Success 200 {object} handler.insightResponse "Summary text"
// @Failure 502 {object} handler.errorResponse "Helper call failed"
// @Failure 503 {object} handler.errorResponse "No classifier API key configured"
// @Router /insights/summarize [post]
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.insight(w, r, func(req insightRequest) (any, error) {
		return h.AI.SummarizeCampaign(r.Context(), req.Data)
	})
}

// Explain produces a plain-language explanation of one metric
// @Summary Explain a metric
// @Tags insights
// @Accept json
// @Produce json
// @Param request body handler.insightRequest true "Metric name, value, and context"
// @Success 200 {object} handler.insightResponse "Explanation text"
// @Failure 502 {object} handler.errorResponse "Helper call failed"
// @Failure 503 {object} handler.errorResponse "No classifier API key configured"
// @Router /insights/explain [post]
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	h.insight(w, r, func(req insightRequest) (any, error) {
		return h.AI.ExplainMetric(r.Context(), req.Metric, req.Value, req.Detail)
	})
}

// Suggest proposes optimizations based on computed data
// @Summary Suggest optimizations
// @Tags insights
// @Accept json
// @Produce json
// @Param request body handler.insightRequest true "Computed data"
// @Success 200 {object} handler.insightResponse "Suggestion list"
// @Failure 502 {object} handler.errorResponse "Helper call failed"
// @Failure 503 {object} handler.errorResponse "No classifier API key configured"
// @Router /insights/suggest [post]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	h.insight(w, r, func(req insightRequest) (any, error) {
		return h.AI.SuggestOptimizations(r.Context(), req.Data)
	})
}

// Dashboard writes a few neutral observations about activity stats
// @Summary Dashboard observations
// @Description Short neutral observations over activity stats; falls back to the staged analytics result when no data is supplied
// @Tags insights
// @Accept json
// @Produce json
// @Param request body handler.insightRequest false "Activity stats"
// @Success 200 {object} handler.insightResponse "Observation text"
// @Failure 502 {object} handler.errorResponse "Helper call failed"
// @Failure 503 {object} handler.errorResponse "No classifier API key configured"
// @Router /insights/dashboard [post]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.insight(w, r, func(req insightRequest) (any, error) {
		stats := req.Data
		if len(stats) == 0 {
			raw, err := h.Store.Get(r.Context(), staging.DocAnalytics)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &stats); err != nil {
				return nil, err
			}
		}
		return h.AI.DashboardInsights(r.Context(), stats)
	})
}

// insight handles the shared plumbing of the enrichment endpoints: each is
// independently failable and a failure never touches pipeline state.
func (h *Handler) insight(w http.ResponseWriter, r *http.Request, fn func(insightRequest) (any, error)) {
	if h.AI == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "AI helpers are not configured"})
		return
	}
	var req insightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	result, err := fn(req)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{Result: result})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
