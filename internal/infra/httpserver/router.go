package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appbatch "github.com/bryanwahyu/cyberlens-console/internal/application/batch"
	appbrief "github.com/bryanwahyu/cyberlens-console/internal/application/brief"
	appcases "github.com/bryanwahyu/cyberlens-console/internal/application/cases"
	appfraud "github.com/bryanwahyu/cyberlens-console/internal/application/fraud"
	apphub "github.com/bryanwahyu/cyberlens-console/internal/application/hub"
	domai "github.com/bryanwahyu/cyberlens-console/internal/domain/ai"
	dombatch "github.com/bryanwahyu/cyberlens-console/internal/domain/batch"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	domfraud "github.com/bryanwahyu/cyberlens-console/internal/domain/fraud"
	"github.com/bryanwahyu/cyberlens-console/internal/middleware"
	ws "github.com/bryanwahyu/cyberlens-console/internal/websocket"
)

const maxUploadBytes = 32 << 20

type Router struct {
	store    *appcases.Store
	casesSvc *appcases.Service
	hubSvc   *apphub.Service
	batchSvc *appbatch.Service
	fraudSvc *appfraud.Service
	briefSvc *appbrief.Service
	notifHub *ws.Hub
}

func NewRouter(
	store *appcases.Store,
	casesSvc *appcases.Service,
	hubSvc *apphub.Service,
	batchSvc *appbatch.Service,
	fraudSvc *appfraud.Service,
	briefSvc *appbrief.Service,
	notifHub *ws.Hub,
	corsOrigins []string,
	healthCheckers map[string]middleware.HealthChecker,
) http.Handler {
	r := &Router{
		store:    store,
		casesSvc: casesSvc,
		hubSvc:   hubSvc,
		batchSvc: batchSvc,
		fraudSvc: fraudSvc,
		briefSvc: briefSvc,
		notifHub: notifHub,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RateLimitMiddleware(50, 10))
	if len(corsOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))
	}

	mux.Get("/health", middleware.HealthHandler(healthCheckers))
	mux.Get("/livez", middleware.LivenessHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/evidence", r.wrap(r.handleUpload))
		rt.Post("/evidence/analyze", r.wrap(r.handleUploadAndAnalyze))

		rt.Get("/cases", r.wrap(r.handleSearchCases))
		rt.Get("/cases/{id}", r.wrap(r.handleGetCase))
		rt.Post("/cases/{id}/reanalyze", r.wrap(r.handleReanalyze))
		rt.Get("/cases/{id}/report", r.wrap(r.handleCaseReport))
		rt.Get("/cases/{id}/brief", r.wrap(r.handleCaseBrief))

		rt.Get("/hub/overview", r.wrap(r.handleOverview))
		rt.Get("/hub/top-entities", r.wrap(r.handleTopEntities))
		rt.Get("/hub/entity-profile", r.wrap(r.handleEntityProfile))
		rt.Get("/hub/clusters", r.wrap(r.handleCaseClusters))

		rt.Post("/batch", r.wrap(r.handleBatchSubmit))
		rt.Get("/batch/{id}/report", r.wrap(r.handleUnifiedReport))
		rt.Get("/batch/{id}/report.pdf", r.wrap(r.handleUnifiedReportPDF))

		rt.Post("/fraud/predict", r.wrap(r.handleFraudPredict))
		rt.Post("/fraud/predict/batch", r.wrap(r.handleFraudPredictBatch))
		rt.Get("/fraud/model-info", r.wrap(r.handleModelInfo))

		rt.Get("/state", r.wrap(r.handleState))
		rt.Post("/state/clear", r.wrap(r.handleClearState))

		if notifHub != nil {
			rt.Get("/notifications/ws", notifHub.ServeWS)
		}
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap klasifikasi error taxonomy -> status code, sekaligus pastikan tiap
// failure yang lolos sampai sini menghasilkan tepat satu notification yang
// kelihatan user.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		rt.store.SetNotification("request failed: " + err.Error())

		switch {
		case errors.Is(err, domain.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrReportGeneration):
			http.Error(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, domain.ErrTransport):
			http.Error(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, domai.ErrQuotaExceeded):
			http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
		case errors.Is(err, domai.ErrDisabled):
			http.Error(w, "ai briefs are not configured", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// evidenceFile ambil satu file upload dari multipart form
func evidenceFile(req *http.Request, field string) (string, io.ReadCloser, error) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("parse multipart form: %w: %v", domain.ErrValidation, err)
	}
	f, header, err := req.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q file field: %w", field, domain.ErrValidation)
	}
	if err := middleware.ValidateEvidenceFilename(header.Filename); err != nil {
		f.Close()
		return "", nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return header.Filename, f, nil
}

// POST /v1/evidence
func (rt *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	name, f, err := evidenceFile(req, "file")
	if err != nil {
		return err
	}
	defer f.Close()

	receipt, err := rt.casesSvc.Backend.Upload(req.Context(), name, f)
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("evidence uploaded: %s", receipt.FileID))
	return writeJSON(w, receipt)
}

// POST /v1/evidence/analyze — upload lalu langsung analisis (alur upload page)
func (rt *Router) handleUploadAndAnalyze(w http.ResponseWriter, req *http.Request) error {
	name, f, err := evidenceFile(req, "file")
	if err != nil {
		return err
	}
	defer f.Close()

	rt.store.SetLoading(true)
	defer rt.store.SetLoading(false)

	res, err := rt.casesSvc.UploadAndAnalyze(req.Context(), name, f)
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("case %s analyzed", res.FileID))
	return writeJSON(w, res)
}

// GET /v1/cases?q=
func (rt *Router) handleSearchCases(w http.ResponseWriter, req *http.Request) error {
	list, err := rt.hubSvc.SearchCases(req.Context(), req.URL.Query().Get("q"))
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/cases/{id}
func (rt *Router) handleGetCase(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateFileID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	rt.store.SetLoading(true)
	defer rt.store.SetLoading(false)

	res, err := rt.casesSvc.LoadCase(req.Context(), domain.ID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// POST /v1/cases/{id}/reanalyze
func (rt *Router) handleReanalyze(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateFileID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	rt.store.SetLoading(true)
	defer rt.store.SetLoading(false)

	res, err := rt.casesSvc.Reanalyze(req.Context(), domain.ID(id))
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("case %s re-analyzed", res.FileID))
	return writeJSON(w, res)
}

// GET /v1/cases/{id}/report — proxy PDF dari backend
func (rt *Router) handleCaseReport(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateFileID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	data, err := rt.casesSvc.Report(req.Context(), domain.ID(id))
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("report for case %s downloaded", id))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, id))
	_, err = w.Write(data)
	return err
}

// GET /v1/cases/{id}/brief
func (rt *Router) handleCaseBrief(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateFileID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	text, err := rt.briefSvc.Brief(req.Context(), domain.ID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"file_id": id, "brief": text})
}

// GET /v1/hub/overview
func (rt *Router) handleOverview(w http.ResponseWriter, req *http.Request) error {
	ov, err := rt.hubSvc.Overview(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, ov)
}

// GET /v1/hub/top-entities
func (rt *Router) handleTopEntities(w http.ResponseWriter, req *http.Request) error {
	top, err := rt.hubSvc.TopEntities(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, top)
}

// GET /v1/hub/entity-profile?entity=
func (rt *Router) handleEntityProfile(w http.ResponseWriter, req *http.Request) error {
	entity := middleware.SanitizeString(req.URL.Query().Get("entity"))
	profile, err := rt.hubSvc.EntityProfile(req.Context(), entity)
	if err != nil {
		return err
	}
	return writeJSON(w, profile)
}

// GET /v1/hub/clusters
func (rt *Router) handleCaseClusters(w http.ResponseWriter, req *http.Request) error {
	clusters, err := rt.hubSvc.CaseClusters(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, clusters)
}

// POST /v1/batch — multipart "files"
func (rt *Router) handleBatchSubmit(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("parse multipart form: %w: %v", domain.ErrValidation, err)
	}

	var files []dombatch.File
	if req.MultipartForm != nil {
		for _, header := range req.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				return fmt.Errorf("open upload %s: %w", header.Filename, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read upload %s: %w", header.Filename, err)
			}
			files = append(files, dombatch.File{Name: header.Filename, Data: data})
		}
	}

	handle, err := rt.batchSvc.Submit(req.Context(), files)
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("batch created: %s", handle.BatchID))
	return writeJSON(w, handle)
}

// GET /v1/batch/{id}/report
func (rt *Router) handleUnifiedReport(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateBatchID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	report, err := rt.batchSvc.UnifiedReport(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

// GET /v1/batch/{id}/report.pdf
func (rt *Router) handleUnifiedReportPDF(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateBatchID(id); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	data, err := rt.batchSvc.UnifiedReportPDF(req.Context(), id)
	if err != nil {
		return err
	}
	rt.store.SetNotification(fmt.Sprintf("unified report for batch %s downloaded", id))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="unified_%s.pdf"`, id))
	_, err = w.Write(data)
	return err
}

// POST /v1/fraud/predict
func (rt *Router) handleFraudPredict(w http.ResponseWriter, req *http.Request) error {
	var in domfraud.ContractInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		return fmt.Errorf("decode contract: %w: %v", domain.ErrValidation, err)
	}
	p, err := rt.fraudSvc.Predict(req.Context(), in)
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

// POST /v1/fraud/predict/batch
func (rt *Router) handleFraudPredictBatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Contracts []domfraud.ContractInput `json:"contracts"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode contracts: %w: %v", domain.ErrValidation, err)
	}
	res, err := rt.fraudSvc.PredictBatch(req.Context(), body.Contracts)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// GET /v1/fraud/model-info
func (rt *Router) handleModelInfo(w http.ResponseWriter, req *http.Request) error {
	info, err := rt.fraudSvc.ModelInfo(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, info)
}

// GET /v1/state — ringkasan state session untuk dashboard
func (rt *Router) handleState(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{
		"current_case_id": rt.store.Current(),
		"cached_cases":    rt.store.Len(),
		"loading":         rt.store.Loading(),
		"notification":    rt.store.Notification(),
	})
}

// POST /v1/state/clear — reset eksplisit dari user
func (rt *Router) handleClearState(w http.ResponseWriter, req *http.Request) error {
	rt.store.Clear()
	rt.store.SetNotification("session cache cleared")
	return writeJSON(w, map[string]string{"status": "cleared"})
}
