package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/batch"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/fraud"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/hub"
)

const defaultTimeout = 30 * time.Second

// Config transport-level defaults. BaseURL wajib dari config/env, jangan
// pernah hardcode endpoint production di source.
type Config struct {
	// BaseURL of the analysis API, e.g. "http://analysis:8000/api".
	BaseURL string
	// StaticBaseURL serves the server-side analysis cache. Defaults to
	// BaseURL with a trailing "/api" stripped.
	StaticBaseURL string
	Timeout       time.Duration
}

// Client is the single boundary for all network I/O against the analysis
// backend. It normalizes the backend's inconsistent response shapes so
// downstream logic never special-cases transport details. Holds no state
// between calls beyond transport defaults.
type Client struct {
	http      *http.Client
	baseURL   string
	staticURL string
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("backend: base URL is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	static := strings.TrimRight(cfg.StaticBaseURL, "/")
	if static == "" {
		static = strings.TrimSuffix(base, "/api")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   base,
		staticURL: static,
	}, nil
}

//
// ==== CASE OPERATIONS ====
//

// Upload kirim satu file evidence, balasannya file_id + sha256.
// Checksum boleh kosong, jangan diassume ada.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (cases.UploadReceipt, error) {
	form, contentType, err := fileForm("file", filename, r)
	if err != nil {
		return cases.UploadReceipt{}, fmt.Errorf("upload: %w", err)
	}
	body, err := c.post(ctx, c.baseURL+"/upload-evidence", contentType, form, "upload")
	if err != nil {
		return cases.UploadReceipt{}, err
	}
	var receipt cases.UploadReceipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return cases.UploadReceipt{}, fmt.Errorf("upload: decode response: %w: %v", cases.ErrTransport, err)
	}
	if receipt.FileID == "" {
		return cases.UploadReceipt{}, fmt.Errorf("upload: backend returned no file_id: %w", cases.ErrTransport)
	}
	return receipt, nil
}

// Analyze trigger analisis fresh untuk file yang sudah diupload
func (c *Client) Analyze(ctx context.Context, id cases.ID) (*cases.AnalysisResult, error) {
	form, contentType, err := valueForm("file_id", string(id))
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	body, err := c.post(ctx, c.baseURL+"/analyze", contentType, form, "analyze")
	if err != nil {
		return nil, err
	}
	var res cases.AnalysisResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("analyze: decode response: %w: %v", cases.ErrTransport, err)
	}
	if res.FileID == "" {
		// backend balikin {"error": "File not found", ...} dengan status 200
		return nil, fmt.Errorf("analyze %s: %w", id, cases.ErrNotFound)
	}
	return &res, nil
}

// CachedResult ambil salinan analisis yang sudah dicache di server
func (c *Client) CachedResult(ctx context.Context, id cases.ID) (*cases.AnalysisResult, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/data/analysis_cache/%s.json", c.staticURL, url.PathEscape(string(id))), "cached result")
	if err != nil {
		return nil, err
	}
	var res cases.AnalysisResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("cached result: decode response: %w: %v", cases.ErrTransport, err)
	}
	if res.FileID == "" {
		return nil, fmt.Errorf("cached result %s: %w", id, cases.ErrNotFound)
	}
	return &res, nil
}

// Report generate PDF case report. Non-2xx apapun -> ErrReportGeneration,
// tanpa retry otomatis.
func (c *Client) Report(ctx context.Context, id cases.ID) ([]byte, error) {
	form, contentType, err := valueForm("file_id", string(id))
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return c.postBlob(ctx, c.baseURL+"/report", contentType, form, "report")
}

//
// ==== THREAT HUB ====
//

// SearchCases query kosong berarti semua case. Bentuk respons backend bisa
// bare array, {cases:[...]}, atau satu objek; semua dinormalisasi di sini
// dan mismatch bentuk tidak pernah jadi error.
func (c *Client) SearchCases(ctx context.Context, query string) ([]hub.CaseSummary, error) {
	body, err := c.get(ctx, c.baseURL+"/cases/search?q="+url.QueryEscape(query), "search cases")
	if err != nil {
		return nil, err
	}
	return normalizeCaseList(body), nil
}

// TopEntities normalisasi {top:[...]}, {top_entities:[...]}, atau bare array
func (c *Client) TopEntities(ctx context.Context) ([]hub.TopEntity, error) {
	body, err := c.get(ctx, c.baseURL+"/cases/top-entities", "top entities")
	if err != nil {
		return nil, err
	}
	return normalizeTopEntities(body), nil
}

// CaseClusters ambil kelompok case yang nyambung lewat entitas sama
func (c *Client) CaseClusters(ctx context.Context) (*hub.Clusters, error) {
	body, err := c.get(ctx, c.baseURL+"/cases/clusters", "case clusters")
	if err != nil {
		return nil, err
	}
	return normalizeClusters(body), nil
}

// EntityProfile 404 berarti entitas tidak ada di case manapun -> ErrNotFound
// (bukan failure generik, UI render "no intelligence found").
func (c *Client) EntityProfile(ctx context.Context, entity string) (*hub.EntityProfile, error) {
	body, err := c.get(ctx, c.baseURL+"/entities/profile?entity="+url.QueryEscape(entity), "entity profile")
	if err != nil {
		return nil, err
	}
	var p hub.EntityProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("entity profile: decode response: %w: %v", cases.ErrTransport, err)
	}
	return &p, nil
}

//
// ==== BATCH ====
//

// BatchAnalyze submit banyak file sekaligus, balasannya batch_id
func (c *Client) BatchAnalyze(ctx context.Context, files []batch.File) (batch.Handle, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return batch.Handle{}, fmt.Errorf("batch analyze: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return batch.Handle{}, fmt.Errorf("batch analyze: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return batch.Handle{}, fmt.Errorf("batch analyze: %w", err)
	}
	body, err := c.post(ctx, c.baseURL+"/batch-analyze", w.FormDataContentType(), &buf, "batch analyze")
	if err != nil {
		return batch.Handle{}, err
	}
	var h batch.Handle
	if err := json.Unmarshal(body, &h); err != nil {
		return batch.Handle{}, fmt.Errorf("batch analyze: decode response: %w: %v", cases.ErrTransport, err)
	}
	if h.BatchID == "" {
		return batch.Handle{}, fmt.Errorf("batch analyze: backend returned no batch_id: %w", cases.ErrTransport)
	}
	return h, nil
}

// UnifiedReport ambil aggregate JSON untuk satu batch
func (c *Client) UnifiedReport(ctx context.Context, batchID string) (*batch.UnifiedReport, error) {
	form, contentType, err := valueForm("batch_id", batchID)
	if err != nil {
		return nil, fmt.Errorf("unified report: %w", err)
	}
	body, err := c.post(ctx, c.baseURL+"/unified-report", contentType, form, "unified report")
	if err != nil {
		return nil, err
	}
	var r batch.UnifiedReport
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unified report: decode response: %w: %v", cases.ErrTransport, err)
	}
	if r.BatchID == "" {
		r.BatchID = batchID
	}
	return &r, nil
}

// UnifiedReportPDF varian binary (PDF) dari aggregate
func (c *Client) UnifiedReportPDF(ctx context.Context, batchID string) ([]byte, error) {
	form, contentType, err := valueForm("batch_id", batchID)
	if err != nil {
		return nil, fmt.Errorf("unified report pdf: %w", err)
	}
	return c.postBlob(ctx, c.baseURL+"/unified-report", contentType, form, "unified report pdf")
}

//
// ==== FRAUD PREDICTION ====
//

func (c *Client) Predict(ctx context.Context, in fraud.ContractInput) (*fraud.Prediction, error) {
	body, err := c.postJSON(ctx, c.baseURL+"/fraud-predict", in, "fraud predict")
	if err != nil {
		return nil, err
	}
	var p fraud.Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("fraud predict: decode response: %w: %v", cases.ErrTransport, err)
	}
	return &p, nil
}

func (c *Client) PredictBatch(ctx context.Context, cs []fraud.ContractInput) (*fraud.BatchResult, error) {
	payload := map[string]any{"contracts": cs}
	body, err := c.postJSON(ctx, c.baseURL+"/fraud-predict/batch", payload, "fraud predict batch")
	if err != nil {
		return nil, err
	}
	var r fraud.BatchResult
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("fraud predict batch: decode response: %w: %v", cases.ErrTransport, err)
	}
	return &r, nil
}

func (c *Client) ModelInfo(ctx context.Context) (*fraud.ModelInfo, error) {
	body, err := c.get(ctx, c.baseURL+"/fraud-predict/model-info", "model info")
	if err != nil {
		return nil, err
	}
	var m fraud.ModelInfo
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("model info: decode response: %w: %v", cases.ErrTransport, err)
	}
	return &m, nil
}

//
// ==== TRANSPORT HELPERS ====
//

func (c *Client) get(ctx context.Context, rawURL, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, cases.ErrTransport, err)
	}
	return c.do(req, op)
}

func (c *Client) post(ctx context.Context, rawURL, contentType string, body io.Reader, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, cases.ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, op)
}

func (c *Client) postJSON(ctx context.Context, rawURL string, payload any, op string) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.post(ctx, rawURL, "application/json", bytes.NewReader(b), op)
}

// postBlob sama seperti post tapi non-2xx apapun dianggap gagal generate
// report (kontrak endpoint report)
func (c *Client) postBlob(ctx context.Context, rawURL, contentType string, body io.Reader, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, cases.ErrReportGeneration, err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, cases.ErrReportGeneration, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w: %v", op, cases.ErrReportGeneration, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, cases.ErrReportGeneration)
	}
	return data, nil
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, cases.ErrTransport, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w: %v", op, cases.ErrTransport, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", op, cases.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, cases.ErrTransport)
	}
	return data, nil
}

// fileForm multipart dengan satu file field
func fileForm(field, filename string, r io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// valueForm multipart dengan satu text field (backend maunya form-data)
func valueForm(field, value string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField(field, value); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
