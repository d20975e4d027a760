package backend

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	"github.com/bryanwahyu/cyberlens-console/internal/domain/hub"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestSearchCasesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []hub.CaseSummary
	}{
		{
			name: "bare empty array",
			body: `[]`,
			want: []hub.CaseSummary{},
		},
		{
			name: "wrapped cases object",
			body: `{"query":"","total_hits":1,"cases":[{"file_id":"a"}]}`,
			want: []hub.CaseSummary{{FileID: "a"}},
		},
		{
			name: "single object",
			body: `{"file_id":"b"}`,
			want: []hub.CaseSummary{{FileID: "b"}},
		},
		{
			name: "bare array with entries",
			body: `[{"case_id":"c1","category":"phishing","risk":0.8}]`,
			want: []hub.CaseSummary{{CaseID: "c1", Category: "phishing", Risk: 0.8}},
		},
		{
			name: "unrecognized shape falls back to empty",
			body: `{"weird":true}`,
			want: []hub.CaseSummary{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/cases/search" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tc.body))
			}))

			got, err := c.SearchCases(context.Background(), "")
			if err != nil {
				t.Fatalf("SearchCases: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("normalized cases mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTopEntitiesShapes(t *testing.T) {
	want := []hub.TopEntity{{Entity: "x", Count: 3}}

	bodies := map[string]string{
		"bare array":           `[{"entity":"x","count":3}]`,
		"top wrapper":          `{"total_entities":1,"top":[{"entity":"x","count":3}]}`,
		"top_entities wrapper": `{"top_entities":[{"entity":"x","count":3}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))

			got, err := c.TopEntities(context.Background())
			if err != nil {
				t.Fatalf("TopEntities: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("normalized entities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCaseClustersShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *hub.Clusters
	}{
		{
			name: "wrapped object",
			body: `{"total_clusters":1,"clusters":[["a.png","b.png"]]}`,
			want: &hub.Clusters{TotalClusters: 1, Clusters: [][]string{{"a.png", "b.png"}}},
		},
		{
			name: "bare array",
			body: `[["a.png","b.png"],["c.png","d.png"]]`,
			want: &hub.Clusters{TotalClusters: 2, Clusters: [][]string{{"a.png", "b.png"}, {"c.png", "d.png"}}},
		},
		{
			name: "no clusters",
			body: `{"total_clusters":0,"clusters":[]}`,
			want: &hub.Clusters{TotalClusters: 0, Clusters: [][]string{}},
		},
		{
			name: "unrecognized shape falls back to empty",
			body: `{"weird":true}`,
			want: &hub.Clusters{Clusters: [][]string{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/cases/clusters" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tc.body))
			}))

			got, err := c.CaseClusters(context.Background())
			if err != nil {
				t.Fatalf("CaseClusters: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("normalized clusters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEntityProfileNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Entity not found in any case"}`, http.StatusNotFound)
	}))

	_, err := c.EntityProfile(context.Background(), "ghost@example.com")
	if !errors.Is(err, cases.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if errors.Is(err, cases.ErrTransport) {
		t.Fatal("not-found must not be classified as transport failure")
	}
}

func TestUploadThenAnalyzeSameFileID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload-evidence", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("upload missing file field: %v", err)
		}
		w.Write([]byte(`{"file_id":"ev-42.png","sha256":"deadbeef"}`))
	})
	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("analyze form: %v", err)
		}
		id := r.FormValue("file_id")
		w.Write([]byte(`{"file_id":"` + id + `","analyzed_at":"2025-11-02 10:00:00"}`))
	})

	c, _ := newTestClient(t, mux)

	receipt, err := c.Upload(context.Background(), "evidence.png", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if receipt.FileID != "ev-42.png" {
		t.Fatalf("unexpected file id %q", receipt.FileID)
	}

	res, err := c.Analyze(context.Background(), receipt.FileID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.FileID != receipt.FileID {
		t.Errorf("analysis file id %q != upload file id %q", res.FileID, receipt.FileID)
	}
}

func TestAnalyzeUnknownIDIsNotFound(t *testing.T) {
	// backend lama balikin 200 + {"error": ...} untuk id yang tidak ada
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"File not found","file_id":""}`))
	}))

	_, err := c.Analyze(context.Background(), "missing.png")
	if !errors.Is(err, cases.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCachedResultUsesStaticPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"file_id":"e1.png"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.CachedResult(context.Background(), "e1.png")
	if err != nil {
		t.Fatalf("CachedResult: %v", err)
	}
	if res.FileID != "e1.png" {
		t.Errorf("unexpected file id %q", res.FileID)
	}
	if gotPath != "/data/analysis_cache/e1.png.json" {
		t.Errorf("cached lookup hit %q, want static analysis cache path", gotPath)
	}
}

func TestReportFailureIsReportGeneration(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Report(context.Background(), "e1.png")
	if !errors.Is(err, cases.ErrReportGeneration) {
		t.Fatalf("want ErrReportGeneration, got %v", err)
	}
}

func TestUnifiedReportIdempotent(t *testing.T) {
	const body = `{"batch_id":"b-7","summary":{"total_cases":2,"unique_entities":5,"average_risk":0.61,"dominant_category":"upi_fraud","categories":{"upi_fraud":2}},"cases":[{"file_id":"a"},{"file_id":"b"}]}`

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))

	first, err := c.UnifiedReport(context.Background(), "b-7")
	if err != nil {
		t.Fatalf("first UnifiedReport: %v", err)
	}
	second, err := c.UnifiedReport(context.Background(), "b-7")
	if err != nil {
		t.Fatalf("second UnifiedReport: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("unified report not idempotent (-first +second):\n%s", diff)
	}

	pdf1, err := c.UnifiedReportPDF(context.Background(), "b-7")
	if err != nil {
		t.Fatalf("first UnifiedReportPDF: %v", err)
	}
	pdf2, err := c.UnifiedReportPDF(context.Background(), "b-7")
	if err != nil {
		t.Fatalf("second UnifiedReportPDF: %v", err)
	}
	if !bytes.Equal(pdf1, pdf2) {
		t.Error("unified report payload differs between identical calls")
	}
}

func TestServerErrorIsTransport(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))

	_, err := c.SearchCases(context.Background(), "x")
	if !errors.Is(err, cases.ErrTransport) {
		t.Fatalf("want ErrTransport, got %v", err)
	}
}
