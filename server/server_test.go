package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"comment-pulse/analysis"
	"comment-pulse/internal/models"
	"comment-pulse/shared/ai"
	"comment-pulse/shared/monitoring"
	"comment-pulse/shared/storage"
	"comment-pulse/youtube"
)

type stubAnalyzer struct {
	id  string
	err error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, videoURL string) (string, error) {
	return s.id, s.err
}

type stubFinder struct {
	report *models.AnalysisReport
	err    error
}

func (s *stubFinder) FindByID(ctx context.Context, id string) (*models.AnalysisReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func postAnalyze(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	srv := New(&stubAnalyzer{id: "report-42"}, &stubFinder{}, monitoring.NewMonitor())

	w := postAnalyze(t, srv, `{"video_url": "https://youtu.be/abc123"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["id"] != "report-42" {
		t.Errorf("id = %q, want %q", resp["id"], "report-42")
	}
}

func TestHandleAnalyzeMissingURL(t *testing.T) {
	srv := New(&stubAnalyzer{}, &stubFinder{}, monitoring.NewMonitor())

	w := postAnalyze(t, srv, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "Invalid URL",
			err:        youtube.ErrInvalidVideoURL,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "No comments",
			err:        analysis.ErrNoComments,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Comments unavailable",
			err:        fmt.Errorf("%w: provider returned 403: quota exceeded", youtube.ErrCommentsUnavailable),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "Nothing classified",
			err:        analysis.ErrNothingClassified,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "Unexpected failure",
			err:        fmt.Errorf("failed to persist analysis: disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&stubAnalyzer{err: tt.err}, &stubFinder{}, monitoring.NewMonitor())

			w := postAnalyze(t, srv, `{"video_url": "https://youtu.be/abc123"}`)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleAnalyzeInvalidAPIKeyHidesDetails(t *testing.T) {
	err := fmt.Errorf("%w: googleapi: Error 400: API key not valid", ai.ErrInvalidAPIKey)
	srv := New(&stubAnalyzer{err: err}, &stubFinder{}, monitoring.NewMonitor())

	w := postAnalyze(t, srv, `{"video_url": "https://youtu.be/abc123"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "API key") {
		t.Errorf("response leaks the provider error: %s", body)
	}
	if !strings.Contains(body, "sentiment analysis service") {
		t.Errorf("response missing the generic degraded-service message: %s", body)
	}
}

func TestHandleGetAnalysis(t *testing.T) {
	report := &models.AnalysisReport{
		ID:            "report-42",
		VideoURL:      "https://youtu.be/abc123",
		TotalComments: 3,
		CreatedAt:     time.Now(),
	}
	srv := New(&stubAnalyzer{}, &stubFinder{report: report}, monitoring.NewMonitor())

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/report-42", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got models.AnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.ID != "report-42" || got.TotalComments != 3 {
		t.Errorf("report = %+v", got)
	}
}

func TestHandleGetAnalysisNotFound(t *testing.T) {
	srv := New(&stubAnalyzer{}, &stubFinder{err: storage.ErrReportNotFound}, monitoring.NewMonitor())

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/missing", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	monitor := monitoring.NewMonitor()
	srv := New(&stubAnalyzer{}, &stubFinder{}, monitor)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w
	}

	if w := get(); w.Code != http.StatusOK {
		t.Errorf("status before any run = %d, want 200", w.Code)
	}

	monitor.RecordCriticalFailure(fmt.Errorf("boom"), time.Second)
	if w := get(); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status after critical failure = %d, want 503", w.Code)
	}

	monitor.RecordSuccess("analyzed https://youtu.be/abc123", time.Second)
	if w := get(); w.Code != http.StatusOK {
		t.Errorf("status after recovery = %d, want 200", w.Code)
	}
}
