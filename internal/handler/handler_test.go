package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tangkhul/internal/domain"
	"tangkhul/internal/testutil"

	"github.com/stretchr/testify/assert"
)

type stubTranslator struct {
	result *domain.Result
	err    error

	gotText       string
	gotSourceLang string
	gotTargetLang string
}

func (s *stubTranslator) Resolve(text, sourceLang, targetLang string) (*domain.Result, error) {
	s.gotText = text
	s.gotSourceLang = sourceLang
	s.gotTargetLang = targetLang
	return s.result, s.err
}

type stubAnalytics struct {
	records []*domain.RequestLog
}

func (s *stubAnalytics) Log(rec *domain.RequestLog) {
	s.records = append(s.records, rec)
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping() error { return s.err }

func newTestServer(resolver translator, analytics requestLogger, db pinger) *httptest.Server {
	h := NewHandler(resolver, analytics, db, testutil.NewTestLogger())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return httptest.NewServer(mux)
}

func postTranslate(t *testing.T, server *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/translate", "application/json", bytes.NewBufferString(body))
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()
	return resp, decoded
}

func TestHandleTranslate_Success(t *testing.T) {
	resolver := &stubTranslator{
		result: &domain.Result{
			TranslatedText: "Ngala",
			Confidence:     100,
			Method:         domain.MethodExactMatch,
			Metadata:       map[string]any{"entry_id": 1},
		},
	}
	analytics := &stubAnalytics{}
	server := newTestServer(resolver, analytics, &stubPinger{})
	defer server.Close()

	resp, body := postTranslate(t, server,
		`{"text": "Hello", "source_language": "english", "target_language": "tangkhul"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ngala", body["translated_text"])
	assert.Equal(t, float64(100), body["confidence_score"])
	assert.Equal(t, "exact_match", body["method"])
	assert.Contains(t, body, "response_time_ms")

	assert.Equal(t, "Hello", resolver.gotText)
	assert.Equal(t, "english", resolver.gotSourceLang)

	// Every request is observable for analytics
	assert.Len(t, analytics.records, 1)
	assert.Equal(t, domain.MethodExactMatch, analytics.records[0].Method)
	assert.False(t, analytics.records[0].Failed)
}

func TestHandleTranslate_CacheHitFlagsAnalytics(t *testing.T) {
	resolver := &stubTranslator{
		result: &domain.Result{
			TranslatedText: "Ngala",
			Confidence:     100,
			Method:         domain.MethodCacheHit,
		},
	}
	analytics := &stubAnalytics{}
	server := newTestServer(resolver, analytics, &stubPinger{})
	defer server.Close()

	resp, _ := postTranslate(t, server,
		`{"text": "Hello", "source_language": "english", "target_language": "tangkhul"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, analytics.records, 1)
	assert.True(t, analytics.records[0].CacheHit)
}

func TestHandleTranslate_Errors(t *testing.T) {
	tests := []struct {
		name           string
		resolverErr    error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "validation error",
			resolverErr:    &domain.ValidationError{Field: "text"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "validation failed",
		},
		{
			name:           "not found",
			resolverErr:    &domain.NotFoundError{},
			expectedStatus: http.StatusNotFound,
			expectedError:  "no match found",
		},
		{
			name:           "empty corpus distinct from not found",
			resolverErr:    domain.ErrNoData,
			expectedStatus: http.StatusNotFound,
			expectedError:  "no translation data available",
		},
		{
			name:           "storage unavailable",
			resolverErr:    fmt.Errorf("partial stage: %w: timeout", domain.ErrStorageUnavailable),
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "translation storage unavailable",
		},
		{
			name:           "unexpected error is generic",
			resolverErr:    fmt.Errorf("sensitive internal detail"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubTranslator{err: tt.resolverErr}
			analytics := &stubAnalytics{}
			server := newTestServer(resolver, analytics, &stubPinger{})
			defer server.Close()

			resp, body := postTranslate(t, server,
				`{"text": "anything", "source_language": "english", "target_language": "tangkhul"}`)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, tt.expectedError, body["error"])

			// Internals never leak through the generic message
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, body, "details")
			}

			// Failures are logged for analytics too
			assert.Len(t, analytics.records, 1)
			assert.True(t, analytics.records[0].Failed)
		})
	}
}

func TestHandleTranslate_NotFoundCarriesSuggestions(t *testing.T) {
	resolver := &stubTranslator{
		err: &domain.NotFoundError{
			Suggestions: []domain.Alternative{
				{Text: "Aphan", Confidence: 80, Source: "good morning"},
			},
		},
	}
	analytics := &stubAnalytics{}
	server := newTestServer(resolver, analytics, &stubPinger{})
	defer server.Close()

	resp, body := postTranslate(t, server,
		`{"text": "good mornin", "source_language": "english", "target_language": "tangkhul"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	suggestions, ok := body["suggestions"].([]any)
	assert.True(t, ok)
	assert.Len(t, suggestions, 1)
	first := suggestions[0].(map[string]any)
	assert.Equal(t, "Aphan", first["text"])
	assert.Equal(t, "good morning", first["source"])
}

func TestHandleTranslate_BadBody(t *testing.T) {
	server := newTestServer(&stubTranslator{}, &stubAnalytics{}, &stubPinger{})
	defer server.Close()

	resp, body := postTranslate(t, server, `{not json`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestHandleTranslate_MethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubTranslator{}, &stubAnalytics{}, &stubPinger{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/translate")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "healthy", pingErr: nil, expectedStatus: http.StatusOK},
		{name: "database down", pingErr: fmt.Errorf("dial tcp: refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(&stubTranslator{}, &stubAnalytics{}, &stubPinger{err: tt.pingErr})
			defer server.Close()

			resp, err := http.Get(server.URL + "/healthz")
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
		})
	}
}
