// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/linkresolver/internal/fetch"
	"github.com/pdiddy/linkresolver/internal/page"
	"github.com/pdiddy/linkresolver/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubSource returns canned records or an error and records each query.
type stubSource struct {
	mu      sync.Mutex
	queries []url.Values
	records []types.LinkRecord
	err     error
	gate    chan struct{}
}

func (s *stubSource) Fetch(ctx context.Context, q url.Values) ([]types.LinkRecord, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.records, s.err
}

func (s *stubSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

var testRecord = types.CitationRecord{Genre: "Article", ArticleTitle: "Test Article Title", ISSN: "1234-5678"}

func newTestServer(src LinkSource, renderTimeout time.Duration) *gin.Engine {
	cfg := types.ResolverConfig{RenderTimeout: renderTimeout}
	return New(testRecord, src, cfg, nil).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func TestResultsPageSuccess(t *testing.T) {
	src := &stubSource{records: []types.LinkRecord{
		{TargetPublicName: "X Journal", TargetURL: "https://x"},
		{TargetPublicName: "Y Archive", TargetURL: "https://y"},
	}}
	h := newTestServer(src, time.Second)

	w := get(t, h, "/?rft.genre=article&rft.issn=1234-5678")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc := parse(t, w)
	assert.Equal(t, 2, doc.Find(".link").Length())
	assert.Equal(t, "X Journal", doc.Find(".link a").First().Text())
	assert.Equal(t, 0, doc.Find(".no-results").Length())
	assert.Equal(t, 1, doc.Find(".ask-librarian").Length())
	assert.Equal(t, "Test Article Title", doc.Find("h2.title").Text())

	require.Equal(t, 1, src.calls(), "one fetch per page view")
	assert.Equal(t, "1234-5678", src.queries[0].Get("rft.issn"))
}

func TestResultsPageError(t *testing.T) {
	src := &stubSource{err: errors.New("network down")}
	doc := parse(t, get(t, newTestServer(src, time.Second), "/"))

	assert.Equal(t, "network down", doc.Find(".error").Text())
	assert.Equal(t, page.NoResultsText, doc.Find(".no-results p").Text())
	assert.Equal(t, 1, doc.Find(".ask-librarian").Length())
}

func TestResultsPageEmpty(t *testing.T) {
	src := &stubSource{records: []types.LinkRecord{}}
	doc := parse(t, get(t, newTestServer(src, time.Second), "/"))

	assert.Equal(t, 1, doc.Find(".no-results").Length())
	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, 1, doc.Find(".ask-librarian").Length())
}

func TestResultsPageRendersLoadingAfterTimeout(t *testing.T) {
	src := &stubSource{gate: make(chan struct{})}
	defer close(src.gate)

	doc := parse(t, get(t, newTestServer(src, 20*time.Millisecond), "/"))

	assert.Equal(t, page.LoadingText, doc.Find(".loader").Text())
	assert.Equal(t, 0, doc.Find(".ask-librarian").Length())
	assert.Equal(t, 0, doc.Find(".no-results").Length())
	assert.Equal(t, 1, doc.Find("h2.title").Length())
}

func TestEachRequestIsOneMount(t *testing.T) {
	src := &stubSource{records: []types.LinkRecord{}}
	h := newTestServer(src, time.Second)

	get(t, h, "/")
	get(t, h, "/")
	assert.Equal(t, 2, src.calls())
}

func TestLinksStateJSON(t *testing.T) {
	src := &stubSource{records: []types.LinkRecord{{TargetPublicName: "X Journal", TargetURL: "https://x"}}}
	h := newTestServer(src, time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/links?rft.genre=article", nil)
	req.Header.Set("Origin", "https://frontend.example")
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var st fetch.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, fetch.PhaseSuccess, st.Phase)
	require.Len(t, st.Resource, 1)
	assert.Equal(t, "https://x", st.Resource[0].TargetURL)
}

func TestLinksStateEmptyIncludesResource(t *testing.T) {
	w := get(t, newTestServer(&stubSource{records: []types.LinkRecord{}}, time.Second), "/api/v1/links")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"phase":"success","resource":[]}`, w.Body.String())
}

func TestCitationCSL(t *testing.T) {
	w := get(t, newTestServer(&stubSource{}, time.Second), "/citation.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "yaml")
	assert.Contains(t, w.Body.String(), "title: Test Article Title")
	assert.Contains(t, w.Body.String(), "ISSN: 1234-5678")
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(&stubSource{}, time.Second), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(&stubSource{records: []types.LinkRecord{}}, time.Second)
	get(t, h, "/")

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"))
	assert.True(t, strings.Contains(body, `link_fetches_total{outcome="empty"}`))
}

func TestRequestID(t *testing.T) {
	h := newTestServer(&stubSource{}, time.Second)

	w := get(t, h, "/health")
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, incoming)
	h.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	h.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(requestIDHeader))
}
