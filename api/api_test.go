package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pmj0612/shopscraper/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockInvoker implements Invoker for testing
type mockInvoker struct {
	defaultLimit int
	count        int
	err          error

	calls    int
	gotLimit int
	gotProxy string
}

var _ Invoker = (*mockInvoker)(nil)

func (m *mockInvoker) Invoke(ctx context.Context, pageLimit int, proxyURL string) (int, error) {
	m.calls++
	m.gotLimit = pageLimit
	m.gotProxy = proxyURL
	return m.count, m.err
}

func (m *mockInvoker) DefaultPageLimit() int {
	return m.defaultLimit
}

func doScrape(t *testing.T, invoker Invoker, target string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(context.Background(), invoker)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	h.Router().ServeHTTP(w, req)
	return w
}

func TestScrapeDefaults(t *testing.T) {
	invoker := &mockInvoker{defaultLimit: 5, count: 2}

	w := doScrape(t, invoker, "/scrape")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["updated_count"])

	assert.Equal(t, 1, invoker.calls)
	assert.Equal(t, 5, invoker.gotLimit)
	assert.Equal(t, "", invoker.gotProxy)
}

func TestScrapeQueryParams(t *testing.T) {
	invoker := &mockInvoker{defaultLimit: 5, count: 0}

	w := doScrape(t, invoker, "/scrape?page_limit=2&proxy=http://proxy.example.com:8080")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, invoker.gotLimit)
	assert.Equal(t, "http://proxy.example.com:8080", invoker.gotProxy)
}

func TestScrapeInvalidPageLimit(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			invoker := &mockInvoker{defaultLimit: 5}

			w := doScrape(t, invoker, "/scrape?page_limit="+raw)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, invoker.calls, "the run must not start on a rejected request")
		})
	}
}

func TestScrapeInvokerValidationError(t *testing.T) {
	invoker := &mockInvoker{
		defaultLimit: 5,
		err:          errors.NewConfiguration("fetcher", "invalid proxy url", nil),
	}

	w := doScrape(t, invoker, "/scrape?proxy=::bad::")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrapeRunFailure(t *testing.T) {
	invoker := &mockInvoker{defaultLimit: 5, err: context.Canceled}

	w := doScrape(t, invoker, "/scrape")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthz(t *testing.T) {
	h := NewHandler(context.Background(), &mockInvoker{defaultLimit: 5})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
