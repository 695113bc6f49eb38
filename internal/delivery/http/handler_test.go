package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/backend/config"
	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/ledger"
	"github.com/shoplens/backend/internal/usecase"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.FileStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := ledger.Open(filepath.Join(t.TempDir(), "clicks.json"))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.RateLimit.RedirectPerMinute = 1000

	links := usecase.NewLinkBuilder("http://localhost:8080", "test-20")
	handler := NewHandler(nil, links, store)
	return SetupRouter(cfg, handler), store
}

func TestRedirectRecordsClickAndForwards(t *testing.T) {
	router, store := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go?product=Blue+Mug&domain=www.amazon.fr&uid=42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://www.amazon.fr/s?k=Blue%20Mug&tag=test-20", w.Header().Get("Location"))

	snap := store.Snapshot()
	require.Contains(t, snap, "42")
	assert.Equal(t, 1, snap["42"].Total)
	assert.Equal(t, 1, snap["42"].ByProduct["blue mug"])
}

func TestRedirectAppliesDefaults(t *testing.T) {
	router, store := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://www.amazon.com/s?k=&tag=test-20", w.Header().Get("Location"))

	snap := store.Snapshot()
	require.Contains(t, snap, "anon")
	assert.Equal(t, 1, snap["anon"].Total)
}

func TestRedirectWithoutLedgerFailsPlainText(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.RateLimit.RedirectPerMinute = 1000

	links := usecase.NewLinkBuilder("http://localhost:8080", "test-20")
	router := SetupRouter(cfg, NewHandler(nil, links, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/go?product=x", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestClicksReturnsFullLedger(t *testing.T) {
	router, store := newTestRouter(t)
	require.NoError(t, store.Increment("42", "Blue Mug"))
	require.NoError(t, store.Increment("42", "Toaster"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clicks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var snap domain.LedgerSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap["42"].Total)
	assert.Equal(t, 1, snap["42"].ByProduct["blue mug"])
	assert.Equal(t, 1, snap["42"].ByProduct["toaster"])
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookAcceptsUpdate(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"update_id": 1, "message": {"message_id": 2, "chat": {"id": 10}, "text": "hi"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedirectRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := ledger.Open(filepath.Join(t.TempDir(), "clicks.json"))
	require.NoError(t, err)

	links := usecase.NewLinkBuilder("http://localhost:8080", "test-20")
	handler := NewHandler(nil, links, store)

	router := gin.New()
	router.GET("/go", RateLimitMiddleware(2, time.Minute), handler.Redirect)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/go?product=x&uid=42", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusFound, http.StatusFound, http.StatusTooManyRequests}, codes)
}
