package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightdash/config"
	"github.com/Domenick1991/flightdash/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFlightService struct {
	records   []domain.FlightRecord
	listErr   error
	version   string
	verErr    error
	listPanic string
}

func (s *stubFlightService) List(ctx context.Context) ([]domain.FlightRecord, error) {
	if s.listPanic != "" {
		panic(s.listPanic)
	}
	return s.records, s.listErr
}

func (s *stubFlightService) TestConnection(ctx context.Context) (string, error) {
	return s.version, s.verErr
}

func newTestRouter(t *testing.T, svc *stubFlightService) (*gin.Engine, string) {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "dashboard.html"), []byte("<html>dashboard</html>"), 0o644))

	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.StaticDir = staticDir

	engine, err := NewRouter(cfg, zap.NewNop(), svc)
	require.NoError(t, err)
	return engine, staticDir
}

func TestRouter_StaticFileWithCORS(t *testing.T) {
	engine, _ := newTestRouter(t, &stubFlightService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/dashboard.html", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>dashboard</html>", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestRouter_UnknownPathStillGetsCORS(t *testing.T) {
	engine, _ := newTestRouter(t, &stubFlightService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-page.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Body.String())
}

func TestRouter_TraversalOutsideRootRejected(t *testing.T) {
	engine, staticDir := newTestRouter(t, &stubFlightService{})

	// place a file next to, not inside, the served root
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(staticDir), "secret.txt"), []byte("secret"), 0o644))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/../secret.txt", nil))

	assert.NotEqual(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRouter_APIFlights(t *testing.T) {
	svc := &stubFlightService{
		records: []domain.FlightRecord{
			{
				{Name: "id", Value: int64(1)},
				{Name: "date", Value: "2024-01-01T00:00:00"},
				{Name: "from", Value: "JFK"},
				{Name: "to", Value: "LAX"},
				{Name: "price", Value: 199.99},
				{Name: "duration", Value: int64(330)},
			},
		},
	}
	engine, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/flights", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[{"id":1,"date":"2024-01-01T00:00:00","from":"JFK","to":"LAX","price":199.99,"duration":330}]`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PanicBecomesJSONError(t *testing.T) {
	engine, _ := newTestRouter(t, &stubFlightService{listPanic: "boom"})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/flights", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Unexpected server error")

	// the engine keeps serving after a panic
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/dashboard.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_OptionsPreflight(t *testing.T) {
	engine, _ := newTestRouter(t, &stubFlightService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api/flights", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	engine, _ := newTestRouter(t, &stubFlightService{})

	req := httptest.NewRequest("GET", "/dashboard.html", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/dashboard.html", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
