package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskreg/riskreg/internal/metrics"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(store.NewMemory(), nil, Options{
		Version: "test",
		Metrics: metrics.NewCollector("riskreg"),
	})
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, srv *Server) {
	t.Helper()
	for _, body := range []string{
		`{"asset":"DB","threat":"Access","likelihood":3,"impact":4}`,
		`{"asset":"Web","threat":"DDoS","likelihood":5,"impact":5}`,
		`{"asset":"Wiki","threat":"Defacement","likelihood":1,"impact":2}`,
	} {
		w := do(t, srv, http.MethodPost, "/assess-risk", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestAssessRisk(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/assess-risk", `{"asset":" DB ","threat":"Access","likelihood":3,"impact":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "DB", got.Asset)
	assert.Equal(t, 12, got.Score)
	assert.Equal(t, risk.LevelMedium, got.Level)
}

func TestAssessRiskRejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "rating above range", body: `{"asset":"DB","threat":"Access","likelihood":6,"impact":1}`},
		{name: "rating below range", body: `{"asset":"DB","threat":"Access","likelihood":1,"impact":0}`},
		{name: "blank asset", body: `{"asset":"  ","threat":"Access","likelihood":1,"impact":1}`},
		{name: "missing threat", body: `{"asset":"DB","likelihood":1,"impact":1}`},
		{name: "malformed body", body: `{"asset":`},
		{name: "wrong type", body: `{"asset":"DB","threat":"x","likelihood":"high","impact":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/assess-risk", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
		})
	}

	w := do(t, srv, http.MethodGet, "/risks", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListRisks(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	w := do(t, srv, http.MethodGet, "/risks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	w = do(t, srv, http.MethodGet, "/risks?level=critical", "")
	require.Equal(t, http.StatusOK, w.Code)
	var critical []risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &critical))
	require.Len(t, critical, 1)
	assert.Equal(t, "Web", critical[0].Asset)

	w = do(t, srv, http.MethodGet, "/risks?level=Severe", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSummaryAndMatrix(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	w := do(t, srv, http.MethodGet, "/risks/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, float64(3), sum["total"])
	assert.Equal(t, float64(1), sum["high_critical_count"])
	assert.Equal(t, float64(13), sum["average_score"])

	w = do(t, srv, http.MethodGet, "/risks/matrix", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cells []cellResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cells))
	require.Len(t, cells, 25)

	occupied := 0
	for _, c := range cells {
		occupied += c.Count
		if c.Likelihood == 5 && c.Impact == 5 {
			assert.Equal(t, []string{"Web"}, c.Members)
			assert.Equal(t, risk.LevelCritical, c.Level)
		}
	}
	assert.Equal(t, 3, occupied)
}

func TestExportRisks(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	w := do(t, srv, http.MethodGet, "/risks/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="risks.csv"`, w.Header().Get("Content-Disposition"))
	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"2","Web","DDoS","5","5","25","Critical"`, lines[1])
	assert.Equal(t, `"3","Wiki","Defacement","1","2","2","Low"`, lines[3])

	w = do(t, srv, http.MethodGet, "/risks/export?sort=asset&dir=asc&level=Low", "")
	require.Equal(t, http.StatusOK, w.Code)
	lines = strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"3","Wiki"`))

	w = do(t, srv, http.MethodGet, "/risks/export?format=sarif", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="risks.sarif"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "risk/critical")

	for _, target := range []string{
		"/risks/export?format=pdf",
		"/risks/export?sort=owner",
		"/risks/export?dir=up",
	} {
		w = do(t, srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, target)
	}
}

func TestDeleteRisk(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	w := do(t, srv, http.MethodDelete, "/risks/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, http.MethodDelete, "/risks/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodDelete, "/risks/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, srv, http.MethodPost, "/assess-risk", `{"asset":"New","threat":"t","likelihood":1,"impact":1}`)
	var got risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got.ID)
}

func TestHealthAndMiddleware(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))

	w = do(t, srv, http.MethodOptions, "/risks", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "riskreg_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	srv := New(store.NewMemory(), nil, Options{})
	w := do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLevelFilterUsesRestampedLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risks.db")
	st, err := store.New(store.DriverSQLite, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	db, err := sql.Open(store.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO risks (asset, threat, likelihood, impact, score, level) VALUES ('Web', 'DDoS', 5, 5, 1, 'Low')`)
	require.NoError(t, err)

	srv := New(st, nil, Options{})

	w := do(t, srv, http.MethodGet, "/risks?level=Low", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, srv, http.MethodGet, "/risks?level=Critical", "")
	require.Equal(t, http.StatusOK, w.Code)
	var critical []risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &critical))
	require.Len(t, critical, 1)
	assert.Equal(t, 25, critical[0].Score)
	assert.Equal(t, risk.LevelCritical, critical[0].Level)

	w = do(t, srv, http.MethodGet, "/risks/summary?level=Low", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, float64(0), sum["total"])

	w = do(t, srv, http.MethodGet, "/risks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, risk.LevelCritical, got.Level)
}

func TestGetRisk(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	w := do(t, srv, http.MethodGet, "/risks/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got risk.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Web", got.Asset)
	assert.Equal(t, 25, got.Score)

	w = do(t, srv, http.MethodGet, "/risks/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/risks/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, srv, http.MethodGet, "/risks/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
