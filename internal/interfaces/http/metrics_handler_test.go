package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	appmetrics "github.com/tu-usuario/resto-metrics/internal/application/metrics"
	"github.com/tu-usuario/resto-metrics/internal/domain"
	apphttp "github.com/tu-usuario/resto-metrics/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/resto-metrics/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "resto-metrics-test"
	testExpMin    = 60
)

// stubMetrics implementa MetricsService con respuestas fijas y captura la
// última query recibida.
type stubMetrics struct {
	result    *dto.DashboardMetricsDTO
	points    []dto.MonthlyChartPointDTO
	err       error
	lastQuery appmetrics.Query
}

func (s *stubMetrics) Compute(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubMetrics) ComputeChart(ctx context.Context, q appmetrics.ChartQuery) ([]dto.MonthlyChartPointDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

func buildTestApp(svc apphttp.MetricsService) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Metrics:   apphttp.NewMetricsHandler(svc),
		JWTSecret: testJWTSecret,
	})
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_SinTokenDevuelve401(t *testing.T) {
	app := buildTestApp(&stubMetrics{})

	resp := doRequest(t, app, "/api/metrics/dashboard?business_ids=b1", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestDashboard_TokenInvalidoDevuelve401(t *testing.T) {
	app := buildTestApp(&stubMetrics{})

	resp := doRequest(t, app, "/api/metrics/dashboard?business_ids=b1", "Bearer no-es-un-jwt")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_RespuestaYQuery(t *testing.T) {
	stub := &stubMetrics{result: &dto.DashboardMetricsDTO{
		TotalIncome:     decimal.RequireFromString("3540"),
		IncomeBeforeVAT: decimal.RequireFromString("3000"),
	}}
	app := buildTestApp(stub)

	resp := doRequest(t, app,
		"/api/metrics/dashboard?business_ids=b1,%20b2&from=2025-06-01&to=2025-06-15",
		validToken(t))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// El tenant sale del token, los negocios de la query (con espacios limpiados).
	assert.Equal(t, testTenantID, stub.lastQuery.TenantID)
	assert.Equal(t, []string{"b1", "b2"}, stub.lastQuery.BusinessIDs)
	assert.Equal(t, "2025-06-01", stub.lastQuery.From.Format("2006-01-02"))
	assert.Equal(t, "2025-06-15", stub.lastQuery.To.Format("2006-01-02"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got dto.DashboardMetricsDTO
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.TotalIncome.Equal(decimal.RequireFromString("3540")))
}

func TestDashboard_SinBusinessIDsDevuelve400(t *testing.T) {
	app := buildTestApp(&stubMetrics{})

	resp := doRequest(t, app, "/api/metrics/dashboard", validToken(t))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))
}

func TestDashboard_FechasInvalidasDevuelve400(t *testing.T) {
	app := buildTestApp(&stubMetrics{})

	cases := []string{
		"/api/metrics/dashboard?business_ids=b1&from=2025-06-01",          // to faltante
		"/api/metrics/dashboard?business_ids=b1&from=junio&to=2025-06-15", // formato
		"/api/metrics/dashboard?business_ids=b1&from=2025-06-20&to=2025-06-01",
	}
	for _, target := range cases {
		resp := doRequest(t, app, target, validToken(t))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestDashboard_TimeoutDeFetchDevuelve504(t *testing.T) {
	app := buildTestApp(&stubMetrics{err: domain.ErrFetchTimeout})

	resp := doRequest(t, app, "/api/metrics/dashboard?business_ids=b1", validToken(t))

	assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "FETCH_TIMEOUT", errorCode(t, resp))
}

func TestDashboard_ErrorGenericoDevuelve500(t *testing.T) {
	app := buildTestApp(&stubMetrics{err: errors.New("conexión rechazada")})

	resp := doRequest(t, app, "/api/metrics/dashboard?business_ids=b1", validToken(t))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gráfico de tendencia
// ──────────────────────────────────────────────────────────────────────────────

func TestChart_DevuelvePuntosEnOrden(t *testing.T) {
	stub := &stubMetrics{points: []dto.MonthlyChartPointDTO{
		{MonthKey: "2025-05"},
		{MonthKey: "2025-06"},
	}}
	app := buildTestApp(stub)

	resp := doRequest(t, app, "/api/metrics/chart?business_ids=b1", validToken(t))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got []dto.MonthlyChartPointDTO
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2025-05", got[0].MonthKey)
	assert.Equal(t, "2025-06", got[1].MonthKey)
}

func TestChart_SinBusinessIDsDevuelve400(t *testing.T) {
	app := buildTestApp(&stubMetrics{})

	resp := doRequest(t, app, "/api/metrics/chart", validToken(t))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))
}
