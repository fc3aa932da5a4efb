package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	appmetrics "github.com/tu-usuario/resto-metrics/internal/application/metrics"
	"github.com/tu-usuario/resto-metrics/internal/domain"
)

const dateLayout = "2006-01-02"

// MetricsService es lo que el handler necesita del motor de métricas.
type MetricsService interface {
	Compute(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error)
	ComputeChart(ctx context.Context, q appmetrics.ChartQuery) ([]dto.MonthlyChartPointDTO, error)
}

// MetricsHandler maneja los endpoints del dashboard financiero.
type MetricsHandler struct {
	svc MetricsService
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(svc MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

// Dashboard devuelve los KPIs del período para la selección de negocios.
// GET /api/metrics/dashboard?business_ids=b1,b2&from=2025-06-01&to=2025-06-15
//
// Sin from/to se asume el mes en curso hasta hoy. Respuesta: DashboardMetricsDTO.
func (h *MetricsHandler) Dashboard(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "tenant_id no encontrado en el token",
		})
	}

	businessIDs, ok := parseBusinessIDs(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "business_ids requerido (lista separada por comas)",
		})
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	}

	result, err := h.svc.Compute(c.Context(), appmetrics.Query{
		TenantID:    tenantID,
		BusinessIDs: businessIDs,
		From:        from,
		To:          to,
	})
	if err != nil {
		return metricsError(c, err)
	}
	return c.JSON(result)
}

// Chart devuelve el gráfico de tendencia de los últimos meses.
// GET /api/metrics/chart?business_ids=b1,b2
//
// Respuesta: lista de MonthlyChartPointDTO en orden ascendente, mes en curso al final.
func (h *MetricsHandler) Chart(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "tenant_id no encontrado en el token",
		})
	}

	businessIDs, ok := parseBusinessIDs(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "business_ids requerido (lista separada por comas)",
		})
	}

	points, err := h.svc.ComputeChart(c.Context(), appmetrics.ChartQuery{
		TenantID:    tenantID,
		BusinessIDs: businessIDs,
	})
	if err != nil {
		return metricsError(c, err)
	}
	return c.JSON(points)
}

// parseBusinessIDs lee business_ids como lista separada por comas, descartando
// vacíos. ok = false si no queda ningún id.
func parseBusinessIDs(c *fiber.Ctx) ([]string, bool) {
	raw := c.Query("business_ids")
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, len(ids) > 0
}

// parsePeriod lee from/to (YYYY-MM-DD). Sin ninguno de los dos, el período es
// el mes en curso hasta hoy. Con solo uno, o con from > to, es error.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		now := time.Now().UTC()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return from, to, nil
	}
	if fromRaw == "" || toRaw == "" {
		return time.Time{}, time.Time{}, errors.New("from y to deben enviarse juntos (YYYY-MM-DD)")
	}
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from inválido, formato YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to inválido, formato YYYY-MM-DD")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, errors.New("from no puede ser posterior a to")
	}
	return from, to, nil
}

// metricsError mapea errores del motor a códigos HTTP. Un timeout de fetch es
// 504: el cálculo se abortó completo, nunca hay KPIs parciales que devolver.
func metricsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFetchTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Code: "FETCH_TIMEOUT", Message: "las consultas del dashboard excedieron el tiempo máximo",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
