package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/application/dto"
	domainanalytics "github.com/sige-scm/sige-backend/internal/domain/analytics"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
	apphttp "github.com/sige-scm/sige-backend/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubAnalyticsRepo struct {
	indicators []repository.StockIndicatorResult
	kpis       repository.StockKPIResult
	top        []repository.TopProductResult
	carriers   []repository.CarrierPerformanceResult
	suppliers  []repository.SupplierQualityResult
	err        error
}

func (s *stubAnalyticsRepo) GetStockIndicators(context.Context, int) ([]repository.StockIndicatorResult, error) {
	return s.indicators, s.err
}

func (s *stubAnalyticsRepo) GetStockKPIs(context.Context) (repository.StockKPIResult, error) {
	return s.kpis, s.err
}

func (s *stubAnalyticsRepo) GetTopProducts(context.Context, int) ([]repository.TopProductResult, error) {
	return s.top, s.err
}

func (s *stubAnalyticsRepo) GetCarrierPerformance(context.Context) ([]repository.CarrierPerformanceResult, error) {
	return s.carriers, s.err
}

func (s *stubAnalyticsRepo) GetSupplierQuality(context.Context) ([]repository.SupplierQualityResult, error) {
	return s.suppliers, s.err
}

// stubSource entrega registros fijos; con block espera hasta que lo liberen.
type stubSource struct {
	records []domainanalytics.SourceRecord
	block   chan struct{}
}

func (s *stubSource) Read(context.Context) ([]domainanalytics.SourceRecord, error) {
	if s.block != nil {
		<-s.block
	}
	return s.records, nil
}

type stubOLAP struct{}

func (s *stubOLAP) RecreateSchema(context.Context) error { return nil }

func (s *stubOLAP) LoadStar(context.Context, domainanalytics.StarSchema) error { return nil }

type stubRunRepo struct {
	mu   sync.Mutex
	runs []entity.ETLRun
}

func (r *stubRunRepo) Start(_ context.Context, run *entity.ETLRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, *run)
	return nil
}

func (r *stubRunRepo) Finish(_ context.Context, run *entity.ETLRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
		}
	}
	return nil
}

func (r *stubRunRepo) Latest(context.Context) (*entity.ETLRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.runs) == 0 {
		return nil, nil
	}
	last := r.runs[len(r.runs)-1]
	return &last, nil
}

func (r *stubRunRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newAnalyticsApp(t *testing.T, repo repository.AnalyticsRepository, refresh *appanalytics.RefreshUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: appanalytics.NewDashboardUseCase(repo),
		RefreshUC:   refresh,
	})
	return app
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err, "decimal de prueba inválido: %s", s)
	return d
}

func srcRecord(sku string) domainanalytics.SourceRecord {
	return domainanalytics.SourceRecord{
		SKU:             sku,
		ProductType:     "haircare",
		Price:           25.5,
		UnitsSold:       100,
		Revenue:         2550.0,
		SupplierName:    "Supplier 1",
		Location:        "Mumbai",
		StockLevel:      58,
		ManufacturCost:  11.2,
		ShippingCarrier: "Carrier A",
		ShippingCost:    4.3,
		TransportMode:   "Road",
		DefectRate:      0.22,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/analytics/stock y /api/analytics/sales
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAnalyticsStock_RecomendacionesYKpis(t *testing.T) {
	repo := &stubAnalyticsRepo{
		indicators: []repository.StockIndicatorResult{
			{SKUID: "SKU0", ProductName: "haircare", StockLevel: 10, MonthlyTurnover: 2.5, StockoutRisk: 0.85},
		},
		kpis: repository.StockKPIResult{AvgStockoutRisk: 0.85, AvgMonthlyTurnover: 2.5},
	}
	app := newAnalyticsApp(t, repo, nil)

	resp := getJSON(t, app, "/api/analytics/stock")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StockAnalyticsResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out.Items, 1)
	assert.Contains(t, out.Items[0].Recommendation, "ACCIÓN CRÍTICA")
	assert.InDelta(t, 0.85, out.KPIs.AvgStockoutRisk, 1e-9)
}

func TestGetAnalyticsStock_ErrorDeConsulta(t *testing.T) {
	repo := &stubAnalyticsRepo{err: errors.New("conexión caída")}
	app := newAnalyticsApp(t, repo, nil)

	resp := getJSON(t, app, "/api/analytics/stock")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INTERNAL")
}

func TestGetAnalyticsSales_PanelCompleto(t *testing.T) {
	repo := &stubAnalyticsRepo{
		top: []repository.TopProductResult{
			{SKUID: "SKU0", ProductName: "haircare", TotalRevenue: decimalFrom(t, "9100.50"), UnitsSold: 802},
			{SKUID: "SKU1", ProductName: "skincare", TotalRevenue: decimalFrom(t, "7500.00"), UnitsSold: 736},
		},
		carriers: []repository.CarrierPerformanceResult{
			{CarrierID: "CAR_0", CarrierName: "Carrier A", AvgShippingCost: decimalFrom(t, "10.00"), OnTimeRate: 0.95},
		},
		suppliers: []repository.SupplierQualityResult{
			{SupplierID: "FORN_0", SupplierName: "Supplier 1", Location: "Mumbai", AvgDefectRate: 0.02},
		},
	}
	app := newAnalyticsApp(t, repo, nil)

	resp := getJSON(t, app, "/api/analytics/sales")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.SalesAnalyticsResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out.TopProducts, 2)
	assert.Contains(t, out.TopProducts[0].Highlight, "PRODUCTO ESTRELLA")
	assert.NotContains(t, out.TopProducts[1].Highlight, "PRODUCTO ESTRELLA")
	require.Len(t, out.Carriers, 1)
	assert.NotEmpty(t, out.Carriers[0].Decision)
	require.Len(t, out.Suppliers, 1)
	assert.Contains(t, out.Suppliers[0].SuggestedAction, "RECOMENDADO")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/analytics/refresh y GET /api/analytics/refresh/latest
// ──────────────────────────────────────────────────────────────────────────────

func TestPostAnalyticsRefresh_CorridaExitosa(t *testing.T) {
	runRepo := &stubRunRepo{}
	refresh := appanalytics.NewRefreshUseCase(
		&stubSource{records: []domainanalytics.SourceRecord{srcRecord("SKU0"), srcRecord("SKU1")}},
		&stubOLAP{},
		runRepo,
		nil,
	)
	app := newAnalyticsApp(t, &stubAnalyticsRepo{}, refresh)

	resp := postJSON(t, app, "/api/analytics/refresh", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.RefreshRunResponse
	decodeJSON(t, resp, &out)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.ETLRunStatusOK, out.Status)
	assert.Equal(t, 2, out.SourceRows)
	assert.Equal(t, 2, out.SalesRows)
	require.NotNil(t, out.FinishedAt)

	// Y la corrida queda disponible en /latest.
	latest := getJSON(t, app, "/api/analytics/refresh/latest")
	assert.Equal(t, http.StatusOK, latest.StatusCode)
	var persisted dto.RefreshRunResponse
	decodeJSON(t, latest, &persisted)
	assert.Equal(t, out.ID, persisted.ID)
}

func TestPostAnalyticsRefresh_CorridaEnCurso(t *testing.T) {
	gate := make(chan struct{})
	runRepo := &stubRunRepo{}
	refresh := appanalytics.NewRefreshUseCase(
		&stubSource{records: []domainanalytics.SourceRecord{srcRecord("SKU0")}, block: gate},
		&stubOLAP{},
		runRepo,
		nil,
	)
	app := newAnalyticsApp(t, &stubAnalyticsRepo{}, refresh)

	// Primera corrida en vuelo, frenada en la extracción.
	type result struct {
		code int
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/refresh", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			resCh <- result{err: err}
			return
		}
		resp.Body.Close()
		resCh <- result{code: resp.StatusCode}
	}()
	require.Eventually(t, func() bool { return runRepo.count() > 0 }, time.Second, time.Millisecond,
		"la primera corrida debe quedar registrada antes de seguir")

	// Segunda corrida mientras la primera sigue viva: rechazada.
	resp := postJSON(t, app, "/api/analytics/refresh", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "REFRESH_IN_PROGRESS")

	close(gate)
	first := <-resCh
	require.NoError(t, first.err)
	assert.Equal(t, http.StatusOK, first.code)
}

func TestGetAnalyticsRefreshLatest_SinCorridas(t *testing.T) {
	refresh := appanalytics.NewRefreshUseCase(&stubSource{}, &stubOLAP{}, &stubRunRepo{}, nil)
	app := newAnalyticsApp(t, &stubAnalyticsRepo{}, refresh)

	resp := getJSON(t, app, "/api/analytics/refresh/latest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "NOT_FOUND")
}
