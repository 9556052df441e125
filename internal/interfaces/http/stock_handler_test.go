package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sige-scm/sige-backend/internal/application/dto"
	"github.com/sige-scm/sige-backend/internal/application/stock"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
	"github.com/sige-scm/sige-backend/internal/infrastructure/excel"
	apphttp "github.com/sige-scm/sige-backend/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para los tests de handlers
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementa TxRunner y LedgerRepository sobre mapas. No simula
// rollbacks: la atomicidad del libro se prueba en el paquete de aplicación;
// acá solo interesa el mapeo HTTP.
type memStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	balances map[string]entity.Balance
	movs     []entity.Movement
	lastID   int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]entity.Product),
		balances: make(map[string]entity.Balance),
	}
}

func (s *memStore) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.BalanceRepository,
	repository.MovementRepository,
) error) error {
	return fn(memProducts{s}, memBalances{s}, memMovements{s})
}

func (s *memStore) CheckConsistency(context.Context) ([]repository.LedgerMismatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(map[string]int64)
	for _, m := range s.movs {
		sums[m.SKU] += m.SignedQuantity()
	}
	var out []repository.LedgerMismatch
	for sku, b := range s.balances {
		if b.Quantity != sums[sku] || b.Quantity < 0 {
			out = append(out, repository.LedgerMismatch{SKU: sku, Balance: b.Quantity, MovementSum: sums[sku]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// corruptBalance pisa el saldo por fuera del libro, para simular corrupción.
func (s *memStore) corruptBalance(sku string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.balances[sku]
	b.SKU = sku
	b.Quantity = qty
	s.balances[sku] = b
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.SKU] = *p
	return nil
}

func (r memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[sku]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) ListWithBalances(context.Context) ([]repository.ProductWithBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	skus := make([]string, 0, len(r.s.products))
	for sku := range r.s.products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	out := make([]repository.ProductWithBalance, 0, len(skus))
	for _, sku := range skus {
		b := r.s.balances[sku]
		out = append(out, repository.ProductWithBalance{
			Product:          r.s.products[sku],
			Balance:          b.Quantity,
			BalanceUpdatedAt: b.UpdatedAt,
		})
	}
	return out, nil
}

type memBalances struct{ s *memStore }

func (r memBalances) Get(_ context.Context, sku string) (*entity.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.balances[sku]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBalances) GetForUpdate(ctx context.Context, sku string) (*entity.Balance, error) {
	return r.Get(ctx, sku)
}

func (r memBalances) Create(_ context.Context, b *entity.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[b.SKU] = *b
	return nil
}

func (r memBalances) Update(_ context.Context, b *entity.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[b.SKU] = *b
	return nil
}

type memMovements struct{ s *memStore }

func (r memMovements) Append(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastID++
	m.ID = r.s.lastID
	r.s.movs = append(r.s.movs, *m)
	return nil
}

func (r memMovements) ListBySKU(_ context.Context, sku string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.Movement
	for i := len(r.s.movs) - 1; i >= 0; i-- {
		if r.s.movs[i].SKU == sku {
			m := r.s.movs[i]
			matched = append(matched, &m)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newStockApp arma la app con los usecases reales del libro sobre el store en
// memoria (sin métricas). Las rutas de analítica quedan sin backend: estos
// tests no las tocan.
func newStockApp(t *testing.T) (*fiber.App, *memStore) {
	t.Helper()
	store := newMemStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterUC:    stock.NewRegisterProductUseCase(store, nil),
		MovementUC:    stock.NewPostMovementUseCase(store, memProducts{store}, nil),
		QueryUC:       stock.NewQueryUseCase(memProducts{store}, memBalances{store}, memMovements{store}),
		ConsistencyUC: stock.NewConsistencyUseCase(store),
		ExportUC:      stock.NewExportUseCase(memProducts{store}, excel.NewCatalogExporter()),
	})
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// registerA1 da de alta el SKU A1 (min 5, max 100) vía la API.
func registerA1(t *testing.T, app *fiber.App) {
	t.Helper()
	resp := postJSON(t, app, "/api/products", `{"sku":"A1","name":"Filtro de aceite","min_level":5,"max_level":100,"cost":2.0}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "el alta de A1 debe responder 201")
}

func postMovementReq(t *testing.T, app *fiber.App, sku, direction string, quantity int64) *http.Response {
	t.Helper()
	body, err := json.Marshal(dto.PostMovementRequest{SKU: sku, Direction: direction, Quantity: quantity})
	require.NoError(t, err)
	return postJSON(t, app, "/api/movements", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/products
// ──────────────────────────────────────────────────────────────────────────────

func TestPostProducts_CreaProductoYSaldoCero(t *testing.T) {
	app, _ := newStockApp(t)

	resp := postJSON(t, app, "/api/products", `{"sku":"A1","name":"Filtro de aceite","min_level":5,"max_level":100,"cost":2.0}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.RegisterProductResponse
	decodeJSON(t, resp, &created)
	assert.Equal(t, "A1", created.SKU)

	// El saldo nace en cero junto con el producto.
	balResp := getJSON(t, app, "/api/balances/A1")
	assert.Equal(t, http.StatusOK, balResp.StatusCode)

	var bal dto.BalanceResponse
	decodeJSON(t, balResp, &bal)
	assert.Equal(t, "A1", bal.SKU)
	assert.Equal(t, int64(0), bal.Quantity, "el saldo inicial debe ser cero")
}

func TestPostProducts_SKUDuplicado(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)

	resp := postJSON(t, app, "/api/products", `{"sku":"A1","name":"Otro nombre","min_level":1,"max_level":10,"cost":9.9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "DUPLICATE_SKU")
	assert.Contains(t, body, "A1")
}

func TestPostProducts_CuerpoInvalido(t *testing.T) {
	app, _ := newStockApp(t)

	resp := postJSON(t, app, "/api/products", `{"sku":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_BODY")
}

func TestPostProducts_SinNombre(t *testing.T) {
	app, _ := newStockApp(t)

	resp := postJSON(t, app, "/api/products", `{"sku":"A1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "VALIDATION")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovements_EntradaLuegoSalidaConAlerta(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)

	// Entrada: suma y nunca evalúa el mínimo.
	resp := postMovementReq(t, app, "A1", "E", 10)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var in dto.PostMovementResponse
	decodeJSON(t, resp, &in)
	assert.Equal(t, int64(10), in.NewBalance)
	assert.False(t, in.BelowMinimum)

	// Salida que deja el saldo (3) bajo el mínimo (5): alerta encendida.
	resp = postMovementReq(t, app, "A1", "S", 7)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.PostMovementResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, int64(3), out.NewBalance)
	assert.True(t, out.BelowMinimum, "3 < min(5) debe encender la alerta")
}

func TestPostMovements_StockInsuficiente(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)
	postMovementReq(t, app, "A1", "E", 3).Body.Close()

	resp := postMovementReq(t, app, "A1", "S", 50)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
	assert.Contains(t, body, "Saldo actual: 3", "el mensaje debe informar el saldo vigente")

	// El rechazo no toca el saldo.
	balResp := getJSON(t, app, "/api/balances/A1")
	var bal dto.BalanceResponse
	decodeJSON(t, balResp, &bal)
	assert.Equal(t, int64(3), bal.Quantity)
}

func TestPostMovements_SKUInexistente(t *testing.T) {
	app, _ := newStockApp(t)

	resp := postMovementReq(t, app, "ZZ", "E", 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "NOT_FOUND")
}

func TestPostMovements_EntradaInvalida(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)

	casos := []struct {
		nombre string
		body   string
	}{
		{"dirección desconocida", `{"sku":"A1","direction":"X","quantity":1}`},
		{"cantidad cero", `{"sku":"A1","direction":"E","quantity":0}`},
		{"cantidad negativa", `{"sku":"A1","direction":"S","quantity":-4}`},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			resp := postJSON(t, app, "/api/movements", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), "VALIDATION")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas: saldo, catálogo e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBalances_SKUInexistente(t *testing.T) {
	app, _ := newStockApp(t)

	resp := getJSON(t, app, "/api/balances/ZZ")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProducts_CatalogoOrdenadoPorSKU(t *testing.T) {
	app, _ := newStockApp(t)
	resp := postJSON(t, app, "/api/products", `{"sku":"B2","name":"Bujía","min_level":50,"max_level":500,"cost":1.1}`)
	resp.Body.Close()
	registerA1(t, app)
	postMovementReq(t, app, "B2", "E", 4).Body.Close()

	listResp := getJSON(t, app, "/api/products")
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var catalog dto.CatalogResponse
	decodeJSON(t, listResp, &catalog)
	require.Equal(t, 2, catalog.Total)
	assert.Equal(t, "A1", catalog.Items[0].SKU)
	assert.Equal(t, int64(0), catalog.Items[0].Balance)
	assert.Equal(t, "B2", catalog.Items[1].SKU)
	assert.Equal(t, int64(4), catalog.Items[1].Balance)
}

func TestGetMovements_HistorialPaginado(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)
	postMovementReq(t, app, "A1", "E", 10).Body.Close()
	postMovementReq(t, app, "A1", "S", 3).Body.Close()
	postMovementReq(t, app, "A1", "E", 5).Body.Close()

	resp := getJSON(t, app, "/api/movements?sku=A1&limit=2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list dto.MovementListResponse
	decodeJSON(t, resp, &list)
	require.Len(t, list.Items, 2, "limit=2 debe recortar el historial")
	assert.Equal(t, int64(5), list.Items[0].Quantity, "el más reciente primero")
	assert.Equal(t, "S", list.Items[1].Direction)
	assert.Greater(t, list.Items[0].ID, list.Items[1].ID)
	assert.Equal(t, 2, list.Page.Limit)
}

func TestGetMovements_SinSKU(t *testing.T) {
	app, _ := newStockApp(t)

	resp := getJSON(t, app, "/api/movements")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "VALIDATION")
}

// ──────────────────────────────────────────────────────────────────────────────
// Export XLSX y consistencia del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProductsExport_DescargaXLSX(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)

	resp := getJSON(t, app, "/api/products/export")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "catalogo.xlsx")

	body := readBody(t, resp)
	require.NotEmpty(t, body)
	assert.True(t, strings.HasPrefix(body, "PK"), "un XLSX es un ZIP: debe arrancar con la firma PK")
}

func TestGetLedgerConsistency_LibroSano(t *testing.T) {
	app, _ := newStockApp(t)
	registerA1(t, app)
	postMovementReq(t, app, "A1", "E", 10).Body.Close()

	resp := getJSON(t, app, "/api/ledger/consistency")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ConsistencyResponse
	decodeJSON(t, resp, &out)
	assert.True(t, out.Consistent)
	assert.Empty(t, out.Mismatches)
}

func TestGetLedgerConsistency_SaldoCorrupto(t *testing.T) {
	app, store := newStockApp(t)
	registerA1(t, app)
	postMovementReq(t, app, "A1", "E", 10).Body.Close()
	store.corruptBalance("A1", 99)

	resp := getJSON(t, app, "/api/ledger/consistency")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.ConsistencyResponse
	decodeJSON(t, resp, &out)
	assert.False(t, out.Consistent)
	require.Len(t, out.Mismatches, 1)
	assert.Equal(t, dto.LedgerMismatchDTO{SKU: "A1", Balance: 99, MovementSum: 10}, out.Mismatches[0])
}
