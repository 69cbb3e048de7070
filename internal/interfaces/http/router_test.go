package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floreria-ops/internal/application/finance"
	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/application/orders"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/cache"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/memory"
	httpRouter "github.com/tu-usuario/floreria-ops/internal/interfaces/http"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store, store.Catalog(), store.Stock(), store.Movements(), cache.NoopStockCache{})

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: usecase.NewCatalogUseCase(store, store.Catalog(), store.Stock()),
		ClientUC:  usecase.NewClientUseCase(store.Clients()),
		ExpenseUC: usecase.NewExpenseUseCase(store.Expenses()),
		LedgerUC:  ledgerUC,
		OrderUC:   orders.NewUseCase(store, ledgerUC, store.Catalog(), store.Clients(), store.Orders()),
		FinanceUC: finance.NewUseCase(store.Orders(), store.Expenses()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// Flujo completo por la API: catálogo, compra, pedido, cancelación y resumen.
func TestAPI_FlujoCompleto(t *testing.T) {
	app := newTestApp(t)

	resp, item := doJSON(t, app, "POST", "/api/items", map[string]any{
		"name": "Rosa roja", "kind": "flower", "sale_price": "5",
		"package_size": 24, "shrinkage_units": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	itemID := item["id"].(string)
	assert.Equal(t, float64(22), item["effective_units"])

	resp, client := doJSON(t, app, "POST", "/api/clients", map[string]any{"name": "María"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	clientID := client["id"].(string)

	// Compra por paquete: 2 paquetes de 24 con merma 2 a 40 el paquete.
	resp, stock := doJSON(t, app, "POST", "/api/stock/movements", map[string]any{
		"item_id": itemID, "type": "PURCHASE", "quantity": 2,
		"is_package": true, "package_cost": "40",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(44), stock["quantity"])

	resp, order := doJSON(t, app, "POST", "/api/orders", map[string]any{
		"client_id": clientID,
		"items":     []map[string]any{{"item_id": itemID, "quantity": 10}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	orderID := order["id"].(string)
	assert.Equal(t, "pendiente", order["status"])

	resp, stock = doJSON(t, app, "GET", "/api/stock/"+itemID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(34), stock["quantity"])

	resp, cancelled := doJSON(t, app, "POST", "/api/orders/"+orderID+"/cancel", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelado", cancelled["status"])

	resp, stock = doJSON(t, app, "GET", "/api/stock/"+itemID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(44), stock["quantity"], "la cancelación repone el stock")

	resp, summary := doJSON(t, app, "GET", "/api/finance/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", summary["total_revenue"], "pedido cancelado no suma ingresos")
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	app := newTestApp(t)

	// Catálogo inexistente
	resp, body := doJSON(t, app, "GET", "/api/items/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	// Tipo de movimiento reservado
	resp, body = doJSON(t, app, "POST", "/api/stock/movements", map[string]any{
		"item_id": "x", "type": "CANCELLATION", "quantity": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	// Venta sin stock
	resp, item := doJSON(t, app, "POST", "/api/items", map[string]any{
		"name": "Tulipán", "kind": "flower", "sale_price": "3",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, body = doJSON(t, app, "POST", "/api/stock/movements", map[string]any{
		"item_id": item["id"], "type": "SALE", "quantity": 5,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	// Transición inválida
	resp, client := doJSON(t, app, "POST", "/api/clients", map[string]any{"name": "Pedro"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	price := "2"
	resp, order := doJSON(t, app, "POST", "/api/orders", map[string]any{
		"client_id": client["id"],
		"items":     []map[string]any{{"name": "Tarjeta", "quantity": 1, "price": price}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	path := fmt.Sprintf("/api/orders/%s/status", order["id"])
	resp, body = doJSON(t, app, "PATCH", path, map[string]any{"status": "entregado"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
}

func TestAPI_KardexYCritico(t *testing.T) {
	app := newTestApp(t)

	resp, item := doJSON(t, app, "POST", "/api/items", map[string]any{
		"name": "Rosa", "kind": "flower", "sale_price": "5", "critical_threshold": 5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	itemID := item["id"].(string)

	resp, _ = doJSON(t, app, "POST", "/api/stock/movements", map[string]any{
		"item_id": itemID, "type": "PURCHASE", "quantity": 4, "unit_cost": "2",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/stock/"+itemID+"/kardex", nil)
	kardexResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, kardexResp.StatusCode)
	var entries []map[string]any
	raw, _ := io.ReadAll(kardexResp.Body)
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "PURCHASE", entries[0]["type"])

	// 4 <= umbral 5: aparece en el listado crítico.
	req = httptest.NewRequest("GET", "/api/stock/critical", nil)
	criticalResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, criticalResp.StatusCode)
	var critical []map[string]any
	raw, _ = io.ReadAll(criticalResp.Body)
	require.NoError(t, json.Unmarshal(raw, &critical))
	require.Len(t, critical, 1)
	assert.Equal(t, itemID, critical[0]["item_id"])
}
