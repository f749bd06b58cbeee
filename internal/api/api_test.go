package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/orderkart/orderkart/config"
	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/catalog"
	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/store"
	"github.com/orderkart/orderkart/internal/syncer"
	"github.com/orderkart/orderkart/internal/webserver"
)

type stubFetcher struct {
	groups []domain.RawGroup
	err    error
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]domain.RawGroup, error) {
	return f.groups, f.err
}

func setupAPI(t *testing.T, fetcher catalog.Fetcher) (*echo.Echo, *store.Store) {
	t.Helper()
	cfg := &config.AppConfig{
		System: config.SysConfig{Workdir: t.TempDir(), Debug: true},
		Web:    config.WebConfig{Host: "127.0.0.1", Port: 0},
	}
	ws := webserver.Init(cfg)

	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	Register(cfg, st, cart.New(st), syncer.New(fetcher, st, nil))
	return ws.Echo(), st
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func seedCatalog(t *testing.T, st *store.Store) {
	t.Helper()
	products := catalog.Normalize([]domain.RawGroup{
		{GroupName: "Inks", Products: []domain.RawProduct{
			{ProductName: "Black", Quantity: 5, Rate: 100, Amount: 500},
			{ProductName: "Blue", Quantity: 3, Rate: 120, Amount: 360},
		}},
	})
	require.NoError(t, st.ReplaceCatalog(products, "1/1/2026 9:00:00 AM"))
}

func TestListProducts(t *testing.T) {
	e, st := setupAPI(t, &stubFetcher{})
	seedCatalog(t, st)

	rec, body := doJSON(t, e, http.MethodGet, "/api/catalog/products?q=black", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), body["total"])
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	require.Equal(t, "Black", rows[0].(map[string]interface{})["productName"])
}

func TestSyncEndpoint(t *testing.T) {
	fetcher := &stubFetcher{groups: []domain.RawGroup{
		{GroupName: "Inks", Products: []domain.RawProduct{{ProductName: "Black", Rate: 100}}},
	}}
	e, st := setupAPI(t, fetcher)

	rec, body := doJSON(t, e, http.MethodPost, "/api/catalog/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	require.Equal(t, float64(1), stats["added"])

	products, err := st.Products()
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestSyncEndpointUpstreamFailure(t *testing.T) {
	e, st := setupAPI(t, &stubFetcher{err: context.DeadlineExceeded})
	seedCatalog(t, st)

	rec, body := doJSON(t, e, http.MethodPost, "/api/catalog/sync", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "SYNC_FAILED", body["code"])

	// Previous cache survives the failed pass.
	products, err := st.Products()
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestCartFlow(t *testing.T) {
	e, _ := setupAPI(t, &stubFetcher{})

	rec, _ := doJSON(t, e, http.MethodPost, "/api/cart/items", `{"productId":"X","productName":"Black","sets":2,"rate":100}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same product again: replaced, not duplicated.
	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/items", `{"productId":"X","productName":"Black","sets":0,"note":"custom"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	entry := items[0].(map[string]interface{})
	require.Equal(t, float64(0), entry["sets"])
	require.Equal(t, "custom", entry["note"])

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/cart/items/X", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, e, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = body["data"].(map[string]interface{})
	require.Empty(t, data["items"])
}

func TestCartRejectsEmptySelection(t *testing.T) {
	e, _ := setupAPI(t, &stubFetcher{})

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/items", `{"productId":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "EMPTY_SELECTION", body["code"])
}

func TestClearRequiresConfirmation(t *testing.T) {
	e, st := setupAPI(t, &stubFetcher{})
	seedCatalog(t, st)

	rec, body := doJSON(t, e, http.MethodPost, "/api/cart/clear", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "CONFIRM_REQUIRED", body["code"])

	rec, _ = doJSON(t, e, http.MethodPost, "/api/cart/clear?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := st.Products()
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestShareOrder(t *testing.T) {
	e, st := setupAPI(t, &stubFetcher{})
	require.NoError(t, st.PutCart([]domain.CartItem{
		{ProductId: "a", ProductName: "Black", GroupName: "Inks", Sets: 2, Rate: 100},
	}))

	rec, body := doJSON(t, e, http.MethodPost, "/api/orders/share", `{"customer":"RK Printers","place":"Rajkot"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	require.Contains(t, data["text"], "RK Printers")
	require.Contains(t, data["link"], "https://wa.me/")
	require.Equal(t, false, data["sent"])
	require.Equal(t, float64(200), data["total"])

	// Order recorded in history.
	rec, body = doJSON(t, e, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := body["data"].([]interface{})
	require.Len(t, orders, 1)
}

func TestShareOrderEmptyCart(t *testing.T) {
	e, _ := setupAPI(t, &stubFetcher{})

	rec, body := doJSON(t, e, http.MethodPost, "/api/orders/share", `{"customer":"RK Printers"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "EMPTY_CART", body["code"])
}

func TestExportOrderWorkbook(t *testing.T) {
	e, st := setupAPI(t, &stubFetcher{})
	require.NoError(t, st.PutCart([]domain.CartItem{
		{ProductId: "a", ProductName: "Black", GroupName: "Inks", Sets: 2, Rate: 100},
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/orders/export", strings.NewReader(`{"customer":"RK Printers"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "order.xlsx")
	require.NotZero(t, rec.Body.Len())
}
