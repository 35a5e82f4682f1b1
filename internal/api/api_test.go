package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/meubentin/bentin/internal/analytics"
	"github.com/meubentin/bentin/internal/api"
	"github.com/meubentin/bentin/internal/platform/kv"
	"github.com/meubentin/bentin/internal/store"
	_ "github.com/meubentin/bentin/testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(context.Background(), kv.NewMemory(), logger)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	cache := analytics.NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	svc := analytics.NewService(st, cache, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", api.NewHandler(logger, st, svc).MountRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, payload
}

func seedProduct(t *testing.T, srv *httptest.Server, st *store.Store, name string, price float64, qty int) store.Product {
	t.Helper()
	categories := st.ListCategories()
	require.NotEmpty(t, categories)
	res, payload := doJSON(t, srv, http.MethodPost, "/api/v1/produtos", map[string]any{
		"nome":          name,
		"categoriaId":   categories[0].ID,
		"preco":         price,
		"quantidade":    qty,
		"estoqueMinimo": 2,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var p store.Product
	require.NoError(t, json.Unmarshal(payload, &p))
	return p
}

func TestCreateAndListProducts(t *testing.T) {
	srv, st := newTestServer(t)

	created := seedProduct(t, srv, st, "Vestido Floral", 49.9, 10)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Vestido Floral", created.Name)

	res, payload := doJSON(t, srv, http.MethodGet, "/api/v1/produtos", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var products []store.Product
	require.NoError(t, json.Unmarshal(payload, &products))
	require.Len(t, products, 1)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	res, _ := doJSON(t, srv, http.MethodPost, "/api/v1/produtos", map[string]any{
		"nome":        "Tênis",
		"categoriaId": "nao-existe",
		"preco":       10.0,
	})
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreateProductValidation(t *testing.T) {
	srv, st := newTestServer(t)
	categories := st.ListCategories()

	res, payload := doJSON(t, srv, http.MethodPost, "/api/v1/produtos", map[string]any{
		"categoriaId": categories[0].ID,
		"preco":       10.0,
	})
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Equal(t, "Name", body["campo"])
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/categorias", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStockAndLossEndpoints(t *testing.T) {
	srv, st := newTestServer(t)
	p := seedProduct(t, srv, st, "Conjunto Verão", 30, 5)

	res, payload := doJSON(t, srv, http.MethodPost, "/api/v1/produtos/"+p.ID+"/estoque", map[string]any{
		"quantidade": 3,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var updated store.Product
	require.NoError(t, json.Unmarshal(payload, &updated))
	require.Equal(t, 8, updated.Quantity)

	res, _ = doJSON(t, srv, http.MethodPost, "/api/v1/produtos/"+p.ID+"/perdas", map[string]any{
		"quantidade": 2,
		"motivo":     "avaria na loja",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = doJSON(t, srv, http.MethodPost, "/api/v1/produtos/"+p.ID+"/perdas", map[string]any{
		"quantidade": 100,
		"motivo":     "inventário",
	})
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res, payload = doJSON(t, srv, http.MethodGet, "/api/v1/perdas", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var losses []store.LossRecord
	require.NoError(t, json.Unmarshal(payload, &losses))
	require.Len(t, losses, 1)
}

func TestCategoryConflicts(t *testing.T) {
	srv, st := newTestServer(t)

	res, _ := doJSON(t, srv, http.MethodPost, "/api/v1/categorias", map[string]any{"nome": "vestidos"})
	require.Equal(t, http.StatusConflict, res.StatusCode)

	p := seedProduct(t, srv, st, "Sandália", 25, 4)
	res, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/categorias/"+p.CategoryID, nil)
	require.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestSaleLifecycleOverHTTP(t *testing.T) {
	srv, st := newTestServer(t)
	p := seedProduct(t, srv, st, "Vestido Festa", 50, 10)
	vendor := st.ListVendors()[0]

	res, payload := doJSON(t, srv, http.MethodPost, "/api/v1/vendas", map[string]any{
		"vendedorId":     vendor.ID,
		"nomeCliente":    "Maria",
		"formaPagamento": "pix",
		"status":         "pendente",
		"desconto":       10,
		"itens": []map[string]any{
			{"produtoId": p.ID, "quantidade": 3},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var sale store.Sale
	require.NoError(t, json.Unmarshal(payload, &sale))
	require.Equal(t, "VD-00001", sale.Number)
	require.InDelta(t, 140.0, sale.Total, 0.001)

	res, payload = doJSON(t, srv, http.MethodGet, "/api/v1/produtos/"+p.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var after store.Product
	require.NoError(t, json.Unmarshal(payload, &after))
	require.Equal(t, 7, after.Quantity)

	res, _ = doJSON(t, srv, http.MethodPost, "/api/v1/vendas/"+sale.ID+"/concluir", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Completing twice is rejected.
	res, _ = doJSON(t, srv, http.MethodPost, "/api/v1/vendas/"+sale.ID+"/concluir", nil)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	res, payload = doJSON(t, srv, http.MethodPost, "/api/v1/vendas/"+sale.ID+"/cancelar", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var cancelled store.Sale
	require.NoError(t, json.Unmarshal(payload, &cancelled))
	require.Equal(t, store.SaleStatusCancelled, cancelled.Status)

	res, payload = doJSON(t, srv, http.MethodGet, "/api/v1/produtos/"+p.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &after))
	require.Equal(t, 10, after.Quantity)
}

func TestSaleOversellRejected(t *testing.T) {
	srv, st := newTestServer(t)
	p := seedProduct(t, srv, st, "Boné", 15, 2)
	vendor := st.ListVendors()[0]

	res, _ := doJSON(t, srv, http.MethodPost, "/api/v1/vendas", map[string]any{
		"vendedorId":     vendor.ID,
		"formaPagamento": "dinheiro",
		"itens": []map[string]any{
			{"produtoId": p.ID, "quantidade": 5},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestDashboardEndpoints(t *testing.T) {
	srv, st := newTestServer(t)
	p := seedProduct(t, srv, st, "Macacão", 40, 10)
	vendor := st.ListVendors()[0]

	res, _ := doJSON(t, srv, http.MethodPost, "/api/v1/vendas", map[string]any{
		"vendedorId":     vendor.ID,
		"formaPagamento": "credito",
		"itens": []map[string]any{
			{"produtoId": p.ID, "quantidade": 2},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, payload := doJSON(t, srv, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var dash struct {
		Summary struct {
			Revenue float64 `json:"receita"`
			Count   int     `json:"quantidadeVendas"`
		} `json:"resumo"`
		Daily []json.RawMessage `json:"receitaDiaria"`
	}
	require.NoError(t, json.Unmarshal(payload, &dash))
	require.Equal(t, 1, dash.Summary.Count)
	require.InDelta(t, 80.0, dash.Summary.Revenue, 0.001)
	require.NotEmpty(t, dash.Daily)

	res, _ = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard/insights", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/dashboard?de=%s&ate=%s", "2026-02-10", "2026-01-01"), nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
