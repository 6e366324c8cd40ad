package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	mainapp "github.com/uru-nouairi/Marco-Aesthetics-PNG"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

var app *fiber.App

// storeBackend fakes the remote store API the terminal talks to. It keeps
// catalog state and refuses sales that exceed stock, like the real one.
type storeBackend struct {
	mu       sync.Mutex
	products []models.Product
	nextSale int
}

func (s *storeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		switch {
		case req.Username == "admin" && req.Password == "admin123":
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "role": "admin"})
		case req.Username == "maria" && req.Password == "maria123":
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "role": "cashier"})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid username or password"})
		}
	})

	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(s.products)
	})

	mux.HandleFunc("POST /api/sales", func(w http.ResponseWriter, r *http.Request) {
		var req models.SaleRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, item := range req.Cart {
			for _, p := range s.products {
				if p.ID == item.ID && p.StockQuantity < item.Quantity {
					w.WriteHeader(http.StatusBadRequest)
					json.NewEncoder(w).Encode(map[string]interface{}{
						"success": false,
						"message": fmt.Sprintf("Not enough stock for %s.", p.Name),
					})
					return
				}
			}
		}
		for _, item := range req.Cart {
			for i := range s.products {
				if s.products[i].ID == item.ID {
					s.products[i].StockQuantity -= item.Quantity
				}
			}
		}
		saleID := fmt.Sprintf("S%d", s.nextSale)
		s.nextSale++
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "sale_id": saleID})
	})

	return mux
}

// TestMain wires the whole app against a fake store backend and an in-memory
// journal, then runs every test through it.
func TestMain(m *testing.M) {
	store := &storeBackend{
		products: []models.Product{
			{ID: 1, Name: "Bread", Price: 10, StockQuantity: 10},
			{ID: 2, Name: "Milk", Price: 25, StockQuantity: 10},
		},
		nextSale: 500,
	}
	server := httptest.NewServer(store.handler())
	defer server.Close()

	v := viper.New()
	v.Set("BACKEND_URL", server.URL)
	v.Set("BACKEND_TIMEOUT", "2s")
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("JOURNAL_DRIVER", "sqlite")
	v.Set("JOURNAL_DSN", "file::memory:?cache=shared")

	var err error
	app, err = mainapp.NewApp(v, nil)
	if err != nil {
		fmt.Printf("Failed to set up app: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func login(t *testing.T, username, password string) string {
	t.Helper()
	resp, body := request(t, http.MethodPost, "/login", "", map[string]string{
		"username": username, "password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	resp, body := request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	resp, _ := request(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = request(t, http.MethodPost, "/api/sales", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginDenied(t *testing.T) {
	resp, body := request(t, http.MethodPost, "/login", "", map[string]string{
		"username": "maria", "password": "wrong",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid username or password", body["message"])
}

func TestCashierCheckout(t *testing.T) {
	token := login(t, "maria", "maria123")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	catalogResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, catalogResp.StatusCode)
	var catalog []models.Product
	assert.NoError(t, json.NewDecoder(catalogResp.Body).Decode(&catalog))
	catalogResp.Body.Close()
	assert.Len(t, catalog, 2)

	bread := map[string]interface{}{"id": 1, "name": "Bread", "price": 10, "stock_quantity": 10}
	milk := map[string]interface{}{"id": 2, "name": "Milk", "price": 25, "stock_quantity": 10}

	request(t, http.MethodPost, "/api/cart/items", token, bread)
	request(t, http.MethodPost, "/api/cart/items", token, bread)
	resp, cartView := request(t, http.MethodPost, "/api/cart/items", token, milk)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cartView["lines"], 2)
	assert.Equal(t, "45.00", cartView["total"])

	resp, saleBody := request(t, http.MethodPost, "/api/sales", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, saleBody["success"])
	assert.Equal(t, "S500", saleBody["sale_id"])
	assert.Contains(t, saleBody["receipt_url"], "/api/receipt/S500")

	cartAfter := saleBody["cart"].(map[string]interface{})
	assert.Empty(t, cartAfter["lines"])
	assert.Equal(t, "0.00", cartAfter["total"])

	// The settled sale shows up in the admin journal.
	adminToken := login(t, "admin", "admin123")
	resp, _ = request(t, http.MethodGet, "/api/journal", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	jreq := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
	jreq.Header.Set("Authorization", "Bearer "+adminToken)
	jr, err := app.Test(jreq, -1)
	assert.NoError(t, err)
	defer jr.Body.Close()
	assert.Equal(t, http.StatusOK, jr.StatusCode)

	var entries []models.JournalEntry
	assert.NoError(t, json.NewDecoder(jr.Body).Decode(&entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "S500", entries[0].SaleID)
	assert.Equal(t, 45.0, entries[0].Total)
	assert.Equal(t, "maria", entries[0].Cashier)
	assert.Equal(t, 2, entries[0].LineCount)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	first := login(t, "maria", "maria123")
	second := login(t, "maria", "maria123")

	request(t, http.MethodPost, "/api/cart/items", first, map[string]interface{}{
		"id": 1, "name": "Bread", "price": 10, "stock_quantity": 10,
	})

	_, otherCart := request(t, http.MethodGet, "/api/cart", second, nil)
	assert.Empty(t, otherCart["lines"])

	_, firstCart := request(t, http.MethodGet, "/api/cart", first, nil)
	assert.Len(t, firstCart["lines"], 1)
}
