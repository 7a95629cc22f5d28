package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tablebird/tablebird-console/models"
)

// stubTokenSource is a TokenSource with a fixed token and a cleared flag.
type stubTokenSource struct {
	token   string
	cleared bool
}

func (s *stubTokenSource) AccessToken() (string, bool) {
	return s.token, s.token != ""
}

func (s *stubTokenSource) ClearSession() {
	s.token = ""
	s.cleared = true
}

func newTestGateway(serverURL string, tokens TokenSource) *GatewayService {
	return &GatewayService{
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 2 * time.Second},
		tokens:     tokens,
	}
}

func TestListOrdersSendsFilterAndBearerToken(t *testing.T) {
	var gotRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(r.Context())
		assert.NoError(t, json.NewEncoder(w).Encode(models.OrderListResponse{
			Orders: []models.Order{makeOrder("B7", "Jordan", "555", 42, models.StatusConfirmed, time.Now())},
			Total:  1,
		}))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{token: "session-token"})
	preparing := models.StatusPreparing

	resp, err := gateway.ListOrders(models.OrderFilter{Status: &preparing, Limit: 100})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "B7", resp.Orders[0].OrderNumber)

	assert.Equal(t, "/api/v1/orders", gotRequest.URL.Path)
	assert.Equal(t, "preparing", gotRequest.URL.Query().Get("status"))
	assert.Equal(t, "100", gotRequest.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer session-token", gotRequest.Header.Get("Authorization"))
}

func TestListOrdersWithoutSessionSendsNoAuthorization(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.NoError(t, json.NewEncoder(w).Encode(models.OrderListResponse{}))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{})
	_, err := gateway.ListOrders(models.OrderFilter{})
	assert.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestSetOrderStatusRequestShape(t *testing.T) {
	var gotMethod, gotPath string
	var gotPayload models.StatusUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		assert.NoError(t, json.NewEncoder(w).Encode(
			makeOrder("B7", "Jordan", "555", 42, models.StatusReady, time.Now()),
		))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{token: "tok"})
	order, err := gateway.SetOrderStatus("B7", models.StatusReady)

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/orders/B7/status", gotPath)
	assert.Equal(t, models.StatusReady, gotPayload.Status)
	assert.Equal(t, models.StatusReady, order.Status)
}

func TestBulkSetOrderStatusRequestShape(t *testing.T) {
	var gotPayload models.BulkStatusUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders/bulk/status-update", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		assert.NoError(t, json.NewEncoder(w).Encode(models.BulkUpdateResult{Message: "2 orders updated"}))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{token: "tok"})
	result, err := gateway.BulkSetOrderStatus([]string{"B1", "B2"}, models.StatusDelivered)

	assert.NoError(t, err)
	assert.Equal(t, "2 orders updated", result.Message)
	assert.Equal(t, []string{"B1", "B2"}, gotPayload.OrderNumbers)
	assert.Equal(t, models.StatusDelivered, gotPayload.StatusUpdate.Status)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &stubTokenSource{token: "stale-token"}
	gateway := newTestGateway(server.URL, tokens)

	_, err := gateway.GetActiveOrders()

	var authErr *AuthExpiredError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "list active orders", authErr.Op)
	assert.True(t, tokens.cleared)
	_, ok := tokens.AccessToken()
	assert.False(t, ok)
}

func TestServerErrorBecomesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	tokens := &stubTokenSource{token: "tok"}
	gateway := newTestGateway(server.URL, tokens)

	_, err := gateway.GetOrderStats()

	var gatewayErr *GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, http.StatusInternalServerError, gatewayErr.StatusCode)
	assert.Contains(t, gatewayErr.Message, "database unavailable")
	// Only a 401 touches the session
	assert.False(t, tokens.cleared)
}

func TestUnreachableGatewayBecomesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	gateway := newTestGateway(server.URL, &stubTokenSource{})
	_, err := gateway.ListCategories()

	var gatewayErr *GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Zero(t, gatewayErr.StatusCode)
}

func TestRenameCategoryRequestShape(t *testing.T) {
	var gotPayload models.CategoryRename
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/menu/category/rename", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{token: "tok"})
	assert.NoError(t, gateway.RenameCategory("Sides", "Starters"))
	assert.Equal(t, "Sides", gotPayload.OldCategory)
	assert.Equal(t, "Starters", gotPayload.NewCategory)
}

func TestLoginDecodesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ops@tablebird.dev", creds["email"])
		assert.NoError(t, json.NewEncoder(w).Encode(models.LoginResponse{
			AccessToken: "fresh-token",
			User:        models.User{ID: 3, Name: "Jordan", Email: "ops@tablebird.dev", Role: "admin"},
		}))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL, &stubTokenSource{})
	session, err := gateway.Login("ops@tablebird.dev", "hunter2")

	assert.NoError(t, err)
	assert.Equal(t, "fresh-token", session.AccessToken)
	assert.Equal(t, "admin", session.User.Role)
}
