package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/config"
	"github.com/tablebird/tablebird-console/models"
)

// TokenSource supplies the staff session token for gateway calls and is told
// when the gateway rejects it.
type TokenSource interface {
	// AccessToken returns the current session token, if a session exists.
	AccessToken() (string, bool)

	// ClearSession drops the persisted token and user after an auth rejection.
	ClearSession()
}

// GatewayInterface is the remote order/menu gateway contract the console
// consumes. The gateway is the source of truth for all orders and menu data;
// the console never persists any of it.
type GatewayInterface interface {
	ListOrders(filter models.OrderFilter) (*models.OrderListResponse, error)
	GetActiveOrders() ([]models.Order, error)
	SetOrderStatus(orderNumber string, status models.OrderStatus) (*models.Order, error)
	BulkSetOrderStatus(orderNumbers []string, status models.OrderStatus) (*models.BulkUpdateResult, error)
	GetOrderStats() (*models.OrderStats, error)
	GetDailyMetrics(days int) (*models.DailyMetricsResponse, error)

	ListMenuItems(limit int) (*models.MenuListResponse, error)
	CreateMenuItem(item models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(id int, item models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(id int) error

	ListCategories() ([]string, error)
	CreateCategory(name string) error
	RenameCategory(oldName, newName string) error
	DeleteCategory(name string) error

	Login(email, password string) (*models.LoginResponse, error)
}

// GatewayService is the HTTP client for the remote gateway. Every call is a
// single attempt; failures surface as GatewayError and are not retried.
type GatewayService struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

var gatewayServiceInstance GatewayInterface

// InitGatewayService initializes the gateway client from configuration
func InitGatewayService(cfg *config.Config, tokens TokenSource) GatewayInterface {
	gatewayServiceInstance = &GatewayService{
		baseURL: cfg.GatewayURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokens: tokens,
	}
	return gatewayServiceInstance
}

// GetGatewayService returns the initialized gateway service instance
func GetGatewayService() GatewayInterface {
	return gatewayServiceInstance
}

// SetGatewayService sets the gateway service instance (primarily for testing)
func SetGatewayService(service GatewayInterface) {
	gatewayServiceInstance = service
}

// ListOrders fetches the most recent orders, optionally filtered by status.
func (s *GatewayService) ListOrders(filter models.OrderFilter) (*models.OrderListResponse, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out models.OrderListResponse
	if err := s.doJSON(http.MethodGet, "/api/v1/orders", query, nil, &out, "list orders"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActiveOrders fetches every order still in the kitchen pipeline.
func (s *GatewayService) GetActiveOrders() ([]models.Order, error) {
	var out []models.Order
	if err := s.doJSON(http.MethodGet, "/api/v1/orders/active", nil, nil, &out, "list active orders"); err != nil {
		return nil, err
	}
	return out, nil
}

// SetOrderStatus applies a single status transition.
func (s *GatewayService) SetOrderStatus(orderNumber string, status models.OrderStatus) (*models.Order, error) {
	path := fmt.Sprintf("/api/v1/orders/%s/status", url.PathEscape(orderNumber))
	payload := models.StatusUpdate{Status: status}

	var out models.Order
	if err := s.doJSON(http.MethodPut, path, nil, payload, &out, "update order status"); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkSetOrderStatus applies one target status to a set of orders in a single
// request. The gateway reports one outcome for the whole batch; there is no
// per-order result.
func (s *GatewayService) BulkSetOrderStatus(orderNumbers []string, status models.OrderStatus) (*models.BulkUpdateResult, error) {
	payload := models.BulkStatusUpdate{
		OrderNumbers: orderNumbers,
		StatusUpdate: models.StatusUpdate{Status: status},
	}

	var out models.BulkUpdateResult
	if err := s.doJSON(http.MethodPost, "/api/v1/orders/bulk/status-update", nil, payload, &out, "bulk update order status"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrderStats fetches the aggregate status breakdown.
func (s *GatewayService) GetOrderStats() (*models.OrderStats, error) {
	var out models.OrderStats
	if err := s.doJSON(http.MethodGet, "/api/v1/orders/stats", nil, nil, &out, "order stats"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDailyMetrics fetches the pre-aggregated daily revenue series.
func (s *GatewayService) GetDailyMetrics(days int) (*models.DailyMetricsResponse, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var out models.DailyMetricsResponse
	if err := s.doJSON(http.MethodGet, "/api/v1/orders/metrics/daily", query, nil, &out, "daily metrics"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMenuItems fetches the menu.
func (s *GatewayService) ListMenuItems(limit int) (*models.MenuListResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out models.MenuListResponse
	if err := s.doJSON(http.MethodGet, "/api/v1/menu/", query, nil, &out, "list menu"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMenuItem adds a menu item.
func (s *GatewayService) CreateMenuItem(item models.MenuItem) (*models.MenuItem, error) {
	var out models.MenuItem
	if err := s.doJSON(http.MethodPost, "/api/v1/menu", nil, item, &out, "create menu item"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMenuItem edits a menu item by id.
func (s *GatewayService) UpdateMenuItem(id int, item models.MenuItem) (*models.MenuItem, error) {
	path := fmt.Sprintf("/api/v1/menu/%d", id)

	var out models.MenuItem
	if err := s.doJSON(http.MethodPut, path, nil, item, &out, "update menu item"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMenuItem removes a menu item by id.
func (s *GatewayService) DeleteMenuItem(id int) error {
	path := fmt.Sprintf("/api/v1/menu/%d", id)
	return s.doJSON(http.MethodDelete, path, nil, nil, nil, "delete menu item")
}

// ListCategories fetches the category registry.
func (s *GatewayService) ListCategories() ([]string, error) {
	var out []string
	if err := s.doJSON(http.MethodGet, "/api/v1/menu/categories", nil, nil, &out, "list categories"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (s *GatewayService) CreateCategory(name string) error {
	payload := map[string]string{"name": name}
	return s.doJSON(http.MethodPost, "/api/v1/menu/category", nil, payload, nil, "create category")
}

// RenameCategory changes a category's name. The name is the key, so any
// cascade onto menu items happens gateway-side.
func (s *GatewayService) RenameCategory(oldName, newName string) error {
	payload := models.CategoryRename{OldCategory: oldName, NewCategory: newName}
	return s.doJSON(http.MethodPut, "/api/v1/menu/category/rename", nil, payload, nil, "rename category")
}

// DeleteCategory removes a category.
func (s *GatewayService) DeleteCategory(name string) error {
	payload := map[string]string{"name": name}
	return s.doJSON(http.MethodDelete, "/api/v1/menu/category", nil, payload, nil, "delete category")
}

// Login authenticates a staff member against the gateway. Login is the one
// call made without a bearer token.
func (s *GatewayService) Login(email, password string) (*models.LoginResponse, error) {
	payload := map[string]string{"email": email, "password": password}

	var out models.LoginResponse
	if err := s.doJSON(http.MethodPost, "/api/v1/auth/login", nil, payload, &out, "login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs a single gateway request and decodes the JSON response into
// out (out may be nil for calls whose body we discard). A 401 clears the
// persisted session and surfaces as AuthExpiredError; everything else
// non-2xx, and any transport failure, becomes a GatewayError.
func (s *GatewayService) doJSON(method, path string, query url.Values, payload, out interface{}, op string) error {
	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, ok := s.tokens.AccessToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{"op": op, "error": err}).Warn("Gateway request failed")
		return &GatewayError{Op: op, Message: err.Error(), Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logrus.WithField("op", op).Warnf("failed to close response body: %v", closeErr)
		}
	}()

	logrus.WithFields(logrus.Fields{
		"op":       op,
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	}).Debug("Gateway request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		s.tokens.ClearSession()
		return &AuthExpiredError{Op: op}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return &GatewayError{Op: op, StatusCode: resp.StatusCode, Message: string(detail)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Message: fmt.Sprintf("failed to decode response: %v", err), Err: err}
	}
	return nil
}
