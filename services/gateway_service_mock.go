package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tablebird/tablebird-console/models"
)

// MockGatewayService is an in-memory implementation of GatewayInterface for
// testing. It serves orders newest-first the way the real gateway does and
// records mutating calls so tests can assert on them.
type MockGatewayService struct {
	mu         sync.RWMutex
	orders     []models.Order // newest first
	menuItems  map[int]models.MenuItem
	categories []string
	nextMenuID int

	// When set, every call fails with this error.
	FailWith error

	// Metrics is the daily series served by GetDailyMetrics.
	Metrics []models.DailyMetric

	// Recorded mutations
	StatusCalls []string     // "<orderNumber>:<status>" per SetOrderStatus call
	BulkCalls   [][]string   // order numbers per BulkSetOrderStatus call
	LoginUser   *models.User // user returned by Login; nil rejects login
	LoginToken  string
}

// NewMockGatewayService creates a new mock gateway
func NewMockGatewayService() *MockGatewayService {
	return &MockGatewayService{
		menuItems:  make(map[int]models.MenuItem),
		nextMenuID: 1,
		LoginToken: "mock-token",
	}
}

// SetAsMockForTesting sets this mock as the global gateway instance for testing
func (m *MockGatewayService) SetAsMockForTesting() {
	SetGatewayService(m)
}

// SeedOrders replaces the mock's order set. Orders are stored as given;
// callers should pass them newest-first to match real gateway ordering.
func (m *MockGatewayService) SeedOrders(orders []models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]models.Order(nil), orders...)
}

// PushOrder inserts a new most-recent order.
func (m *MockGatewayService) PushOrder(order models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]models.Order{order}, m.orders...)
}

// ListOrders returns the seeded orders, filtered and truncated.
func (m *MockGatewayService) ListOrders(filter models.OrderFilter) (*models.OrderListResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var matched []models.Order
	for _, order := range m.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, order)
	}

	total := len(matched)
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return &models.OrderListResponse{Orders: matched, Total: total}, nil
}

// GetActiveOrders returns every order not yet delivered or cancelled.
func (m *MockGatewayService) GetActiveOrders() ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var active []models.Order
	for _, order := range m.orders {
		if order.Status != models.StatusDelivered && order.Status != models.StatusCancelled {
			active = append(active, order)
		}
	}
	return active, nil
}

// SetOrderStatus updates a seeded order's status and records the call.
func (m *MockGatewayService) SetOrderStatus(orderNumber string, status models.OrderStatus) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.StatusCalls = append(m.StatusCalls, fmt.Sprintf("%s:%s", orderNumber, status))
	for i := range m.orders {
		if m.orders[i].OrderNumber == orderNumber {
			m.orders[i].Status = status
			updated := m.orders[i]
			return &updated, nil
		}
	}
	return nil, &GatewayError{Op: "update order status", StatusCode: 404, Message: "order not found"}
}

// BulkSetOrderStatus applies one status to all given orders and records the call.
func (m *MockGatewayService) BulkSetOrderStatus(orderNumbers []string, status models.OrderStatus) (*models.BulkUpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	recorded := append([]string(nil), orderNumbers...)
	sort.Strings(recorded)
	m.BulkCalls = append(m.BulkCalls, recorded)

	updated := 0
	for i := range m.orders {
		for _, number := range orderNumbers {
			if m.orders[i].OrderNumber == number {
				m.orders[i].Status = status
				updated++
			}
		}
	}
	return &models.BulkUpdateResult{Message: fmt.Sprintf("%d orders updated", updated)}, nil
}

// GetOrderStats derives the status breakdown from the seeded orders.
func (m *MockGatewayService) GetOrderStats() (*models.OrderStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	stats := &models.OrderStats{
		TotalOrders: len(m.orders),
		ByStatus:    make(map[models.OrderStatus]int),
	}
	for _, order := range m.orders {
		stats.ByStatus[order.Status]++
	}
	return stats, nil
}

// GetDailyMetrics returns an empty series unless a test seeds one via Metrics.
func (m *MockGatewayService) GetDailyMetrics(days int) (*models.DailyMetricsResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	series := append([]models.DailyMetric(nil), m.Metrics...)
	if days > 0 && len(series) > days {
		series = series[len(series)-days:]
	}
	return &models.DailyMetricsResponse{Series: series}, nil
}

// ListMenuItems returns the seeded menu sorted by id.
func (m *MockGatewayService) ListMenuItems(limit int) (*models.MenuListResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	ids := make([]int, 0, len(m.menuItems))
	for id := range m.menuItems {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, m.menuItems[id])
	}
	total := len(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return &models.MenuListResponse{Items: items, Total: total}, nil
}

// CreateMenuItem stores a new menu item with a generated id.
func (m *MockGatewayService) CreateMenuItem(item models.MenuItem) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	item.ID = m.nextMenuID
	m.nextMenuID++
	m.menuItems[item.ID] = item
	return &item, nil
}

// UpdateMenuItem replaces a stored menu item.
func (m *MockGatewayService) UpdateMenuItem(id int, item models.MenuItem) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	if _, exists := m.menuItems[id]; !exists {
		return nil, &GatewayError{Op: "update menu item", StatusCode: 404, Message: "menu item not found"}
	}
	item.ID = id
	m.menuItems[id] = item
	return &item, nil
}

// DeleteMenuItem removes a stored menu item.
func (m *MockGatewayService) DeleteMenuItem(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.menuItems, id)
	return nil
}

// ListCategories returns the seeded categories.
func (m *MockGatewayService) ListCategories() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]string(nil), m.categories...), nil
}

// CreateCategory appends a category.
func (m *MockGatewayService) CreateCategory(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.categories = append(m.categories, name)
	return nil
}

// RenameCategory replaces a category name in place.
func (m *MockGatewayService) RenameCategory(oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for i, name := range m.categories {
		if name == oldName {
			m.categories[i] = newName
			return nil
		}
	}
	return &GatewayError{Op: "rename category", StatusCode: 404, Message: "category not found"}
}

// DeleteCategory removes a category.
func (m *MockGatewayService) DeleteCategory(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for i, existing := range m.categories {
		if existing == name {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

// Login succeeds when LoginUser is set, otherwise behaves like a rejection.
func (m *MockGatewayService) Login(email, password string) (*models.LoginResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if m.LoginUser == nil {
		return nil, &GatewayError{Op: "login", StatusCode: 401, Message: "invalid credentials"}
	}
	return &models.LoginResponse{AccessToken: m.LoginToken, User: *m.LoginUser}, nil
}

var _ GatewayInterface = (*MockGatewayService)(nil)
