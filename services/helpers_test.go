package services

import (
	"sync"
	"time"

	"github.com/tablebird/tablebird-console/models"
)

// memoryStateStore is an in-memory StateStoreInterface for tests that do not
// need the real sqlite-backed store.
type memoryStateStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{values: make(map[string]string)}
}

func (m *memoryStateStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, exists := m.values[key]
	return value, exists, nil
}

func (m *memoryStateStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStateStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// recordingNotifier captures every alert the watcher raises.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []NewOrderAlert
}

func (r *recordingNotifier) NotifyNewOrder(alert NewOrderAlert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert)
}

func (r *recordingNotifier) Alerts() []NewOrderAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NewOrderAlert(nil), r.alerts...)
}

// silentCue is an AudioCue that always succeeds.
type silentCue struct{}

func (silentCue) Play() error { return nil }

// brokenCue is an AudioCue that always fails, like a browser denying
// autoplay.
type brokenCue struct{ err error }

func (b brokenCue) Play() error { return b.err }

// makeOrder builds a test order with one line item covering the full total.
func makeOrder(number, name, phone string, total float64, status models.OrderStatus, createdAt time.Time) models.Order {
	return models.Order{
		OrderNumber: number,
		UserName:    name,
		PhoneNumber: phone,
		Items: []models.OrderLineItem{
			{ID: 1, Name: "Margherita", Price: total, Quantity: 1, Subtotal: total},
		},
		Total:     total,
		Status:    status,
		CreatedAt: createdAt,
	}
}
