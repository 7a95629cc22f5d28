package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/models"
)

// SelectionState describes the select-all control for the bulk view.
type SelectionState string

const (
	SelectionNone    SelectionState = "none"
	SelectionPartial SelectionState = "partial" // 0 < selected < loaded
	SelectionAll     SelectionState = "all"
)

// BulkServiceInterface tracks a set of selected order numbers plus a pending
// target status, and applies one batched transition for the whole set.
type BulkServiceInterface interface {
	// ToggleAll selects the full loaded window when checked, or clears the
	// selection when not.
	ToggleAll(orderNumbers []string, checked bool)

	// ToggleOne adds or removes a single order number.
	ToggleOne(orderNumber string, checked bool)

	// SetTargetStatus stores the pending status; empty clears it.
	SetTargetStatus(status models.OrderStatus) error

	// Selected returns the selected order numbers, sorted.
	Selected() []string

	// TargetStatus returns the pending status, empty if unset.
	TargetStatus() models.OrderStatus

	// State reports the select-all control state for a loaded window size.
	State(loadedCount int) SelectionState

	// ApplyBulk issues exactly one gateway request for the whole selection.
	// On success the selection and target are cleared and the dependent query
	// groups invalidated. With no target status or no selection, no request
	// is sent.
	ApplyBulk() (*models.BulkUpdateResult, error)
}

// BulkService implements BulkServiceInterface.
type BulkService struct {
	gateway GatewayInterface
	cache   CacheInterface

	mu       sync.Mutex
	selected map[string]struct{}
	target   models.OrderStatus
}

var bulkServiceInstance BulkServiceInterface

// InitBulkService initializes the bulk selection manager
func InitBulkService(gateway GatewayInterface, cache CacheInterface) BulkServiceInterface {
	bulkServiceInstance = NewBulkService(gateway, cache)
	return bulkServiceInstance
}

// GetBulkService returns the initialized bulk selection manager instance
func GetBulkService() BulkServiceInterface {
	return bulkServiceInstance
}

// SetBulkService sets the bulk selection manager instance (primarily for testing)
func SetBulkService(service BulkServiceInterface) {
	bulkServiceInstance = service
}

// NewBulkService creates a bulk selection manager with an empty selection
func NewBulkService(gateway GatewayInterface, cache CacheInterface) *BulkService {
	return &BulkService{
		gateway:  gateway,
		cache:    cache,
		selected: make(map[string]struct{}),
	}
}

// ToggleAll sets the selection to the given window or empties it
func (b *BulkService) ToggleAll(orderNumbers []string, checked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selected = make(map[string]struct{})
	if checked {
		for _, number := range orderNumbers {
			b.selected[number] = struct{}{}
		}
	}
}

// ToggleOne adds or removes a single order number
func (b *BulkService) ToggleOne(orderNumber string, checked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if checked {
		b.selected[orderNumber] = struct{}{}
	} else {
		delete(b.selected, orderNumber)
	}
}

// SetTargetStatus stores the pending target status; empty clears it
func (b *BulkService) SetTargetStatus(status models.OrderStatus) error {
	if status != "" && !status.IsValid() {
		return &ValidationError{
			Code:    "INVALID_STATUS",
			Message: fmt.Sprintf("Unknown order status %q", status),
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = status
	return nil
}

// Selected returns the selected order numbers, sorted for stable output
func (b *BulkService) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	numbers := make([]string, 0, len(b.selected))
	for number := range b.selected {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}

// TargetStatus returns the pending target status
func (b *BulkService) TargetStatus() models.OrderStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// State reports the select-all control state for the loaded window
func (b *BulkService) State(loadedCount int) SelectionState {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case len(b.selected) == 0:
		return SelectionNone
	case len(b.selected) < loadedCount:
		return SelectionPartial
	default:
		return SelectionAll
	}
}

// ApplyBulk sends one batched transition for the whole selection
func (b *BulkService) ApplyBulk() (*models.BulkUpdateResult, error) {
	b.mu.Lock()
	target := b.target
	numbers := make([]string, 0, len(b.selected))
	for number := range b.selected {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	b.mu.Unlock()

	if target == "" {
		return nil, &ValidationError{Code: "MISSING_TARGET_STATUS", Message: "No target status selected"}
	}
	if len(numbers) == 0 {
		return nil, &ValidationError{Code: "EMPTY_SELECTION", Message: "No orders selected"}
	}

	// All-or-nothing per request: the gateway applies the batch and reports a
	// single outcome, not per-order results.
	result, err := b.gateway.BulkSetOrderStatus(numbers, target)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.selected = make(map[string]struct{})
	b.target = ""
	b.mu.Unlock()

	b.cache.Invalidate(GroupOrders, GroupActiveOrders, GroupOrderStats, GroupBulkListing)

	logrus.WithFields(logrus.Fields{
		"count":  len(numbers),
		"status": target,
	}).Info("Bulk status update applied")
	return result, nil
}
