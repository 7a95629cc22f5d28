package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/models"
)

// StatusServiceInterface is the order status state machine. Any status may be
// set to any other status; only membership in the known set is checked.
type StatusServiceInterface interface {
	// SetStatus applies a single transition through the gateway.
	// fromActiveView additionally invalidates the active-orders group, which
	// is the view the change was issued from.
	SetStatus(orderNumber string, status models.OrderStatus, fromActiveView bool) (*models.Order, error)
}

// StatusService implements StatusServiceInterface.
type StatusService struct {
	gateway GatewayInterface
	cache   CacheInterface
}

var statusServiceInstance StatusServiceInterface

// InitStatusService initializes the status service
func InitStatusService(gateway GatewayInterface, cache CacheInterface) StatusServiceInterface {
	statusServiceInstance = &StatusService{gateway: gateway, cache: cache}
	return statusServiceInstance
}

// GetStatusService returns the initialized status service instance
func GetStatusService() StatusServiceInterface {
	return statusServiceInstance
}

// SetStatusService sets the status service instance (primarily for testing)
func SetStatusService(service StatusServiceInterface) {
	statusServiceInstance = service
}

// SetStatus validates the target status, applies it through the gateway and
// invalidates the dependent query groups. Local views are not rolled forward
// optimistically; they converge on the next refetch of the stale groups.
func (s *StatusService) SetStatus(orderNumber string, status models.OrderStatus, fromActiveView bool) (*models.Order, error) {
	if orderNumber == "" {
		return nil, &ValidationError{Code: "MISSING_ORDER_NUMBER", Message: "Order number is required"}
	}
	if !status.IsValid() {
		return nil, &ValidationError{
			Code:    "INVALID_STATUS",
			Message: fmt.Sprintf("Unknown order status %q", status),
		}
	}

	order, err := s.gateway.SetOrderStatus(orderNumber, status)
	if err != nil {
		return nil, err
	}

	groups := []string{GroupOrders, GroupOrderStats}
	if fromActiveView {
		groups = append(groups, GroupActiveOrders)
	}
	s.cache.Invalidate(groups...)

	logrus.WithFields(logrus.Fields{
		"order_number": orderNumber,
		"status":       status,
	}).Info("Order status updated")
	return order, nil
}
