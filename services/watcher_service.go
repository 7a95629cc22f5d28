package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tablebird/tablebird-console/models"
)

// NewOrderAlert is the one-shot notification raised when the watcher observes
// a new most-recent order.
type NewOrderAlert struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	ReceivedAt   time.Time `json:"received_at"`
}

// Notifier receives new-order alerts.
type Notifier interface {
	NotifyNewOrder(alert NewOrderAlert)
}

// AudioCue plays the audible new-order ringtone. A playback failure is logged
// by the watcher and never fails the poll.
type AudioCue interface {
	Play() error
}

// LogNotifier logs alerts; the frontend reads the unread counter instead of
// receiving a push.
type LogNotifier struct{}

// NotifyNewOrder logs the alert
func (LogNotifier) NotifyNewOrder(alert NewOrderAlert) {
	logrus.WithFields(logrus.Fields{
		"alert_id":     alert.ID,
		"order_number": alert.OrderNumber,
		"customer":     alert.CustomerName,
	}).Info("New order received")
}

// TerminalBell rings the operator terminal by writing the ASCII bell.
type TerminalBell struct {
	Out io.Writer
}

// Play writes the bell character
func (b TerminalBell) Play() error {
	if b.Out == nil {
		return fmt.Errorf("no output configured for bell")
	}
	if _, err := fmt.Fprint(b.Out, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}

// WatcherServiceInterface is the New-Order Watcher: a periodic poll of the
// gateway's most recent order, deduplicated against a persisted marker so
// repeated polls and process restarts never re-alert for the same order.
type WatcherServiceInterface interface {
	// Run polls on a fixed wall-clock period until ctx is cancelled.
	Run(ctx context.Context)

	// PollOnce performs a single poll cycle.
	PollOnce() error

	// Unread returns the in-memory unread alert counter.
	Unread() int

	// ResetUnread clears the unread counter (the notification bell was opened).
	ResetUnread()

	// Marker returns the persisted last-seen order number, if any.
	Marker() (string, bool)
}

// WatcherService implements WatcherServiceInterface.
type WatcherService struct {
	gateway  GatewayInterface
	state    StateStoreInterface
	notifier Notifier
	cue      AudioCue
	interval time.Duration

	mu     sync.Mutex
	unread int
}

var watcherServiceInstance WatcherServiceInterface

// InitWatcherService initializes the new-order watcher
func InitWatcherService(gateway GatewayInterface, state StateStoreInterface, notifier Notifier, cue AudioCue, interval time.Duration) WatcherServiceInterface {
	watcherServiceInstance = NewWatcherService(gateway, state, notifier, cue, interval)
	return watcherServiceInstance
}

// GetWatcherService returns the initialized watcher instance
func GetWatcherService() WatcherServiceInterface {
	return watcherServiceInstance
}

// SetWatcherService sets the watcher instance (primarily for testing)
func SetWatcherService(service WatcherServiceInterface) {
	watcherServiceInstance = service
}

// NewWatcherService creates a watcher with a zero unread counter
func NewWatcherService(gateway GatewayInterface, state StateStoreInterface, notifier Notifier, cue AudioCue, interval time.Duration) *WatcherService {
	return &WatcherService{
		gateway:  gateway,
		state:    state,
		notifier: notifier,
		cue:      cue,
		interval: interval,
	}
}

// Run polls on a fixed period regardless of each poll's outcome
func (w *WatcherService) Run(ctx context.Context) {
	logrus.WithField("interval", w.interval).Info("New-order watcher started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("New-order watcher stopped")
			return
		case <-ticker.C:
			if err := w.PollOnce(); err != nil {
				// A failed poll is not fatal; the next tick retries.
				logrus.WithError(err).Warn("New-order poll failed")
			}
		}
	}
}

// PollOnce fetches the single most recent order and compares it against the
// persisted marker. At most one alert fires per distinct newly observed order
// number: if several orders arrived since the last poll, the batch raises a
// single alert for the top one. The marker is overwritten unconditionally
// whenever a most-recent order exists.
func (w *WatcherService) PollOnce() error {
	listing, err := w.gateway.ListOrders(models.OrderFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(listing.Orders) == 0 {
		return nil
	}
	latest := listing.Orders[0]

	marker, hasMarker, err := w.state.Get(models.StateKeyLastOrderNumber)
	if err != nil {
		return err
	}

	if hasMarker && marker != latest.OrderNumber {
		w.mu.Lock()
		w.unread++
		w.mu.Unlock()

		w.notifier.NotifyNewOrder(NewOrderAlert{
			ID:           uuid.NewString(),
			OrderNumber:  latest.OrderNumber,
			CustomerName: latest.UserName,
			ReceivedAt:   time.Now(),
		})

		if err := w.cue.Play(); err != nil {
			logrus.WithError(err).Warn("Failed to play new-order cue")
		}
	}

	return w.state.Set(models.StateKeyLastOrderNumber, latest.OrderNumber)
}

// Unread returns the unread alert counter
func (w *WatcherService) Unread() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unread
}

// ResetUnread clears the unread alert counter
func (w *WatcherService) ResetUnread() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unread = 0
}

// Marker returns the persisted last-seen order number
func (w *WatcherService) Marker() (string, bool) {
	marker, exists, err := w.state.Get(models.StateKeyLastOrderNumber)
	if err != nil {
		logrus.WithError(err).Warn("Failed to read notification marker")
		return "", false
	}
	return marker, exists
}
