package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablebird/tablebird-console/models"
)

// StateStoreInterface defines the console's persisted key/value surface:
// the notification marker and the staff session.
type StateStoreInterface interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores or overwrites a value.
	Set(key, value string) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(key string) error
}

// StateService implements StateStoreInterface on the local gorm store.
type StateService struct {
	db *gorm.DB
}

var stateServiceInstance StateStoreInterface

// InitStateService initializes the state service on the given database
func InitStateService(db *gorm.DB) StateStoreInterface {
	stateServiceInstance = &StateService{db: db}
	return stateServiceInstance
}

// GetStateService returns the initialized state service instance
func GetStateService() StateStoreInterface {
	return stateServiceInstance
}

// SetStateService sets the state service instance (primarily for testing)
func SetStateService(service StateStoreInterface) {
	stateServiceInstance = service
}

// Get returns the stored value for key and whether it exists
func (s *StateService) Get(key string) (string, bool, error) {
	var entry models.StateEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read state key %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set stores or overwrites the value for key
func (s *StateService) Set(key, value string) error {
	entry := models.StateEntry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write state key %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key
func (s *StateService) Delete(key string) error {
	if err := s.db.Delete(&models.StateEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete state key %q: %w", key, err)
	}
	return nil
}
