package models

import "time"

// Well-known keys in the console's persisted state surface. All values are
// plain strings with no schema versioning.
const (
	StateKeyLastOrderNumber = "last_known_order_number"
	StateKeySessionToken    = "session_token"
	StateKeySessionUser     = "session_user"
)

// StateEntry is one persisted key/value pair of console state: the
// notification marker and the staff session. It survives restarts, which is
// what keeps the New-Order Watcher from re-alerting after a reload.
type StateEntry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the StateEntry model
func (StateEntry) TableName() string {
	return "console_state"
}
