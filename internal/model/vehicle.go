package model

import "time"

// Vehicle is an active parked-vehicle session, alive between registration
// and release. On release the row is deleted and its fields are carried into
// a HistoryRecord.
type Vehicle struct {
	ID         string       `gorm:"primaryKey;size:36" json:"id"`
	SpotID     string       `gorm:"uniqueIndex;size:32;not null" json:"-"`
	Plate      string       `gorm:"size:24;not null" json:"plate"`
	Class      VehicleClass `gorm:"size:16;not null" json:"class"`
	OwnerName  string       `gorm:"size:128;not null" json:"ownerName"`
	RoomID     string       `gorm:"size:16;not null;index" json:"roomId"`
	EntryTime  time.Time    `gorm:"not null" json:"entryTime"`
	CustomerID string       `gorm:"size:36;index" json:"customerId,omitempty"`

	// Token is the exit-validation code. Unique among active sessions; the
	// engine regenerates on collision before the session is ever stored.
	Token string `gorm:"uniqueIndex;size:16;not null" json:"token,omitempty"`
}
