package model

import "time"

// HistoryRecord is an immutable closed parking session. Records are appended
// at the head of the ledger (highest Seq first) and are never updated,
// reordered or removed.
type HistoryRecord struct {
	Seq        int64        `gorm:"primaryKey;autoIncrement" json:"-"`
	ID         string       `gorm:"size:36;not null;index" json:"id"`
	Plate      string       `gorm:"size:24;not null" json:"plate"`
	Class      VehicleClass `gorm:"size:16;not null" json:"class"`
	OwnerName  string       `gorm:"size:128;not null" json:"ownerName"`
	RoomID     string       `gorm:"size:16;not null;index" json:"roomId"`
	EntryTime  time.Time    `gorm:"not null" json:"entryTime"`
	CustomerID string       `gorm:"size:36" json:"customerId,omitempty"`
	Token      string       `gorm:"size:16" json:"token,omitempty"`

	// ExitTime is nil only for imported open-ended rows; records produced by
	// the engine always carry it. Duration is derived from the two
	// timestamps at release and never set independently.
	ExitTime *time.Time `gorm:"index" json:"exitTime,omitempty"`
	Duration string     `gorm:"size:32" json:"duration,omitempty"`
}

// EffectiveTime is the timestamp used for calendar-date queries: the exit
// time when the session is closed, the entry time otherwise.
func (r HistoryRecord) EffectiveTime() time.Time {
	if r.ExitTime != nil {
		return *r.ExitTime
	}
	return r.EntryTime
}
