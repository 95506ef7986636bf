package model

import "time"

// GuardShift is a guard's assigned work shift.
type GuardShift string

const (
	ShiftMorning GuardShift = "morning"
	ShiftDay     GuardShift = "day"
	ShiftNight   GuardShift = "night"
)

// Guard is a directory entity for a parking guard. Lookup-only from the core.
type Guard struct {
	ID       string     `gorm:"primaryKey;size:36" json:"id"`
	Name     string     `gorm:"size:128;not null" json:"name"`
	Email    string     `gorm:"size:128" json:"email"`
	Phone    string     `gorm:"size:32" json:"phone"`
	Shift    GuardShift `gorm:"size:16" json:"shift"`
	JoinDate time.Time  `json:"joinDate"`
}
