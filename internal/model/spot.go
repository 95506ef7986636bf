package model

import "time"

// VehicleClass distinguishes the two parking capacities. A vehicle may only
// occupy a spot of the same class.
type VehicleClass string

const (
	ClassTwoWheel  VehicleClass = "two_wheel"
	ClassFourWheel VehicleClass = "four_wheel"
)

// Valid reports whether c is one of the known vehicle classes.
func (c VehicleClass) Valid() bool {
	return c == ClassTwoWheel || c == ClassFourWheel
}

// SpotStatus is the operational status of a parking spot.
type SpotStatus string

const (
	SpotAvailable    SpotStatus = "available"
	SpotOccupied     SpotStatus = "occupied"
	SpotOutOfService SpotStatus = "out_of_service"
)

// Valid reports whether s is one of the known spot statuses.
func (s SpotStatus) Valid() bool {
	return s == SpotAvailable || s == SpotOccupied || s == SpotOutOfService
}

// SensorStatus reflects the health of a spot's occupancy sensor. It is
// informational only and never blocks allocation.
type SensorStatus string

const (
	SensorNormal  SensorStatus = "normal"
	SensorFaulted SensorStatus = "faulted"
)

// Valid reports whether s is one of the known sensor statuses.
func (s SensorStatus) Valid() bool {
	return s == SensorNormal || s == SensorFaulted
}

// Spot represents a single physical parking location. The inventory is fixed
// at seeding time; spots are mutated only through the occupancy engine and
// never destroyed.
//
// Invariant: Status == SpotOccupied exactly when Vehicle is non-nil. Both
// sides of the transition are written in one transaction by the store.
type Spot struct {
	ID           string       `gorm:"primaryKey;size:32" json:"id"`
	Seq          int          `gorm:"not null;index" json:"-"`
	Label        string       `gorm:"uniqueIndex;size:16;not null" json:"label"`
	Class        VehicleClass `gorm:"size:16;not null;index" json:"class"`
	Status       SpotStatus   `gorm:"size:24;not null;index" json:"status"`
	SensorStatus SensorStatus `gorm:"size:16;not null" json:"sensorStatus"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`

	// Associations
	Vehicle *Vehicle `gorm:"foreignKey:SpotID" json:"vehicle,omitempty"`
}
