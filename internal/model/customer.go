package model

import "time"

// Customer is a directory entity for a resident. The occupancy core only
// reads customers; profile editing happens outside the core on its own copy.
type Customer struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Email      string    `gorm:"size:128" json:"email"`
	Phone      string    `gorm:"size:32" json:"phone"`
	RoomID     string    `gorm:"size:16;index" json:"roomId"`
	MoveInDate time.Time `json:"moveInDate"`
	Gender     string    `gorm:"size:16" json:"gender"`
	Occupation string    `gorm:"size:64" json:"occupation"`

	// Associations
	Vehicles []RegisteredVehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

// RegisteredVehicle is a vehicle on a customer's profile. Distinct from an
// active session: this is static directory data matched by plate/owner.
type RegisteredVehicle struct {
	ID         int64        `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID string       `gorm:"size:36;not null;uniqueIndex:idx_customer_plate" json:"-"`
	Plate      string       `gorm:"size:24;not null;uniqueIndex:idx_customer_plate" json:"plate"`
	Class      VehicleClass `gorm:"size:16;not null" json:"class"`
	Brand      string       `gorm:"size:64" json:"brand"`
	Color      string       `gorm:"size:32" json:"color"`
}
