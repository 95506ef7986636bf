// Package seed installs the fixed spot inventory and the customer/guard
// directories. Seeding is idempotent: existing rows are left untouched, so a
// restart never resets live occupancy state.
package seed

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gopkg.in/yaml.v3"

	"smart-parkir-backend/internal/model"
)

// Fixture is the YAML shape of a seed file.
type Fixture struct {
	Spots     []SpotSeed     `yaml:"spots"`
	Customers []CustomerSeed `yaml:"customers"`
	Guards    []GuardSeed    `yaml:"guards"`
}

// SpotSeed describes one parking spot. Status defaults to available and
// sensor to normal when omitted.
type SpotSeed struct {
	ID           string `yaml:"id"`
	Label        string `yaml:"label"`
	Class        string `yaml:"class"`
	Status       string `yaml:"status"`
	SensorStatus string `yaml:"sensor_status"`
}

// CustomerSeed describes one resident and their registered vehicles.
type CustomerSeed struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	Email      string        `yaml:"email"`
	Phone      string        `yaml:"phone"`
	RoomID     string        `yaml:"room_id"`
	MoveInDate string        `yaml:"move_in_date"`
	Gender     string        `yaml:"gender"`
	Occupation string        `yaml:"occupation"`
	Vehicles   []VehicleSeed `yaml:"vehicles"`
}

// VehicleSeed describes one registered vehicle on a customer profile.
type VehicleSeed struct {
	Plate string `yaml:"plate"`
	Class string `yaml:"class"`
	Brand string `yaml:"brand"`
	Color string `yaml:"color"`
}

// GuardSeed describes one guard.
type GuardSeed struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Shift    string `yaml:"shift"`
	JoinDate string `yaml:"join_date"`
}

// Load reads a fixture from the given YAML file, or returns the built-in
// fixture when path is empty.
func Load(path string) (Fixture, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f, nil
}

// Apply inserts the fixture rows that do not exist yet.
func Apply(db *gorm.DB, f Fixture) error {
	spots := make([]model.Spot, 0, len(f.Spots))
	for i, s := range f.Spots {
		class := model.VehicleClass(s.Class)
		if !class.Valid() {
			return fmt.Errorf("spot %s: unknown class %q", s.ID, s.Class)
		}
		status := model.SpotStatus(s.Status)
		if s.Status == "" {
			status = model.SpotAvailable
		}
		if !status.Valid() {
			return fmt.Errorf("spot %s: unknown status %q", s.ID, s.Status)
		}
		sensor := model.SensorStatus(s.SensorStatus)
		if s.SensorStatus == "" {
			sensor = model.SensorNormal
		}
		if !sensor.Valid() {
			return fmt.Errorf("spot %s: unknown sensor status %q", s.ID, s.SensorStatus)
		}

		spots = append(spots, model.Spot{
			ID:           s.ID,
			Seq:          i + 1,
			Label:        s.Label,
			Class:        class,
			Status:       status,
			SensorStatus: sensor,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if len(spots) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&spots).Error; err != nil {
				return fmt.Errorf("failed to seed spots: %w", err)
			}
		}

		// Registered vehicles are inserted separately: a DO NOTHING clause on
		// the customer insert does not extend to GORM's association upsert,
		// which conflicts on the (customer_id, plate) index when re-seeding.
		for _, c := range f.Customers {
			customer := model.Customer{
				ID:         c.ID,
				Name:       c.Name,
				Email:      c.Email,
				Phone:      c.Phone,
				RoomID:     c.RoomID,
				MoveInDate: parseDate(c.MoveInDate),
				Gender:     c.Gender,
				Occupation: c.Occupation,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&customer).Error; err != nil {
				return fmt.Errorf("failed to seed customer %s: %w", c.ID, err)
			}
			for _, v := range c.Vehicles {
				rv := model.RegisteredVehicle{
					CustomerID: c.ID,
					Plate:      v.Plate,
					Class:      model.VehicleClass(v.Class),
					Brand:      v.Brand,
					Color:      v.Color,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "customer_id"}, {Name: "plate"}},
					DoNothing: true,
				}).Create(&rv).Error; err != nil {
					return fmt.Errorf("failed to seed vehicle %s for customer %s: %w", v.Plate, c.ID, err)
				}
			}
		}

		for _, g := range f.Guards {
			guard := model.Guard{
				ID:       g.ID,
				Name:     g.Name,
				Email:    g.Email,
				Phone:    g.Phone,
				Shift:    model.GuardShift(g.Shift),
				JoinDate: parseDate(g.JoinDate),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&guard).Error; err != nil {
				return fmt.Errorf("failed to seed guard %s: %w", g.ID, err)
			}
		}
		return nil
	})
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Printf("Warning: invalid seed date %q, using zero time", s)
		return time.Time{}
	}
	return t
}
