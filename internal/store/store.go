package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smart-parkir-backend/internal/model"
)

// SpotFilter narrows ListSpots. Zero values mean "no filter".
type SpotFilter struct {
	Class  model.VehicleClass
	Status model.SpotStatus
}

// HistoryFilter narrows ListHistory. A non-zero Start/End pair selects
// records whose effective time (exit time, else entry time) falls in
// [Start, End). Room matches the room field exactly.
type HistoryFilter struct {
	Start time.Time
	End   time.Time
	Room  string
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ListSpots(ctx context.Context, f SpotFilter) ([]model.Spot, error)
	GetSpot(ctx context.Context, id string) (model.Spot, error)
	UpdateSpotStatus(ctx context.Context, id string, status model.SpotStatus) error
	UpdateSensorStatus(ctx context.Context, id string, status model.SensorStatus) error

	// PlaceVehicle creates the active session and marks the spot occupied in
	// one transaction. The spot must still be available when the write lands.
	PlaceVehicle(ctx context.Context, spotID string, v model.Vehicle) error
	// ClearSpot appends the history record, deletes the active session and
	// marks the spot available in one transaction.
	ClearSpot(ctx context.Context, spotID string, rec model.HistoryRecord) error

	FindSpotByToken(ctx context.Context, token string) (model.Spot, bool, error)
	TokenInUse(ctx context.Context, token string) (bool, error)

	ListHistory(ctx context.Context, f HistoryFilter) ([]model.HistoryRecord, error)

	FindCustomer(ctx context.Context, id string) (model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	FindGuard(ctx context.Context, id string) (model.Guard, error)
	ListGuards(ctx context.Context) ([]model.Guard, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListSpots(ctx context.Context, f SpotFilter) ([]model.Spot, error) {
	q := s.db.WithContext(ctx).Preload("Vehicle").Order("seq")
	if f.Class != "" {
		q = q.Where("class = ?", f.Class)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var spots []model.Spot
	if err := q.Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}
	return spots, nil
}

func (s *gormStore) GetSpot(ctx context.Context, id string) (model.Spot, error) {
	var spot model.Spot
	err := s.db.WithContext(ctx).Preload("Vehicle").First(&spot, "id = ?", id).Error
	if err != nil {
		return model.Spot{}, err
	}
	return spot, nil
}

func (s *gormStore) UpdateSpotStatus(ctx context.Context, id string, status model.SpotStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Spot{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for spot %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) UpdateSensorStatus(ctx context.Context, id string, status model.SensorStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Spot{}).Where("id = ?", id).Update("sensor_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update sensor status for spot %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) PlaceVehicle(ctx context.Context, spotID string, v model.Vehicle) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&v).Error; err != nil {
			return fmt.Errorf("failed to create session for spot %s: %w", spotID, err)
		}

		res := tx.Model(&model.Spot{}).
			Where("id = ? AND status = ?", spotID, model.SpotAvailable).
			Update("status", model.SpotOccupied)
		if res.Error != nil {
			return fmt.Errorf("failed to occupy spot %s: %w", spotID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("spot %s is no longer available", spotID)
		}
		return nil
	})
}

func (s *gormStore) ClearSpot(ctx context.Context, spotID string, rec model.HistoryRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to append history for spot %s: %w", spotID, err)
		}
		if err := tx.Where("spot_id = ?", spotID).Delete(&model.Vehicle{}).Error; err != nil {
			return fmt.Errorf("failed to delete session for spot %s: %w", spotID, err)
		}

		res := tx.Model(&model.Spot{}).
			Where("id = ? AND status = ?", spotID, model.SpotOccupied).
			Update("status", model.SpotAvailable)
		if res.Error != nil {
			return fmt.Errorf("failed to free spot %s: %w", spotID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("spot %s is not occupied", spotID)
		}
		return nil
	})
}

func (s *gormStore) FindSpotByToken(ctx context.Context, token string) (model.Spot, bool, error) {
	var v model.Vehicle
	err := s.db.WithContext(ctx).First(&v, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Spot{}, false, nil
	}
	if err != nil {
		return model.Spot{}, false, fmt.Errorf("token lookup failed: %w", err)
	}

	spot, err := s.GetSpot(ctx, v.SpotID)
	if err != nil {
		return model.Spot{}, false, fmt.Errorf("failed to load spot %s for token: %w", v.SpotID, err)
	}
	return spot, true, nil
}

func (s *gormStore) TokenInUse(ctx context.Context, token string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Vehicle{}).Where("token = ?", token).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("token uniqueness check failed: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) ListHistory(ctx context.Context, f HistoryFilter) ([]model.HistoryRecord, error) {
	q := s.db.WithContext(ctx).Order("seq DESC")
	if !f.Start.IsZero() || !f.End.IsZero() {
		q = q.Where(
			"(exit_time IS NOT NULL AND exit_time >= ? AND exit_time < ?) OR (exit_time IS NULL AND entry_time >= ? AND entry_time < ?)",
			f.Start, f.End, f.Start, f.End,
		)
	}
	if f.Room != "" {
		q = q.Where("room_id = ?", f.Room)
	}

	var records []model.HistoryRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

func (s *gormStore) FindCustomer(ctx context.Context, id string) (model.Customer, error) {
	var c model.Customer
	err := s.db.WithContext(ctx).Preload("Vehicles").First(&c, "id = ?", id).Error
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (s *gormStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.db.WithContext(ctx).Preload("Vehicles").Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *gormStore) FindGuard(ctx context.Context, id string) (model.Guard, error) {
	var g model.Guard
	err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if err != nil {
		return model.Guard{}, err
	}
	return g, nil
}

func (s *gormStore) ListGuards(ctx context.Context) ([]model.Guard, error) {
	var guards []model.Guard
	if err := s.db.WithContext(ctx).Order("id").Find(&guards).Error; err != nil {
		return nil, fmt.Errorf("failed to list guards: %w", err)
	}
	return guards, nil
}
