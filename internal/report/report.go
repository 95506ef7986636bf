// Package report derives read-only operational summaries from spot and
// history snapshots. It never mutates state.
package report

import (
	"time"

	"smart-parkir-backend/internal/durasi"
	"smart-parkir-backend/internal/model"
)

// Daily summarizes one calendar day of parking activity plus the live state
// of the lot at build time.
type Daily struct {
	Date                   string `json:"date"`
	TotalSessions          int    `json:"totalSessions"`
	TwoWheelSessions       int    `json:"twoWheelSessions"`
	FourWheelSessions      int    `json:"fourWheelSessions"`
	AverageDurationMinutes int    `json:"averageDurationMinutes"`
	CurrentOccupied        int    `json:"currentOccupied"`
	CurrentAvailable       int    `json:"currentAvailable"`
	OutOfService           int    `json:"outOfService"`
	SensorFaults           int    `json:"sensorFaults"`
}

// BuildDaily aggregates the given day's history records and the current spot
// snapshot. The records are expected to be pre-filtered to the day; the
// average counts closed sessions only.
func BuildDaily(date time.Time, spots []model.Spot, records []model.HistoryRecord) Daily {
	d := Daily{
		Date:          date.Format("2006-01-02"),
		TotalSessions: len(records),
	}

	totalMinutes := 0
	closed := 0
	for _, r := range records {
		switch r.Class {
		case model.ClassTwoWheel:
			d.TwoWheelSessions++
		case model.ClassFourWheel:
			d.FourWheelSessions++
		}
		if r.ExitTime != nil {
			totalMinutes += durasi.Minutes(r.EntryTime, *r.ExitTime)
			closed++
		}
	}
	if closed > 0 {
		d.AverageDurationMinutes = totalMinutes / closed
	}

	for _, s := range spots {
		switch s.Status {
		case model.SpotOccupied:
			d.CurrentOccupied++
		case model.SpotAvailable:
			d.CurrentAvailable++
		case model.SpotOutOfService:
			d.OutOfService++
		}
		if s.SensorStatus == model.SensorFaulted {
			d.SensorFaults++
		}
	}
	return d
}
