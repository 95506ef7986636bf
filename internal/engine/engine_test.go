package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdb "smart-parkir-backend/internal/db"
	"smart-parkir-backend/internal/model"
	"smart-parkir-backend/internal/seed"
	"smart-parkir-backend/internal/store"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory sqlite database seeded with the default
// inventory (M1-M12 two-wheel, C1-C6 four-wheel, M12 out of service).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:enginetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(gdb))
	require.NoError(t, seed.Apply(gdb, seed.Default()))
	return gdb
}

// stubTokens hands out a fixed sequence of codes, cycling when exhausted.
type stubTokens struct {
	codes []string
	next  int
}

func (s *stubTokens) Token() (string, error) {
	code := s.codes[s.next%len(s.codes)]
	s.next++
	return code, nil
}

// testClock is a settable wall clock.
type testClock struct {
	now time.Time
}

func (c *testClock) read() time.Time { return c.now }

func parseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05", value)
	require.NoError(t, err)
	return ts
}

func newTestEngine(t *testing.T, tokens []string, opts ...Option) (*Engine, store.Store, *testClock) {
	t.Helper()
	gdb := newTestDB(t)
	s := store.NewGormStore(gdb)
	clk := &testClock{now: parseTime(t, "2025-01-01T08:00:00")}
	opts = append([]Option{WithClock(clk.read)}, opts...)
	eng := New(s, &stubTokens{codes: tokens}, opts...)
	return eng, s, clk
}

// assertOccupancyInvariant checks that for every spot, status == occupied
// exactly when a vehicle is present.
func assertOccupancyInvariant(t *testing.T, s store.Store) {
	t.Helper()
	spots, err := s.ListSpots(context.Background(), store.SpotFilter{})
	require.NoError(t, err)
	for _, spot := range spots {
		if spot.Status == model.SpotOccupied {
			assert.NotNil(t, spot.Vehicle, "spot %s is occupied but has no vehicle", spot.Label)
		} else {
			assert.Nil(t, spot.Vehicle, "spot %s is %s but has a vehicle", spot.Label, spot.Status)
		}
	}
}

func historyCount(t *testing.T, s store.Store) int {
	t.Helper()
	records, err := s.ListHistory(context.Background(), store.HistoryFilter{})
	require.NoError(t, err)
	return len(records)
}

func TestRegisterAndReleaseLifecycle(t *testing.T) {
	eng, s, clk := newTestEngine(t, []string{"QRTEST01"})
	ctx := context.Background()

	v, err := eng.RegisterVehicle(ctx, "2", RegisterRequest{
		Plate:      "B 1234 XYZ",
		Class:      model.ClassTwoWheel,
		OwnerName:  "Ahmad Pratama",
		RoomID:     "A-101",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "QRTEST01", v.Token)
	assert.Equal(t, parseTime(t, "2025-01-01T08:00:00"), v.EntryTime)
	assertOccupancyInvariant(t, s)

	spot, err := s.GetSpot(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.SpotOccupied, spot.Status)
	require.NotNil(t, spot.Vehicle)
	assert.Equal(t, "B 1234 XYZ", spot.Vehicle.Plate)

	clk.now = parseTime(t, "2025-01-01T09:15:00")
	rec, err := eng.ReleaseVehicle(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "1 jam 15 menit", rec.Duration)
	assert.Equal(t, v.ID, rec.ID)
	assert.True(t, rec.EntryTime.Equal(v.EntryTime))
	require.NotNil(t, rec.ExitTime)
	assert.Equal(t, clk.now, *rec.ExitTime)
	assertOccupancyInvariant(t, s)

	spot, err = s.GetSpot(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.SpotAvailable, spot.Status)
	assert.Nil(t, spot.Vehicle)

	assert.Equal(t, 1, historyCount(t, s))
}

func TestRegisterPreconditions(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRAAAAAA", "QRBBBBBB"})
	ctx := context.Background()
	req := RegisterRequest{Plate: "B 1 A", Class: model.ClassTwoWheel, OwnerName: "A", RoomID: "A-1"}

	t.Run("unknown spot", func(t *testing.T) {
		_, err := eng.RegisterVehicle(ctx, "no-such-spot", req)
		assert.ErrorIs(t, err, ErrSpotNotFound)
	})

	t.Run("occupied spot", func(t *testing.T) {
		_, err := eng.RegisterVehicle(ctx, "1", req)
		require.NoError(t, err)

		_, err = eng.RegisterVehicle(ctx, "1", req)
		assert.ErrorIs(t, err, ErrSpotUnavailable)

		// The failed registration must not disturb the standing session.
		spot, err := s.GetSpot(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, spot.Vehicle)
		assert.Equal(t, "QRAAAAAA", spot.Vehicle.Token)
		assertOccupancyInvariant(t, s)
	})

	t.Run("out of service spot", func(t *testing.T) {
		_, err := eng.RegisterVehicle(ctx, "12", req)
		assert.ErrorIs(t, err, ErrSpotUnavailable)
	})

	t.Run("class mismatch", func(t *testing.T) {
		_, err := eng.RegisterVehicle(ctx, "13", req) // C1 is four-wheel
		assert.ErrorIs(t, err, ErrSpotUnavailable)

		spot, err := s.GetSpot(ctx, "13")
		require.NoError(t, err)
		assert.Equal(t, model.SpotAvailable, spot.Status)
	})

	t.Run("unknown class", func(t *testing.T) {
		bad := req
		bad.Class = "three_wheel"
		_, err := eng.RegisterVehicle(ctx, "2", bad)
		assert.ErrorIs(t, err, ErrSpotUnavailable)
	})

	assert.Equal(t, 0, historyCount(t, s))
}

func TestDurationFormattingOnRelease(t *testing.T) {
	testCases := []struct {
		name     string
		entry    string
		exit     string
		expected string
	}{
		{"hours and minutes", "2025-01-01T08:00:00", "2025-01-01T12:45:00", "4 jam 45 menit"},
		{"under an hour", "2025-01-01T08:00:00", "2025-01-01T08:30:00", "30 menit"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, clk := newTestEngine(t, []string{"QRDUR001"})
			ctx := context.Background()

			clk.now = parseTime(t, tc.entry)
			_, err := eng.RegisterVehicle(ctx, "3", RegisterRequest{
				Plate: "B 2 B", Class: model.ClassTwoWheel, OwnerName: "B", RoomID: "A-2",
			})
			require.NoError(t, err)

			clk.now = parseTime(t, tc.exit)
			rec, err := eng.ReleaseVehicle(ctx, "3")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rec.Duration)
		})
	}
}

func TestReleaseOnAvailableSpot(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRFREE01"})

	_, err := eng.ReleaseVehicle(context.Background(), "4")
	assert.ErrorIs(t, err, ErrSpotNotOccupied)
	assert.Equal(t, 0, historyCount(t, s))
}

func TestValidateToken(t *testing.T) {
	eng, _, _ := newTestEngine(t, []string{"QRVALID1"})
	ctx := context.Background()

	_, err := eng.RegisterVehicle(ctx, "5", RegisterRequest{
		Plate: "B 3 C", Class: model.ClassTwoWheel, OwnerName: "C", RoomID: "A-3",
	})
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		spot, found, err := eng.ValidateToken(ctx, "QRVALID1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "M5", spot.Label)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		_, found, err := eng.ValidateToken(ctx, "QRNOSUCH")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		_, _, err := eng.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyToken)

		_, _, err = eng.ValidateToken(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("token dies with its session", func(t *testing.T) {
		_, err := eng.ReleaseVehicle(ctx, "5")
		require.NoError(t, err)

		_, found, err := eng.ValidateToken(ctx, "QRVALID1")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestConfirmExit(t *testing.T) {
	var freed []string
	eng, s, clk := newTestEngine(t, []string{"QRM2EXIT"},
		WithReleaseHook(func(spotID string) { freed = append(freed, spotID) }))
	ctx := context.Background()

	v, err := eng.RegisterVehicle(ctx, "2", RegisterRequest{
		Plate:      "B 1234 XYZ",
		Class:      model.ClassTwoWheel,
		OwnerName:  "Ahmad Pratama",
		RoomID:     "A-101",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, v.Token)

	clk.now = parseTime(t, "2025-01-01T09:15:00")
	rec, err := eng.ConfirmExit(ctx, v.Token)
	require.NoError(t, err)
	assert.Equal(t, "1 jam 15 menit", rec.Duration)
	assert.Equal(t, "B 1234 XYZ", rec.Plate)

	spot, err := s.GetSpot(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.SpotAvailable, spot.Status)
	assert.Equal(t, []string{"2"}, freed)
	assertOccupancyInvariant(t, s)

	t.Run("unknown token", func(t *testing.T) {
		_, err := eng.ConfirmExit(ctx, "QRGHOST1")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := eng.ConfirmExit(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyToken)
	})
}

func TestTokenCollisionRetries(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRSAME00", "QRSAME00", "QROTHER0"})
	ctx := context.Background()

	_, err := eng.RegisterVehicle(ctx, "1", RegisterRequest{
		Plate: "B 1 A", Class: model.ClassTwoWheel, OwnerName: "A", RoomID: "A-1",
	})
	require.NoError(t, err)

	// Second registration draws QRSAME00 again, detects the collision and
	// lands on QROTHER0.
	v, err := eng.RegisterVehicle(ctx, "2", RegisterRequest{
		Plate: "B 2 B", Class: model.ClassTwoWheel, OwnerName: "B", RoomID: "A-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "QROTHER0", v.Token)
	assertOccupancyInvariant(t, s)
}

func TestTokenCollisionExhaustion(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRSTUCK0"})
	ctx := context.Background()

	_, err := eng.RegisterVehicle(ctx, "1", RegisterRequest{
		Plate: "B 1 A", Class: model.ClassTwoWheel, OwnerName: "A", RoomID: "A-1",
	})
	require.NoError(t, err)

	_, err = eng.RegisterVehicle(ctx, "2", RegisterRequest{
		Plate: "B 2 B", Class: model.ClassTwoWheel, OwnerName: "B", RoomID: "A-2",
	})
	assert.ErrorIs(t, err, ErrTokenCollision)

	// The failed registration leaves the spot untouched.
	spot, err := s.GetSpot(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.SpotAvailable, spot.Status)
	assert.Nil(t, spot.Vehicle)
}

func TestSetOperationalStatus(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRSTATUS"})
	ctx := context.Background()

	t.Run("occupied spots are locked", func(t *testing.T) {
		_, err := eng.RegisterVehicle(ctx, "6", RegisterRequest{
			Plate: "B 6 F", Class: model.ClassTwoWheel, OwnerName: "F", RoomID: "B-1",
		})
		require.NoError(t, err)

		err = eng.SetOperationalStatus(ctx, "6", model.SpotOutOfService)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		err = eng.SetOperationalStatus(ctx, "6", model.SpotAvailable)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("occupied is never a target", func(t *testing.T) {
		err := eng.SetOperationalStatus(ctx, "8", model.SpotOccupied)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("available to out of service and back", func(t *testing.T) {
		require.NoError(t, eng.SetOperationalStatus(ctx, "8", model.SpotOutOfService))

		available, err := eng.FindAvailableSpots(ctx, model.ClassTwoWheel)
		require.NoError(t, err)
		for _, spot := range available {
			assert.NotEqual(t, "8", spot.ID, "out-of-service spot offered for registration")
		}

		require.NoError(t, eng.SetOperationalStatus(ctx, "8", model.SpotAvailable))
		spot, err := s.GetSpot(ctx, "8")
		require.NoError(t, err)
		assert.Equal(t, model.SpotAvailable, spot.Status)
	})

	t.Run("unknown spot", func(t *testing.T) {
		err := eng.SetOperationalStatus(ctx, "no-such-spot", model.SpotOutOfService)
		assert.ErrorIs(t, err, ErrSpotNotFound)
	})
}

func TestSetSensorStatus(t *testing.T) {
	eng, s, _ := newTestEngine(t, []string{"QRSENSOR"})
	ctx := context.Background()

	require.NoError(t, eng.SetSensorStatus(ctx, "9", model.SensorFaulted))
	spot, err := s.GetSpot(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, model.SensorFaulted, spot.SensorStatus)
	// A sensor fault never blocks allocation.
	assert.Equal(t, model.SpotAvailable, spot.Status)

	err = eng.SetSensorStatus(ctx, "no-such-spot", model.SensorNormal)
	assert.ErrorIs(t, err, ErrSpotNotFound)

	err = eng.SetSensorStatus(ctx, "9", "oscillating")
	assert.Error(t, err)
}

func TestFindAvailableSpots(t *testing.T) {
	eng, _, _ := newTestEngine(t, []string{"QRFIND01"})
	ctx := context.Background()

	spots, err := eng.FindAvailableSpots(ctx, model.ClassTwoWheel)
	require.NoError(t, err)
	// M12 is seeded out of service, the other eleven two-wheel spots are free.
	assert.Len(t, spots, 11)
	for _, s := range spots {
		assert.Equal(t, model.ClassTwoWheel, s.Class)
		assert.Equal(t, model.SpotAvailable, s.Status)
	}

	fourWheel, err := eng.FindAvailableSpots(ctx, model.ClassFourWheel)
	require.NoError(t, err)
	assert.Len(t, fourWheel, 6)

	_, err = eng.FindAvailableSpots(ctx, "hovercraft")
	assert.Error(t, err)
}
