package calculate_tariff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeTariffRepo отдает все тарифы без фильтрации
type fakeTariffRepo struct {
	tariffs   []*domain.Tariff
	err       error
	lastQuery domain.TariffQuery
}

func (f *fakeTariffRepo) FindCandidates(_ context.Context, q domain.TariffQuery) ([]*domain.Tariff, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.tariffs, nil
}

func window(start, end string) (*types.TimeString, *types.TimeString) {
	s, e := types.TimeString(start), types.TimeString(end)
	return &s, &e
}

func tariff(id int64, mode domain.CalculationMode, vehicle domain.VehicleType, price float64) *domain.Tariff {
	return &domain.Tariff{
		ID:          id,
		Name:        "tarifa",
		Mode:        mode,
		VehicleType: vehicle,
		DayOfWeek:   domain.AnyDay,
		Price:       price,
		Active:      true,
	}
}

func utc(h, m, s int) time.Time {
	// 2024-01-15 - понедельник
	return time.Date(2024, 1, 15, h, m, s, 0, time.UTC)
}

func TestExecute_PerHourMotorcycle(t *testing.T) {
	repo := &fakeTariffRepo{tariffs: []*domain.Tariff{
		tariff(1, domain.ModePerHour, domain.VehicleMotorcycle, 1000),
	}}
	uc := NewUseCase(repo, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VehicleType:  domain.VehicleMotorcycle,
		ParkingLotID: 1,
		CheckIn:      utc(10, 0, 0),
		CheckOut:     ptr.Ptr(utc(12, 30, 1)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.AppliedTariff.ID)
	assert.Equal(t, int64(151), resp.ElapsedMinutes)
	assert.Equal(t, int64(3), resp.ElapsedHours)
	assert.Equal(t, int64(1), resp.ElapsedDays)
	assert.Equal(t, 3000.00, resp.TotalAmount)
	assert.Equal(t, domain.Monday, repo.lastQuery.Day)
	assert.Equal(t, types.TimeString("10:00"), repo.lastQuery.Time)
}

func TestExecute_Modes(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.CalculationMode
		price    float64
		checkOut time.Time
		want     float64
	}{
		{name: "per minute", mode: domain.ModePerMinute, price: 50, checkOut: utc(10, 2, 30), want: 150},
		{name: "per day", mode: domain.ModePerDay, price: 20000, checkOut: utc(10, 0, 0).Add(25 * time.Hour), want: 40000},
		{name: "fixed", mode: domain.ModeFixed, price: 5000, checkOut: utc(18, 0, 0), want: 5000},
		{name: "rounding", mode: domain.ModePerMinute, price: 33.333, checkOut: utc(10, 3, 0), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTariffRepo{tariffs: []*domain.Tariff{tariff(1, tt.mode, domain.VehicleAny, tt.price)}}
			uc := NewUseCase(repo, time.UTC, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{
				VehicleType:  domain.VehicleCar,
				ParkingLotID: 1,
				CheckIn:      utc(10, 0, 0),
				CheckOut:     ptr.Ptr(tt.checkOut),
			})

			require.NoError(t, err)
			assert.InDelta(t, tt.want, resp.TotalAmount, 0.0001)
		})
	}
}

func TestExecute_NonPositiveDurationCountsAsOneUnit(t *testing.T) {
	repo := &fakeTariffRepo{tariffs: []*domain.Tariff{tariff(1, domain.ModePerHour, domain.VehicleAny, 1000)}}
	uc := NewUseCase(repo, time.UTC, nopLogger{})

	for _, out := range []time.Time{utc(10, 0, 0), utc(9, 0, 0)} {
		resp, err := uc.Execute(context.Background(), &Request{
			VehicleType:  domain.VehicleCar,
			ParkingLotID: 1,
			CheckIn:      utc(10, 0, 0),
			CheckOut:     ptr.Ptr(out),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ElapsedMinutes)
		assert.Equal(t, int64(1), resp.ElapsedHours)
		assert.Equal(t, int64(1), resp.ElapsedDays)
		assert.Equal(t, 1000.0, resp.TotalAmount)
	}
}

func TestExecute_MostSpecificWins(t *testing.T) {
	generic := tariff(1, domain.ModePerHour, domain.VehicleAny, 100)

	vehicle := tariff(2, domain.ModePerHour, domain.VehicleCar, 200)

	windowed := tariff(3, domain.ModePerHour, domain.VehicleAny, 300)
	windowed.StartTime, windowed.EndTime = window("08:00", "12:00")

	daily := tariff(4, domain.ModePerHour, domain.VehicleAny, 400)
	daily.DayOfWeek = domain.Monday

	lot := tariff(5, domain.ModePerHour, domain.VehicleAny, 500)
	lot.ParkingLotID = ptr.Ptr(int64(7))

	otherLot := tariff(6, domain.ModePerHour, domain.VehicleAny, 600)
	otherLot.ParkingLotID = ptr.Ptr(int64(8))

	tests := []struct {
		name    string
		tariffs []*domain.Tariff
		wantID  int64
	}{
		{name: "vehicle over generic", tariffs: []*domain.Tariff{generic, vehicle}, wantID: 2},
		{name: "window over vehicle", tariffs: []*domain.Tariff{vehicle, windowed}, wantID: 3},
		{name: "day over window and vehicle", tariffs: []*domain.Tariff{vehicle, windowed, daily}, wantID: 4},
		{name: "lot over everything", tariffs: []*domain.Tariff{generic, vehicle, windowed, daily, lot}, wantID: 5},
		{name: "other lot is not a candidate", tariffs: []*domain.Tariff{generic, otherLot}, wantID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeTariffRepo{tariffs: tt.tariffs}, time.UTC, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{
				VehicleType:  domain.VehicleCar,
				ParkingLotID: 7,
				CheckIn:      utc(10, 0, 0),
				CheckOut:     ptr.Ptr(utc(11, 0, 0)),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.AppliedTariff.ID)
		})
	}
}

func TestExecute_TieBreaksOnLowestID(t *testing.T) {
	repo := &fakeTariffRepo{tariffs: []*domain.Tariff{
		tariff(9, domain.ModePerHour, domain.VehicleCar, 900),
		tariff(3, domain.ModePerHour, domain.VehicleCar, 300),
	}}
	uc := NewUseCase(repo, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VehicleType:  domain.VehicleCar,
		ParkingLotID: 1,
		CheckIn:      utc(10, 0, 0),
		CheckOut:     ptr.Ptr(utc(11, 0, 0)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.AppliedTariff.ID)
	assert.Equal(t, 300.0, resp.TotalAmount)
}

func TestExecute_WindowEndIsExclusive(t *testing.T) {
	morning := tariff(1, domain.ModeFixed, domain.VehicleAny, 1000)
	morning.StartTime, morning.EndTime = window("06:00", "12:00")
	uc := NewUseCase(&fakeTariffRepo{tariffs: []*domain.Tariff{morning}}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		VehicleType:  domain.VehicleCar,
		ParkingLotID: 1,
		CheckIn:      utc(12, 0, 0),
		CheckOut:     ptr.Ptr(utc(13, 0, 0)),
	})

	assert.ErrorIs(t, err, ErrNoApplicableRate)
}

func TestExecute_UsesConfiguredLocation(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	sunday := tariff(1, domain.ModeFixed, domain.VehicleAny, 1000)
	sunday.DayOfWeek = domain.Sunday
	repo := &fakeTariffRepo{tariffs: []*domain.Tariff{sunday}}
	uc := NewUseCase(repo, bogota, nopLogger{})

	// понедельник 03:00 UTC = воскресенье 22:00 в Боготе
	resp, err := uc.Execute(context.Background(), &Request{
		VehicleType:  domain.VehicleCar,
		ParkingLotID: 1,
		CheckIn:      utc(3, 0, 0),
		CheckOut:     ptr.Ptr(utc(4, 0, 0)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.AppliedTariff.ID)
	assert.Equal(t, types.TimeString("22:00"), repo.lastQuery.Time)
}

func TestExecute_SkipsInapplicableCandidates(t *testing.T) {
	inactive := tariff(1, domain.ModeFixed, domain.VehicleCar, 1)
	inactive.ParkingLotID = ptr.Ptr(int64(1))
	inactive.Active = false

	otherLot := tariff(2, domain.ModeFixed, domain.VehicleCar, 2)
	otherLot.ParkingLotID = ptr.Ptr(int64(7))

	otherVehicle := tariff(3, domain.ModeFixed, domain.VehicleMotorcycle, 3)
	otherVehicle.ParkingLotID = ptr.Ptr(int64(1))

	start, end := window("14:00", "18:00")
	outsideWindow := tariff(4, domain.ModeFixed, domain.VehicleCar, 4)
	outsideWindow.StartTime, outsideWindow.EndTime = start, end

	general := tariff(5, domain.ModePerHour, domain.VehicleAny, 10)

	repo := &fakeTariffRepo{tariffs: []*domain.Tariff{inactive, otherLot, otherVehicle, outsideWindow, general}}
	uc := NewUseCase(repo, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VehicleType:  domain.VehicleCar,
		ParkingLotID: 1,
		CheckIn:      utc(10, 0, 0),
		CheckOut:     ptr.Ptr(utc(11, 0, 0)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.AppliedTariff.ID)
	assert.Equal(t, 10.0, resp.TotalAmount)
}

func TestExecute_Errors(t *testing.T) {
	broken := tariff(1, domain.CalculationMode("por_semana"), domain.VehicleAny, 10)

	tests := []struct {
		name    string
		repo    *fakeTariffRepo
		req     *Request
		wantErr error
	}{
		{
			name:    "missing check-out",
			repo:    &fakeTariffRepo{},
			req:     &Request{VehicleType: domain.VehicleCar, ParkingLotID: 1, CheckIn: utc(10, 0, 0)},
			wantErr: ErrMissingCheckOut,
		},
		{
			name:    "wildcard vehicle type",
			repo:    &fakeTariffRepo{},
			req:     &Request{VehicleType: domain.VehicleAny, ParkingLotID: 1, CheckIn: utc(10, 0, 0), CheckOut: ptr.Ptr(utc(11, 0, 0))},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid lot",
			repo:    &fakeTariffRepo{},
			req:     &Request{VehicleType: domain.VehicleCar, CheckIn: utc(10, 0, 0), CheckOut: ptr.Ptr(utc(11, 0, 0))},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no applicable rate",
			repo:    &fakeTariffRepo{},
			req:     &Request{VehicleType: domain.VehicleCar, ParkingLotID: 1, CheckIn: utc(10, 0, 0), CheckOut: ptr.Ptr(utc(11, 0, 0))},
			wantErr: ErrNoApplicableRate,
		},
		{
			name:    "stored tariff has unknown mode",
			repo:    &fakeTariffRepo{tariffs: []*domain.Tariff{broken}},
			req:     &Request{VehicleType: domain.VehicleCar, ParkingLotID: 1, CheckIn: utc(10, 0, 0), CheckOut: ptr.Ptr(utc(11, 0, 0))},
			wantErr: ErrInvalidCalculationMode,
		},
		{
			name:    "repository failure",
			repo:    &fakeTariffRepo{err: errors.New("connection reset")},
			req:     &Request{VehicleType: domain.VehicleCar, ParkingLotID: 1, CheckIn: utc(10, 0, 0), CheckOut: ptr.Ptr(utc(11, 0, 0))},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.repo, time.UTC, nopLogger{})

			resp, err := uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeElapsed_MillisecondPrecision(t *testing.T) {
	in := utc(10, 0, 0)

	e := computeElapsed(in, in.Add(time.Hour+time.Microsecond))
	assert.Equal(t, int64(1), e.hours)

	e = computeElapsed(in, in.Add(time.Hour+time.Millisecond))
	assert.Equal(t, int64(2), e.hours)
	assert.Equal(t, int64(61), e.minutes)
}
