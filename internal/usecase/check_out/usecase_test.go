package check_out

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordedCheckOut struct {
	vehicle string
	charged bool
	amount  float64
}

type fakeMetrics struct {
	checkOuts    []recordedCheckOut
	tariffErrors []string
}

func (m *fakeMetrics) ObserveCheckOut(vehicleType string, charged bool, amount float64) {
	m.checkOuts = append(m.checkOuts, recordedCheckOut{vehicle: vehicleType, charged: charged, amount: amount})
}

func (m *fakeMetrics) ObserveTariffError(reason string) {
	m.tariffErrors = append(m.tariffErrors, reason)
}

// fakeEntries повторяет условное закрытие репозитория
type fakeEntries struct {
	entries  map[int64]*domain.Entry
	getErr   error
	closeErr error
}

func (f *fakeEntries) GetByID(_ context.Context, id int64) (*domain.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.entries[id]
	if !ok {
		return nil, entryRepo.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntries) Close(_ context.Context, id int64, checkOut time.Time, amount float64) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	e, ok := f.entries[id]
	if !ok || !e.IsOpen() {
		return entryRepo.ErrEntryNotOpen
	}
	e.Status = domain.EntryClosed
	e.CheckOutTime = &checkOut
	e.ChargedAmount = amount
	return nil
}

type fakeTariffs []*domain.Tariff

func (f fakeTariffs) FindCandidates(context.Context, domain.TariffQuery) ([]*domain.Tariff, error) {
	return f, nil
}

type failingCalculator struct{ err error }

func (c failingCalculator) Execute(context.Context, *calculate_tariff.Request) (*calculate_tariff.Response, error) {
	return nil, c.err
}

var (
	checkIn  = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, 1, 15, 12, 30, 1, 0, time.UTC)
)

func newEntries() *fakeEntries {
	return &fakeEntries{entries: map[int64]*domain.Entry{
		1: {
			ID:           1,
			Plate:        "ABC123",
			VehicleType:  domain.VehicleMotorcycle,
			ParkingLotID: 1,
			SpaceNumber:  2,
			CheckInTime:  checkIn,
			Status:       domain.EntryOpen,
		},
	}}
}

func newUseCase(entries *fakeEntries, calc TariffCalculator) (*UseCase, *fakeMetrics) {
	m := &fakeMetrics{}
	uc := NewUseCase(entries, calc, m, nopLogger{})
	uc.timeProvider = fixedClock{now: checkOut}
	return uc, m
}

func perHourMoto() TariffCalculator {
	return calculate_tariff.NewUseCase(fakeTariffs{{
		ID:          1,
		Name:        "Moto por hora",
		Mode:        domain.ModePerHour,
		VehicleType: domain.VehicleMotorcycle,
		DayOfWeek:   domain.AnyDay,
		Price:       1000,
		Active:      true,
	}}, time.UTC, nopLogger{})
}

func TestExecute_ChargesApplicableRate(t *testing.T) {
	entries := newEntries()
	uc, m := newUseCase(entries, perHourMoto())

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, resp.ChargeComputed)
	assert.Equal(t, "Salida registrada. Monto cobrado: 3000.00", resp.Message)
	assert.Equal(t, int64(1), resp.AppliedTariff.ID)
	assert.Equal(t, domain.EntryClosed, resp.Entry.Status)
	assert.Equal(t, 3000.0, resp.Entry.ChargedAmount)
	require.NotNil(t, resp.Entry.CheckOutTime)
	assert.Equal(t, checkOut, *resp.Entry.CheckOutTime)

	stored := entries.entries[1]
	assert.Equal(t, domain.EntryClosed, stored.Status)
	assert.Equal(t, 3000.0, stored.ChargedAmount)
	assert.Equal(t, []recordedCheckOut{{vehicle: "moto", charged: true, amount: 3000}}, m.checkOuts)
}

func TestExecute_NoRateClosesWithZero(t *testing.T) {
	entries := newEntries()
	calc := calculate_tariff.NewUseCase(fakeTariffs{}, time.UTC, nopLogger{})
	uc, m := newUseCase(entries, calc)

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, resp.ChargeComputed)
	assert.Nil(t, resp.AppliedTariff)
	assert.Equal(t, "Salida registrada sin cobro: no se encontró una tarifa aplicable", resp.Message)
	assert.Equal(t, domain.EntryClosed, entries.entries[1].Status)
	assert.Zero(t, entries.entries[1].ChargedAmount)
	assert.Equal(t, []string{"no_rate"}, m.tariffErrors)
	assert.Equal(t, []recordedCheckOut{{vehicle: "moto", charged: false, amount: 0}}, m.checkOuts)
}

func TestExecute_CalculatorFailureStillCloses(t *testing.T) {
	entries := newEntries()
	uc, m := newUseCase(entries, failingCalculator{err: calculate_tariff.ErrInternal})

	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, resp.ChargeComputed)
	assert.Equal(t, domain.EntryClosed, entries.entries[1].Status)
	assert.Equal(t, []string{"internal"}, m.tariffErrors)
}

func TestExecute_SecondCheckOutFails(t *testing.T) {
	entries := newEntries()
	uc, _ := newUseCase(entries, perHourMoto())

	_, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), 1)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.Equal(t, 3000.0, entries.entries[1].ChargedAmount)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries *fakeEntries
		id      int64
		wantErr error
	}{
		{name: "invalid id", entries: newEntries(), id: 0, wantErr: ErrInvalidInput},
		{name: "not found", entries: newEntries(), id: 42, wantErr: ErrEntryNotFound},
		{name: "lookup failure", entries: &fakeEntries{getErr: errors.New("boom")}, id: 1, wantErr: ErrInternal},
		{
			name: "lost race on close",
			entries: func() *fakeEntries {
				e := newEntries()
				e.closeErr = entryRepo.ErrEntryNotOpen
				return e
			}(),
			id:      1,
			wantErr: ErrAlreadyClosed,
		},
		{
			name: "close failure",
			entries: func() *fakeEntries {
				e := newEntries()
				e.closeErr = errors.New("boom")
				return e
			}(),
			id:      1,
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newUseCase(tt.entries, perHourMoto())

			resp, err := uc.Execute(context.Background(), tt.id)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, m.checkOuts)
		})
	}
}
