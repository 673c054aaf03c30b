package tariffs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// toDomain валидирует запрос и собирает доменный тариф.
// Окно времени задается целиком или не задается вовсе, начало строго раньше конца.
func toDomain(req *models.TariffRequest) (*domain.Tariff, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxTariffNameLength {
		return nil, fmt.Errorf("%w: nombre is longer than %d characters", ErrInvalidInput, domain.MaxTariffNameLength)
	}

	mode := domain.CalculationMode(req.TipoCalculo)
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown tipo_calculo %q", ErrInvalidInput, req.TipoCalculo)
	}

	vehicle := domain.VehicleAny
	if req.TipoVehiculo != "" {
		vehicle = domain.VehicleType(req.TipoVehiculo)
	}
	if !vehicle.IsValidForTariff() {
		return nil, fmt.Errorf("%w: unknown tipo_vehiculo %q", ErrInvalidInput, req.TipoVehiculo)
	}

	day := domain.AnyDay
	if req.DiaSemana != "" {
		day = domain.Weekday(req.DiaSemana)
	}
	if !day.IsValidForTariff() {
		return nil, fmt.Errorf("%w: unknown dia_semana %q", ErrInvalidInput, req.DiaSemana)
	}

	if !req.Precio.Valid {
		return nil, fmt.Errorf("%w: precio is required", ErrInvalidInput)
	}
	if req.Precio.Float64 < 0 {
		return nil, fmt.Errorf("%w: precio must not be negative", ErrInvalidInput)
	}

	if req.ParqueaderoID.Valid && req.ParqueaderoID.Int64 <= 0 {
		return nil, fmt.Errorf("%w: parqueadero_id must be positive", ErrInvalidInput)
	}

	start, end, err := parseWindow(req.HoraInicio.ValueOrZero(), req.HoraFin.ValueOrZero())
	if err != nil {
		return nil, err
	}

	active := true
	if req.Activo.Valid {
		active = req.Activo.Bool
	}

	tariff := &domain.Tariff{
		Name:         name,
		Description:  req.Descripcion.Ptr(),
		Mode:         mode,
		VehicleType:  vehicle,
		ParkingLotID: req.ParqueaderoID.Ptr(),
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		Price:        domain.RoundMoney(req.Precio.Float64),
		Active:       active,
	}

	return tariff, nil
}

func parseWindow(startRaw, endRaw string) (*types.TimeString, *types.TimeString, error) {
	if startRaw == "" && endRaw == "" {
		return nil, nil, nil
	}
	if startRaw == "" || endRaw == "" {
		return nil, nil, fmt.Errorf("%w: hora_inicio and hora_fin must be set together", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(startRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: hora_inicio: %w", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(endRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: hora_fin: %w", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return nil, nil, fmt.Errorf("%w: hora_inicio must be before hora_fin", ErrInvalidInput)
	}

	return &start, &end, nil
}
