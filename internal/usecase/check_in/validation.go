package check_in

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует номер
func validateRequest(req *Request) error {
	req.Plate = domain.NormalizePlate(req.Plate)
	if req.Plate == "" {
		return fmt.Errorf("%w: plate is required", ErrValidation)
	}
	if utf8.RuneCountInString(req.Plate) > domain.MaxPlateLength {
		return fmt.Errorf("%w: plate is longer than %d characters", ErrValidation, domain.MaxPlateLength)
	}

	if !req.VehicleType.IsValid() {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, req.VehicleType)
	}

	if req.ParkingLotID <= 0 {
		return fmt.Errorf("%w: parkingLotID must be positive", ErrValidation)
	}

	if req.ControllerID <= 0 {
		return fmt.Errorf("%w: controllerID must be positive", ErrValidation)
	}

	if req.SpaceNumber < 1 {
		return fmt.Errorf("%w: space number must be at least 1", ErrValidation)
	}

	return nil
}
