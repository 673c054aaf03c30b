package update_entry

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует заданные поля обновления
func validateRequest(req *Request) error {
	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryID must be positive", ErrValidation)
	}

	u := req.Update
	if u.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if u.Plate != nil {
		plate := domain.NormalizePlate(*u.Plate)
		if plate == "" {
			return fmt.Errorf("%w: plate cannot be empty", ErrValidation)
		}
		if utf8.RuneCountInString(plate) > domain.MaxPlateLength {
			return fmt.Errorf("%w: plate is longer than %d characters", ErrValidation, domain.MaxPlateLength)
		}
	}

	if u.VehicleType != nil && !u.VehicleType.IsValid() {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, *u.VehicleType)
	}

	if u.ParkingLotID != nil && *u.ParkingLotID <= 0 {
		return fmt.Errorf("%w: parkingLotID must be positive", ErrValidation)
	}

	if u.ControllerID != nil && *u.ControllerID <= 0 {
		return fmt.Errorf("%w: controllerID must be positive", ErrValidation)
	}

	if u.SpaceNumber != nil && *u.SpaceNumber < 1 {
		return fmt.Errorf("%w: space number must be at least 1", ErrValidation)
	}

	return nil
}
