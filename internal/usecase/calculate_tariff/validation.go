package calculate_tariff

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CheckOut == nil {
		return ErrMissingCheckOut
	}

	if !req.VehicleType.IsValid() {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.VehicleType)
	}

	if req.ParkingLotID <= 0 {
		return fmt.Errorf("%w: parkingLotID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: check-in time is required", ErrInvalidInput)
	}

	return nil
}
