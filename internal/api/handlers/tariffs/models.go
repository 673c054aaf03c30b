package tariffs

import "github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"

// TariffCreatedResponse HTTP response model для создания
type TariffCreatedResponse struct {
	Message string                 `json:"message"`
	Tarifa  *models.TariffResponse `json:"tarifa"`
}
