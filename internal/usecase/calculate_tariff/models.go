package calculate_tariff

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на расчет стоимости
type Request struct {
	VehicleType  domain.VehicleType
	ParkingLotID int64
	CheckIn      time.Time
	CheckOut     *time.Time // обязателен
}

// Response результат расчета
type Response struct {
	AppliedTariff  *domain.Tariff
	ElapsedMinutes int64
	ElapsedHours   int64
	ElapsedDays    int64
	TotalAmount    float64 // округлено до 2 знаков
}
