package check_out

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Response результат выезда
type Response struct {
	Entry          *domain.Entry  // закрытая запись
	ChargeComputed bool           // false - тариф не найден, сумма 0
	AppliedTariff  *domain.Tariff // nil, если сумма не рассчитана
	Message        string         // сообщение для клиента
}
