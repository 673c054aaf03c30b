package check_in

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса на регистрацию въезда
type Request struct {
	Plate        string             // номер ТС, нормализуется
	VehicleType  domain.VehicleType // конкретный тип, без "todos"
	ParkingLotID int64
	ControllerID int64
	SpaceNumber  int // 1..вместимость парковки
}

// Response модель ответа с созданной записью
type Response struct {
	Entry *domain.Entry
}
