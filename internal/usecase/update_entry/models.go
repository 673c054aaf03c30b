package update_entry

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса на частичное обновление записи
type Request struct {
	EntryID int64
	Update  domain.EntryUpdate
}

// Response модель ответа с обновленной записью
type Response struct {
	Entry *domain.Entry
}
