package check_out

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/entries/models"
	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *models.EntryResponse `json:"data"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		Success: true,
		Message: resp.Message,
		Data:    models.FromDomainEntry(resp.Entry),
	}
}
