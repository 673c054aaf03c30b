package calculate_tariff

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// elapsed длительность стоянки в минутах, часах и днях с округлением вверх.
// Считается в миллисекундах; неположительная длительность считается как 1 единица.
type elapsed struct {
	minutes int64
	hours   int64
	days    int64
}

func computeElapsed(checkIn, checkOut time.Time) elapsed {
	ms := checkOut.Sub(checkIn).Milliseconds()
	if ms <= 0 {
		return elapsed{minutes: 1, hours: 1, days: 1}
	}

	return elapsed{
		minutes: ceilDiv(ms, time.Minute.Milliseconds()),
		hours:   ceilDiv(ms, time.Hour.Milliseconds()),
		days:    ceilDiv(ms, 24*time.Hour.Milliseconds()),
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// computeAmount сумма к оплате по способу начисления, округленная до копеек
func computeAmount(mode domain.CalculationMode, price float64, e elapsed) (float64, error) {
	var total float64

	switch mode {
	case domain.ModePerMinute:
		total = float64(e.minutes) * price
	case domain.ModePerHour:
		total = float64(e.hours) * price
	case domain.ModePerDay:
		total = float64(e.days) * price
	case domain.ModeFixed:
		total = price
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCalculationMode, mode)
	}

	return domain.RoundMoney(total), nil
}

// selectMostSpecific выбирает тариф с наибольшей специфичностью
// (парковка > день > окно времени > тип ТС); при равенстве - с меньшим ID
func selectMostSpecific(candidates []*domain.Tariff) *domain.Tariff {
	var best *domain.Tariff

	for _, t := range candidates {
		if t == nil {
			continue
		}
		if best == nil {
			best = t
			continue
		}

		rank, bestRank := t.Specificity(), best.Specificity()
		if rank > bestRank || (rank == bestRank && t.ID < best.ID) {
			best = t
		}
	}

	return best
}

// applicable оставляет только кандидатов, подходящих под запрос
func applicable(candidates []*domain.Tariff, q domain.TariffQuery) []*domain.Tariff {
	out := make([]*domain.Tariff, 0, len(candidates))
	for _, t := range candidates {
		if t != nil && t.Matches(q) {
			out = append(out, t)
		}
	}
	return out
}
