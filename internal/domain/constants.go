package domain

import (
	"errors"
	"math"
)

// ErrInvalidInput общая ошибка некорректных значений доменных типов
var ErrInvalidInput = errors.New("domain: invalid input")

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxPlateLength       = 20
	MaxTariffNameLength  = 150
	MaxLotNameLength     = 150
	MaxSearchValueLength = 100
)

// RoundMoney округляет сумму до копеек, половина от нуля
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
