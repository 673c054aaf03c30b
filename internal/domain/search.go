package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// EntrySearchField поле поиска записей
type EntrySearchField string

const (
	EntrySearchByPlate       EntrySearchField = "placa"
	EntrySearchByVehicleType EntrySearchField = "tipo_vehiculo"
	EntrySearchByStatus      EntrySearchField = "estado"
)

// EntrySearch критерий поиска записей
type EntrySearch struct {
	Field EntrySearchField
	Value string
}

// ParseEntrySearch разбирает пару criterio/valor из запроса
func ParseEntrySearch(criterion, value string) (EntrySearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return EntrySearch{}, err
	}

	switch field := EntrySearchField(criterion); field {
	case EntrySearchByPlate, EntrySearchByVehicleType:
		return EntrySearch{Field: field, Value: value}, nil
	case EntrySearchByStatus:
		status := EntryStatus(strings.ToLower(value))
		if !status.IsValid() {
			return EntrySearch{}, fmt.Errorf("%w: unknown entry status %q", ErrInvalidInput, value)
		}
		return EntrySearch{Field: field, Value: string(status)}, nil
	default:
		return EntrySearch{}, fmt.Errorf("%w: unsupported entry search criterion %q", ErrInvalidInput, criterion)
	}
}

// TariffSearchField поле поиска тарифов
type TariffSearchField string

const (
	TariffSearchByName        TariffSearchField = "nombre"
	TariffSearchByMode        TariffSearchField = "tipo_calculo"
	TariffSearchByVehicleType TariffSearchField = "tipo_vehiculo"
)

// TariffSearch критерий поиска тарифов
type TariffSearch struct {
	Field TariffSearchField
	Value string
}

// ParseTariffSearch разбирает пару criterio/valor для тарифов
func ParseTariffSearch(criterion, value string) (TariffSearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return TariffSearch{}, err
	}

	switch field := TariffSearchField(criterion); field {
	case TariffSearchByName, TariffSearchByMode, TariffSearchByVehicleType:
		return TariffSearch{Field: field, Value: value}, nil
	default:
		return TariffSearch{}, fmt.Errorf("%w: unsupported tariff search criterion %q", ErrInvalidInput, criterion)
	}
}

// ParkingLotSearchField поле поиска парковок
type ParkingLotSearchField string

const (
	LotSearchByName     ParkingLotSearchField = "nombre"
	LotSearchByLocation ParkingLotSearchField = "ubicacion"
	LotSearchByCity     ParkingLotSearchField = "ciudad"
	LotSearchByCapacity ParkingLotSearchField = "capacidad"
)

// ParkingLotSearch критерий поиска парковок. Capacity заполняется для поиска по вместимости
type ParkingLotSearch struct {
	Field    ParkingLotSearchField
	Value    string
	Capacity int
}

// ParseParkingLotSearch разбирает пару criterio/valor для парковок
func ParseParkingLotSearch(criterion, value string) (ParkingLotSearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return ParkingLotSearch{}, err
	}

	switch field := ParkingLotSearchField(criterion); field {
	case LotSearchByName, LotSearchByLocation, LotSearchByCity:
		return ParkingLotSearch{Field: field, Value: value}, nil
	case LotSearchByCapacity:
		capacity, err := strconv.Atoi(value)
		if err != nil || capacity <= 0 {
			return ParkingLotSearch{}, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
		}
		return ParkingLotSearch{Field: field, Value: value, Capacity: capacity}, nil
	default:
		return ParkingLotSearch{}, fmt.Errorf("%w: unsupported parking lot search criterion %q", ErrInvalidInput, criterion)
	}
}

// UserSearchField поле поиска пользователей
type UserSearchField string

const (
	UserSearchByName  UserSearchField = "nombre"
	UserSearchByEmail UserSearchField = "email"
	UserSearchByRole  UserSearchField = "rol"
)

// UserSearch критерий поиска пользователей
type UserSearch struct {
	Field UserSearchField
	Value string
}

// ParseUserSearch разбирает пару criterio/valor для пользователей
func ParseUserSearch(criterion, value string) (UserSearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return UserSearch{}, err
	}

	switch field := UserSearchField(criterion); field {
	case UserSearchByName, UserSearchByEmail:
		return UserSearch{Field: field, Value: value}, nil
	case UserSearchByRole:
		if !Role(value).IsValid() {
			return UserSearch{}, fmt.Errorf("%w: unknown user role %q", ErrInvalidInput, value)
		}
		return UserSearch{Field: field, Value: value}, nil
	default:
		return UserSearch{}, fmt.Errorf("%w: unsupported user search criterion %q", ErrInvalidInput, criterion)
	}
}

// ControllerSearchField поле поиска контролеров
type ControllerSearchField string

const (
	ControllerSearchByName           ControllerSearchField = "nombre"
	ControllerSearchByIdentification ControllerSearchField = "identificacion"
	ControllerSearchByRole           ControllerSearchField = "rol"
	ControllerSearchByActive         ControllerSearchField = "activo"
)

// ControllerSearch критерий поиска контролеров. Active заполняется для поиска по activo
type ControllerSearch struct {
	Field  ControllerSearchField
	Value  string
	Active bool
}

// ParseControllerSearch разбирает пару criterio/valor для контролеров
func ParseControllerSearch(criterion, value string) (ControllerSearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return ControllerSearch{}, err
	}

	switch field := ControllerSearchField(criterion); field {
	case ControllerSearchByName, ControllerSearchByIdentification:
		return ControllerSearch{Field: field, Value: value}, nil
	case ControllerSearchByRole:
		if !ControllerRole(value).IsValid() {
			return ControllerSearch{}, fmt.Errorf("%w: unknown controller role %q", ErrInvalidInput, value)
		}
		return ControllerSearch{Field: field, Value: value}, nil
	case ControllerSearchByActive:
		active, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return ControllerSearch{}, fmt.Errorf("%w: activo must be true or false", ErrInvalidInput)
		}
		return ControllerSearch{Field: field, Value: value, Active: active}, nil
	default:
		return ControllerSearch{}, fmt.Errorf("%w: unsupported controller search criterion %q", ErrInvalidInput, criterion)
	}
}

// ScheduleSearchField поле поиска расписаний
type ScheduleSearchField string

const (
	ScheduleSearchByDay        ScheduleSearchField = "dia"
	ScheduleSearchByParkingLot ScheduleSearchField = "parqueadero"
	ScheduleSearchByLotName    ScheduleSearchField = "nombre" // то же, что parqueadero
	ScheduleSearchByOpens      ScheduleSearchField = "hora_inicio"
	ScheduleSearchByCloses     ScheduleSearchField = "hora_fin"
)

// ScheduleSearch критерий поиска расписаний
type ScheduleSearch struct {
	Field ScheduleSearchField
	Value string
}

// ParseScheduleSearch разбирает пару criterio/valor для расписаний.
// Время сравнивается с точностью до минуты, секунды отбрасываются.
func ParseScheduleSearch(criterion, value string) (ScheduleSearch, error) {
	value, err := searchValue(value)
	if err != nil {
		return ScheduleSearch{}, err
	}

	switch field := ScheduleSearchField(criterion); field {
	case ScheduleSearchByDay:
		return ScheduleSearch{Field: field, Value: value}, nil
	case ScheduleSearchByParkingLot, ScheduleSearchByLotName:
		return ScheduleSearch{Field: ScheduleSearchByParkingLot, Value: value}, nil
	case ScheduleSearchByOpens, ScheduleSearchByCloses:
		t, err := types.NewTimeStringFromString(value)
		if err != nil {
			return ScheduleSearch{}, fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, field)
		}
		return ScheduleSearch{Field: field, Value: t.String()}, nil
	default:
		return ScheduleSearch{}, fmt.Errorf("%w: unsupported schedule search criterion %q", ErrInvalidInput, criterion)
	}
}

func searchValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: search value is required", ErrInvalidInput)
	}
	if len(value) > MaxSearchValueLength {
		return "", fmt.Errorf("%w: search value is too long", ErrInvalidInput)
	}
	return value, nil
}

// ContainsPattern шаблон ILIKE для поиска по подстроке
func ContainsPattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}
