package domain

import "time"

// LotRevenue сводка доходов по парковке
type LotRevenue struct {
	ParkingLotID   int64
	Name           string
	TotalEntries   int
	TotalRevenue   float64
	AverageRevenue float64
	OpenEntries    int
	ClosedEntries  int
	FirstEntry     *time.Time
	LastExit       *time.Time
}

// DailyRevenue доход за один день (по дате въезда)
type DailyRevenue struct {
	Date    time.Time
	Entries int
	Revenue float64
}

// VehicleRevenue доход по типу транспортного средства
type VehicleRevenue struct {
	VehicleType VehicleType
	Count       int
	Revenue     float64
	Average     float64
}

// StaleEntry запись, открытая дольше допустимого
type StaleEntry struct {
	EntryID      int64
	Plate        string
	ParkingLotID int64
	CheckInTime  time.Time
}
