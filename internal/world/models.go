package world

import "fmt"

// GameDate is the in-game calendar position: 30-day months, 12-month
// years. One tick advances one day.
type GameDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DaysPerMonth and MonthsPerYear define the simplified game calendar.
const (
	DaysPerMonth  = 30
	MonthsPerYear = 12
)

// Next returns the date one tick later.
func (d GameDate) Next() GameDate {
	next := d
	next.Day++
	if next.Day > DaysPerMonth {
		next.Day = 1
		next.Month++
	}
	if next.Month > MonthsPerYear {
		next.Month = 1
		next.Year++
	}
	return next
}

// String renders the date as DD/MM/YYYY.
func (d GameDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// State is the single game_state row: the calendar plus the total tick
// count.
type State struct {
	Date      GameDate `json:"date"`
	TickCount int64    `json:"tick_count"`
}
