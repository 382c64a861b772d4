package model

import (
	"strings"
	"time"
)

// BusinessHours is the opening schedule of one weekday. DayOfWeek is unique
// and always stored in its canonical English form ("Monday").
type BusinessHours struct {
	ID              uint64    `json:"id"`
	DayOfWeek       string    `json:"day_of_week"`
	IsOpen          bool      `json:"is_open"`
	OpenTime        *string   `json:"open_time"`
	CloseTime       *string   `json:"close_time"`
	IsByAppointment bool      `json:"is_by_appointment"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Weekdays lists canonical day names, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NormalizeDay maps any casing of a weekday name to its canonical form.
func NormalizeDay(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(d, s) {
			return d, true
		}
	}
	return "", false
}

// ValidClock reports whether s is a zero-padded 24h "HH:MM" time.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[:2] <= "23" && s[3:] <= "59"
}

type BusinessHoursCreate struct {
	DayOfWeek       string  `json:"day_of_week" validate:"required,weekday"`
	IsOpen          *bool   `json:"is_open"`
	OpenTime        *string `json:"open_time" validate:"omitempty,hhmm"`
	CloseTime       *string `json:"close_time" validate:"omitempty,hhmm"`
	IsByAppointment bool    `json:"is_by_appointment"`
	Notes           string  `json:"notes" validate:"max=500"`
}

func (in BusinessHoursCreate) BusinessHours() *BusinessHours {
	day, _ := NormalizeDay(in.DayOfWeek)
	b := &BusinessHours{
		DayOfWeek:       day,
		IsOpen:          true,
		OpenTime:        in.OpenTime,
		CloseTime:       in.CloseTime,
		IsByAppointment: in.IsByAppointment,
		Notes:           in.Notes,
	}
	assign(&b.IsOpen, in.IsOpen)
	return b
}

type BusinessHoursPatch struct {
	IsOpen          *bool            `json:"is_open"`
	OpenTime        Nullable[string] `json:"open_time"`
	CloseTime       Nullable[string] `json:"close_time"`
	IsByAppointment *bool            `json:"is_by_appointment"`
	Notes           *string          `json:"notes" validate:"omitempty,max=500"`
}

func (p BusinessHoursPatch) Apply(b *BusinessHours) {
	assign(&b.IsOpen, p.IsOpen)
	assignNullable(&b.OpenTime, p.OpenTime)
	assignNullable(&b.CloseTime, p.CloseTime)
	assign(&b.IsByAppointment, p.IsByAppointment)
	assign(&b.Notes, p.Notes)
}

// ValidTimes reports whether an open day has a coherent open/close window.
// Closed days and by-appointment days may omit times.
func (b *BusinessHours) ValidTimes() bool {
	if b.OpenTime == nil || b.CloseTime == nil {
		return !b.IsOpen || b.IsByAppointment || (b.OpenTime == nil && b.CloseTime == nil)
	}
	return *b.OpenTime < *b.CloseTime
}
