package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/cz"
)

// create once at init
var czCal = cal.NewBusinessCalendar()

func init() {
	czCal.AddHoliday(cz.Holidays...)
}

// IsPublicHoliday reports whether t falls on a Czech public holiday.
func IsPublicHoliday(t time.Time) bool {
	ok, _, _ := czCal.IsHoliday(t)
	return ok
}
