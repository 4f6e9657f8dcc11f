package booking

import (
	"sort"
	"time"

	"petspa/internal/domain"
	applog "petspa/internal/log"
)

type CalendarDay struct {
	Date         time.Time
	Appointments []domain.Appointment
}

// GroupByDay buckets appointments by their YYYY-MM-DD date, days ascending and
// same-day appointments ordered by time. Appointments with an unparseable date
// are skipped rather than failing the whole calendar.
func GroupByDay(appts []domain.Appointment) []CalendarDay {
	byDay := make(map[string][]domain.Appointment)
	for _, a := range appts {
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			applog.Base().WithField("appointment", a.ID).WithField("date", a.Date).Warn("calendar.bad_date")
			continue
		}
		byDay[a.Date] = append(byDay[a.Date], a)
	}

	days := make([]CalendarDay, 0, len(byDay))
	for date, list := range byDay {
		// HH:MM sorts chronologically as a string
		sort.SliceStable(list, func(i, j int) bool { return list[i].Time < list[j].Time })
		d, _ := time.Parse("2006-01-02", date)
		days = append(days, CalendarDay{Date: d, Appointments: list})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
