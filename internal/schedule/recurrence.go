package schedule

import "time"

// IsDue reports whether date falls on one of the recurrence days.
func IsDue(days WeekdaySet, date time.Time) bool {
	return days.Contains(WeekdayOf(date))
}

// NearestWeekday returns the first recurrence day on or after from, wrapping to
// the start of the week. An empty set yields from unchanged.
func NearestWeekday(days WeekdaySet, from Weekday) Weekday {
	if days.Empty() {
		return from
	}
	ordered := days.Days()
	for _, day := range ordered {
		if day >= from {
			return day
		}
	}
	return ordered[0]
}
