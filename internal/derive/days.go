package derive

import "time"

// DayIndex holds the active dates of a conversation and the calendar range
// they span.
type DayIndex struct {
	First  time.Time
	Last   time.Time
	active map[time.Time]bool
}

func NewDayIndex(msgs []Message) DayIndex {
	idx := DayIndex{active: make(map[time.Time]bool)}
	for _, m := range msgs {
		idx.active[m.Date] = true
		if idx.First.IsZero() || m.Date.Before(idx.First) {
			idx.First = m.Date
		}
		if m.Date.After(idx.Last) {
			idx.Last = m.Date
		}
	}
	return idx
}

func (d DayIndex) Active(day time.Time) bool {
	return d.active[day]
}

// Days returns every calendar day from First to Last inclusive.
func (d DayIndex) Days() []time.Time {
	if d.First.IsZero() {
		return nil
	}
	var days []time.Time
	for day := d.First; !day.After(d.Last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Silent returns the days in range with no messages, in calendar order.
func (d DayIndex) Silent() []time.Time {
	var out []time.Time
	for _, day := range d.Days() {
		if !d.active[day] {
			out = append(out, day)
		}
	}
	return out
}
