package date

import (
	"fmt"
	"time"
)

// Week represents a Monday-to-Sunday calendar week.
type Week struct{ From, To Date }

// WeekOf returns the week containing d. The week starts on the Monday on or
// before d (ISO weekday convention) and ends the following Sunday.
func WeekOf(d Date) Week {
	// time.Weekday counts Sunday as 0, the ISO convention wants Monday as 0.
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.Add(-offset)
	return Week{From: monday, To: monday.Add(6)}
}

// ThisWeek returns the week containing today. It is recomputed from the
// wall clock on each invocation, never cached.
func ThisWeek() Week { return WeekOf(Today()) }

// Contains reports whether day falls inside the week, boundaries included.
func (w Week) Contains(day Date) bool { return !day.Before(w.From) && !day.After(w.To) }

// Label returns the week's sheet label, "dd/mm/yy al dd/mm/yy".
//
// Records keep the label stamped at creation: grouping compares labels by
// string equality, never by recomputing boundaries.
func (w Week) Label() string { return fmt.Sprintf("%s al %s", w.From.Label(), w.To.Label()) }

// ParseWeekLabel parses a label previously produced by Label.
func ParseWeekLabel(label string) (Week, error) {
	var from, to string
	if _, err := fmt.Sscanf(label, "%s al %s", &from, &to); err != nil {
		return Week{}, fmt.Errorf("invalid week label %q: %w", label, err)
	}
	parse := func(s string) (Date, error) {
		t, err := time.Parse(LabelFormat, s)
		if err != nil {
			return Date{}, fmt.Errorf("invalid week label %q: %w", label, err)
		}
		return Of(t), nil
	}
	f, err := parse(from)
	if err != nil {
		return Week{}, err
	}
	t, err := parse(to)
	if err != nil {
		return Week{}, err
	}
	return Week{From: f, To: t}, nil
}
