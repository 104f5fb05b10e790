// Package schedule expands an event's start/end range into its set of active
// calendar days and reconciles user-edited subsets against that range. Dates
// are normalized to midnight UTC so that two values naming the same calendar
// day always compare equal.
package schedule

import (
	"sort"
	"time"

	"crewbooks/internal/fault"
)

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// ExpandRange returns every calendar date from start to end inclusive, in
// ascending order with no gaps or duplicates. The result always has length
// DaysBetween(start,end)+1. Fails when end precedes start.
func ExpandRange(start, end time.Time) ([]time.Time, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return nil, fault.Validationf("event end %s precedes start %s",
			e.Format("2006-01-02"), s.Format("2006-01-02"))
	}
	days := make([]time.Time, 0, DaysBetween(s, e)+1)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// ClampToRange filters out any date outside [start, end] inclusive. Used
// defensively whenever an externally supplied active-day list is reconciled
// against a possibly-since-changed event range. Output is deduplicated and
// sorted ascending.
func ClampToRange(dates []time.Time, start, end time.Time) []time.Time {
	s, e := Day(start), Day(end)
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		d := Day(t)
		if d.Before(s) || d.After(e) {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Diff compares the stored day set against the edited one and returns the
// minimal change sets, both sorted ascending. The backend applies Added and
// Removed instead of re-sending the full list on every edit.
func Diff(oldSet, newSet []time.Time) (added, removed []time.Time) {
	oldDays := daySet(oldSet)
	newDays := daySet(newSet)

	added = make([]time.Time, 0)
	for d := range newDays {
		if _, ok := oldDays[d]; !ok {
			added = append(added, d)
		}
	}
	removed = make([]time.Time, 0)
	for d := range oldDays {
		if _, ok := newDays[d]; !ok {
			removed = append(removed, d)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Before(added[j]) })
	sort.Slice(removed, func(i, j int) bool { return removed[i].Before(removed[j]) })
	return added, removed
}

func daySet(dates []time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(dates))
	for _, t := range dates {
		set[Day(t)] = struct{}{}
	}
	return set
}
