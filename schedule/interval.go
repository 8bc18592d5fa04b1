package schedule

import (
	"fmt"
	"sort"
)

// Interval is a half-open [Start, End) range in minutes of day.
// Two intervals overlap iff a.Start < b.End && a.End > b.Start, so
// touching endpoints do not overlap.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports half-open overlap with other.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// String renders the interval as "HH:MM-HH:MM".
func (i Interval) String() string {
	return FormatMinutes(i.Start) + "-" + FormatMinutes(i.End)
}

// FormatMinutes renders a minute-of-day value as "HH:MM".
func FormatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// MergeBusy folds a set of busy intervals into a minimal sorted,
// disjoint sequence. Adjacent intervals (curr.Start == prev.End) are
// merged as well. The input slice is not modified.
func MergeBusy(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := make([]Interval, 0, len(sorted))
	prev := sorted[0]

	for _, curr := range sorted[1:] {
		if curr.Start <= prev.End {
			if curr.End > prev.End {
				prev.End = curr.End
			}
		} else {
			merged = append(merged, prev)
			prev = curr
		}
	}

	return append(merged, prev)
}

// FreeSlots returns the complement of the merged busy sequence within
// [workStart, workEnd), as a sorted disjoint list. busy must already be
// merged and sorted (see MergeBusy).
func FreeSlots(busy []Interval, workStart, workEnd int) []Interval {
	var free []Interval
	current := workStart

	for _, b := range busy {
		if b.Start > current {
			end := b.Start
			if end > workEnd {
				end = workEnd
			}
			free = append(free, Interval{Start: current, End: end})
		}
		if b.End > current {
			current = b.End
		}
	}

	if current < workEnd {
		free = append(free, Interval{Start: current, End: workEnd})
	}

	return free
}

// Fits reports whether [start, end) lies entirely inside a single free
// interval. A request straddling two free intervals does not fit.
func Fits(free []Interval, start, end int) bool {
	for _, f := range free {
		if f.Start <= start && end <= f.End {
			return true
		}
	}
	return false
}

// FormatSlots renders free intervals for API responses.
func FormatSlots(slots []Interval) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
