package availability

import (
	"sort"

	"pluralink/internal/domain/schedule"
)

// FreeWindows computes the open intervals for one provider-day from that
// weekday's rules: the union of available rules minus every unavailable
// rule. The result is ordered and non-overlapping.
func FreeWindows(rules []*Rule) []schedule.TimeInterval {
	var open, closed []schedule.TimeInterval
	for _, r := range rules {
		if r.IsAvailable() {
			open = append(open, r.Interval())
		} else {
			closed = append(closed, r.Interval())
		}
	}
	return SubtractAll(mergeSorted(open), closed)
}

// SubtractAll removes every busy interval from the given windows. Busy
// intervals may overlap each other and the window edges.
func SubtractAll(windows, busy []schedule.TimeInterval) []schedule.TimeInterval {
	out := windows
	for _, b := range busy {
		var next []schedule.TimeInterval
		for _, w := range out {
			next = append(next, w.Subtract(b)...)
		}
		out = next
	}
	return out
}

// IsBookable reports whether slot fits entirely inside one free interval.
func IsBookable(free []schedule.TimeInterval, slot schedule.TimeInterval) bool {
	for _, iv := range free {
		if iv.Contains(slot) {
			return true
		}
	}
	return false
}

func mergeSorted(ivs []schedule.TimeInterval) []schedule.TimeInterval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]schedule.TimeInterval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start() < sorted[j].Start() })

	out := []schedule.TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := out[len(out)-1]
		if iv.Start() <= last.End() {
			if iv.End() > last.End() {
				merged, _ := schedule.NewTimeInterval(last.Start(), iv.End(), 1)
				out[len(out)-1] = merged
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
