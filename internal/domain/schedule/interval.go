package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DefaultGranularityMin is the slot granularity used when no explicit value
// is configured.
const DefaultGranularityMin = 5

const minutesPerDay = 24 * 60

var (
	ErrInvalidTimeOfDay   = errors.New("time of day must be in HH:MM format")
	ErrIntervalEmpty      = errors.New("interval start must be before end")
	ErrIntervalOutOfDay   = errors.New("interval must not cross midnight")
	ErrIntervalOffGrid    = errors.New("interval is not aligned to the slot granularity")
	ErrInvalidGranularity = errors.New("granularity must divide a day evenly")
)

// TimeOfDay is a wall-clock instant within one calendar day, in minutes
// since midnight.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	// "24:00" names end-of-day, which intervals accept as an exclusive end.
	if s == "24:00" {
		return TimeOfDay(minutesPerDay), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

// TimeInterval is a half-open [start, end) wall-clock interval within one
// calendar day. Zero-length and midnight-crossing intervals cannot be
// constructed; all operations below are total.
type TimeInterval struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeInterval(start, end TimeOfDay, granularityMin int) (TimeInterval, error) {
	if granularityMin <= 0 || minutesPerDay%granularityMin != 0 {
		return TimeInterval{}, ErrInvalidGranularity
	}
	if start >= end {
		return TimeInterval{}, ErrIntervalEmpty
	}
	if start < 0 || int(end) > minutesPerDay {
		return TimeInterval{}, ErrIntervalOutOfDay
	}
	if int(start)%granularityMin != 0 || int(end)%granularityMin != 0 {
		return TimeInterval{}, ErrIntervalOffGrid
	}
	return TimeInterval{start: start, end: end}, nil
}

// ParseTimeInterval builds an interval from "HH:MM" endpoints.
func ParseTimeInterval(start, end string, granularityMin int) (TimeInterval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(s, e, granularityMin)
}

// IntervalFrom derives an interval from a start time and a duration in
// minutes, as booking slots are sized by the service, not the caller.
func IntervalFrom(start TimeOfDay, durationMin, granularityMin int) (TimeInterval, error) {
	return NewTimeInterval(start, start+TimeOfDay(durationMin), granularityMin)
}

func (iv TimeInterval) Start() TimeOfDay { return iv.start }
func (iv TimeInterval) End() TimeOfDay   { return iv.end }

func (iv TimeInterval) Duration() time.Duration {
	return time.Duration(iv.end-iv.start) * time.Minute
}

func (iv TimeInterval) IsZero() bool {
	return iv.start == 0 && iv.end == 0
}

func (iv TimeInterval) String() string {
	return iv.start.String() + "-" + iv.end.String()
}

// Overlaps reports whether the two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.start < other.end && other.start < iv.end
}

func (iv TimeInterval) Contains(inner TimeInterval) bool {
	return iv.start <= inner.start && inner.end <= iv.end
}

// Subtract removes cut from iv, yielding 0, 1 or 2 remainders in order.
func (iv TimeInterval) Subtract(cut TimeInterval) []TimeInterval {
	if !iv.Overlaps(cut) {
		return []TimeInterval{iv}
	}
	var out []TimeInterval
	if iv.start < cut.start {
		out = append(out, TimeInterval{start: iv.start, end: cut.start})
	}
	if cut.end < iv.end {
		out = append(out, TimeInterval{start: cut.end, end: iv.end})
	}
	return out
}

// EndOn anchors the interval end to a calendar date in loc. Used for
// elapsed-time guards, which compare against an injected clock.
func (iv TimeInterval) EndOn(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(iv.end) * time.Minute)
}
