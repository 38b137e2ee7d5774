package readstore

import (
	"time"

	"pluralink/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

// Stored slots are validated at write time, so reconstruction uses the finest
// granularity and cannot fail.
func intervalFromMinutes(startMin, endMin int) schedule.TimeInterval {
	iv, _ := schedule.NewTimeInterval(schedule.TimeOfDay(startMin), schedule.TimeOfDay(endMin), 1)
	return iv
}

func slotString(startMin, endMin int) string {
	return intervalFromMinutes(startMin, endMin).String()
}

func dateString(t time.Time) string {
	return t.Format(dateLayout)
}
