package arrivals

import (
	"strconv"
	"strings"
)

// Format renders an English summary of a snapshot, e.g.
// "Fiction Tram: Tram arriving in 10, 20, and 30 minutes."
func Format(s Snapshot) string {
	var b strings.Builder
	b.WriteString(s.Stop.Name)
	b.WriteString(": ")

	if s.Failed() {
		b.WriteString(s.Stop.VehicleType)
		b.WriteString(" arrivals temporarily unavailable.")
		return b.String()
	}

	return b.String() + FormatArrivals(s.Stop.VehicleType, s.Arrivals)
}

// FormatArrivals renders the part of the summary after the stop name.
// The unit is singular only when the last listed arrival is exactly one minute away.
func FormatArrivals(vehicleType string, list []Arrival) string {
	if len(list) == 0 {
		return "No " + vehicleType + " coming."
	}

	var b strings.Builder
	b.WriteString(vehicleType)
	b.WriteString(" arriving in")

	for i, a := range list {
		if i > 0 {
			b.WriteString(",")
			if i == len(list)-1 {
				b.WriteString(" and")
			}
		}
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(a.Minutes()))
	}

	if list[len(list)-1].Minutes() == 1 {
		b.WriteString(" minute.")
	} else {
		b.WriteString(" minutes.")
	}
	return b.String()
}
