package ipmi

import (
	"regexp"
	"strings"
)

var powerReadingRe = regexp.MustCompile(`Instantaneous power reading:\s+(\d+)\s+Watts`)

// ParsePowerReading extracts "<n> Watts" from dcmi power reading output, or
// returns Unavailable.
func ParsePowerReading(text string) string {
	m := powerReadingRe.FindStringSubmatch(text)
	if m == nil {
		return Unavailable
	}

	return m[1] + " Watts"
}

// ParseSensorTable classifies each pipe-delimited row of an sdr listing into
// snap. The label is the first field and the value the last, so rows with
// extra columns still parse. Rows matching nothing are dropped. Classification
// is first-match on the lowered row:
//
//	"inlet temp"                        -> InletTemp (last one wins)
//	"temp" and "degrees c", not "inlet" -> CPUTemps
//	"fan" and "rpm"                     -> Fans
func ParseSensorTable(text string, snap *SensorSnapshot) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" || !strings.Contains(line, "|") {
			continue
		}

		low := strings.ToLower(line)
		fields := strings.Split(line, "|")
		r := Reading{
			Label: strings.TrimSpace(fields[0]),
			Value: strings.TrimSpace(fields[len(fields)-1]),
		}

		switch {
		case strings.Contains(low, "inlet temp"):
			snap.InletTemp = r.Value
		case strings.Contains(low, "temp") && strings.Contains(low, "degrees c") && !strings.Contains(low, "inlet"):
			snap.CPUTemps = append(snap.CPUTemps, r)
		case strings.Contains(low, "fan") && strings.Contains(low, "rpm"):
			snap.Fans = append(snap.Fans, r)
		}
	}
}
