package core

// Severity is the tier assigned to a region from its row count.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Tier boundaries. A count must exceed a threshold to reach that tier.
const (
	MediumThreshold = 500
	HighThreshold   = 1000
)

// ClassifySeverity maps a region's row count to its tier:
// above HighThreshold is High, above MediumThreshold is Medium, anything
// else is Low.
func ClassifySeverity(count int) Severity {
	switch {
	case count > HighThreshold:
		return SeverityHigh
	case count > MediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Rank orders severities Low < Medium < High. Unknown values rank -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the three known tiers.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}
