package risk

// Level is the categorical bucket derived from a total score.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Score thresholds, inclusive lower bounds.
const (
	MediumThreshold = 4
	HighThreshold   = 7
)

// LevelForScore maps a total score to its level, evaluated high to low.
func LevelForScore(score int) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Rank returns an integer rank for comparison (Low=0, High=2).
func (l Level) Rank() int {
	switch l {
	case LevelMedium:
		return 1
	case LevelHigh:
		return 2
	default:
		return 0
	}
}

// ExitCode is the process exit status reported for a level.
func (l Level) ExitCode() int {
	return l.Rank()
}

func (l Level) String() string {
	return string(l)
}
