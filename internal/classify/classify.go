package classify

// Level is the risk band derived from the aggregate score.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// Band boundaries. A score of exactly 75 is high, exactly 40 is medium.
const (
	mediumThreshold = 40.0
	highThreshold   = 75.0
)

// Classify maps a 0-100 risk score onto a band.
func Classify(score float64) Level {
	switch {
	case score >= highThreshold:
		return High
	case score >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

func (l Level) String() string {
	switch l {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// EmphasizeFlags reports whether listed flags should be emphasized.
// Emphasis follows the overall band, not individual flags.
func (l Level) EmphasizeFlags() bool {
	return l == High
}

// BarFill clamps a score to the 0-100 range the risk bar displays.
func BarFill(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
