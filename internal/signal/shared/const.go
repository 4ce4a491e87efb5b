package shared

const (
	ScoreFloor = 0.0   // lower bound of every signal sub-score
	ScoreCeil  = 100.0 // upper bound of every signal sub-score

	KB = int64(1024)
	MB = 1024 * KB
)

// Clamp bounds a sub-score to the signal output range. Intermediate
// arithmetic may leave the range; clamping happens once, here, at the
// signal boundary.
func Clamp(score float64) float64 {
	if score < ScoreFloor {
		return ScoreFloor
	}

	if score > ScoreCeil {
		return ScoreCeil
	}

	return score
}
