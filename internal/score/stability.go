package score

// Stability blends the live score with the trailing mean of prior
// snapshot scores to damp single-reading noise. prior is ordered
// oldest-first; with no history both stats equal the live score.
//
// governance = (w*score + (10-w)*trailingMean) / 10
// projected  = governance nudged by half the current drift, clamped.
func (s *Scorer) Stability(score int, prior []int) (governance, projected int) {
	if len(prior) == 0 {
		return score, score
	}

	sum := 0
	for _, p := range prior {
		sum += p
	}
	mean := sum / len(prior)

	w := s.stability.CurrentWeight
	governance = clamp((w*score + (10-w)*mean) / 10)

	projected = governance
	if d := Drift(score, prior); d != nil {
		projected = clamp(governance + *d/2)
	}
	return governance, projected
}

// Drift is the signed delta between the current score and the most
// recent prior snapshot score. Nil when no prior exists — a missing
// baseline is reported as missing, never fabricated.
func Drift(score int, prior []int) *int {
	if len(prior) == 0 {
		return nil
	}
	d := score - prior[len(prior)-1]
	return &d
}
